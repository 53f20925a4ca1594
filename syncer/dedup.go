package syncer

import (
	"context"
	"errors"
	"regexp"

	"cloyt/common"
	"cloyt/domain"
	"cloyt/persistence"
)

const (
	DedupStrategyLedger   = "ledger"
	DedupStrategyTextScan = "text-scan"
)

// DuplicateDetector answers whether a time entry was already materialized
// as a YouTrack work item.
type DuplicateDetector interface {
	AlreadyMaterialized(ctx context.Context, entryID, issueID string, tracker IssueTracker) (bool, error)
}

func NewDuplicateDetector(strategy string) (DuplicateDetector, error) {
	switch strategy {
	case "", DedupStrategyLedger:
		return &LedgerDetector{}, nil
	case DedupStrategyTextScan:
		return &TextScanDetector{}, nil
	default:
		return nil, errors.New("unknown dedup strategy: " + strategy)
	}
}

// LedgerDetector looks the entry up in the local work item ledger. It is the
// default strategy: one indexed query, and immune to manual edits of the
// work item text on the YouTrack side.
type LedgerDetector struct {
}

func (d *LedgerDetector) AlreadyMaterialized(ctx context.Context, entryID, issueID string, tracker IssueTracker) (bool, error) {
	var count int
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := db.Model(&domain.WorkItem{}).Where("clockify_time_entry_id = ?", entryID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var entryIDMarkerPattern = regexp.MustCompile("Time entry id: `([a-f0-9]+)`")

// TextScanDetector is the legacy strategy: it fetches all existing work
// items of the issue and scans their text for the embedded entry id marker.
// Retained for deployments that predate the ledger.
type TextScanDetector struct {
}

func (d *TextScanDetector) AlreadyMaterialized(ctx context.Context, entryID, issueID string, tracker IssueTracker) (bool, error) {
	items, err := tracker.IssueWorkItems(ctx, issueID)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		match := entryIDMarkerPattern.FindStringSubmatch(item.Text)
		if match == nil {
			common.Log.Debugf("cannot match time entry of issue work item's text `%s`", item.Text)
			continue
		}
		if match[1] == entryID {
			return true, nil
		}
	}
	return false, nil
}
