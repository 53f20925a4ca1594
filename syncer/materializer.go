package syncer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"cloyt/client"
	"cloyt/client/clockify"
	"cloyt/client/youtrack"
	"cloyt/common"
	"cloyt/domain"
	"cloyt/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var MaterializeTimeEntryFunc = MaterializeTimeEntry

// MaterializeTimeEntry turns one eligible time entry into a YouTrack issue
// work item and records the ledger row. Ineligible or already-processed
// entries are skipped silently (debug logged); a rejected creation is
// logged as a warning and skipped without a ledger row, so the next cycle
// retries it. Only errors that should abandon the employee's cycle are
// returned.
func MaterializeTimeEntry(ctx context.Context, cfg *Config, employee domain.Employee, entry clockify.TimeEntry, tracker IssueTracker, detector DuplicateDetector) error {
	interval := entry.TimeInterval
	if interval.End == nil {
		return nil // entry still running
	}

	now := NowFunc().In(cfg.Timezone)
	if !interval.End.Add(cfg.ToleranceDelay).Before(now) {
		return nil // ended too recently, leave room for late edits
	}
	if !interval.Start.After(cfg.IgnoreEntriesBefore) {
		return nil
	}

	issueID, freeText, err := ParseEntryDescription(entry.Description)
	if err != nil {
		common.Log.Debugf("cannot match issue by text %s", entry.Description)
		return nil
	}

	db := persistence.ActiveDataSourceManager.GormDB(ctx)

	project := domain.Project{}
	if err := db.Where(&domain.Project{ShortName: IssueProjectShortName(issueID)}).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Log.Debugf("no local project for issue `%s`, entry `%s` skipped", issueID, entry.ID)
			return nil
		}
		return err
	}

	member := domain.ProjectMember{}
	if err := db.Where("employee_id = ? AND project_id = ?", employee.ID, project.ID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Log.Debugf("employee %v is not a member of project `%s`, entry `%s` skipped",
				employee.ID, project.ShortName, entry.ID)
			return nil
		}
		return err
	}
	if !member.SyncEnabled {
		return nil
	}

	materialized, err := detector.AlreadyMaterialized(ctx, entry.ID, issueID, tracker)
	if err != nil {
		return err
	}
	if materialized {
		return nil
	}

	workItemTypeID := ResolveWorkItemType(member, project)
	var typeRef *youtrack.WorkItemTypeRef
	if workItemTypeID != nil {
		workItemType := domain.WorkItemType{}
		err := db.Where(&domain.WorkItemType{ID: *workItemTypeID}).First(&workItemType).Error
		if err == nil {
			typeRef = &youtrack.WorkItemTypeRef{ID: workItemType.YoutrackID}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	minutes := DurationMinutes(interval.Start, *interval.End)
	text := RenderWorkItemText(freeText, entry.ID, now)

	created, err := tracker.CreateIssueWorkItem(ctx, issueID, youtrack.IssueWorkItemCreation{
		Date:     interval.Start.UnixNano() / int64(time.Millisecond),
		Duration: youtrack.DurationValue{Minutes: minutes},
		Text:     text,
		Type:     typeRef,
	})
	if err != nil {
		var apiErr *client.ApiError
		if errors.As(err, &apiErr) {
			common.Log.Warnf("youtrack rejected work item for issue `%s`, entry `%s`: %v", issueID, entry.ID, err)
			return nil
		}
		return err
	}

	ledger := domain.WorkItem{
		ID:                  common.NextID(idWorker),
		ProjectMemberID:     member.ID,
		ClockifyTimeEntryID: entry.ID,
		YoutrackID:          created.ID,
		DurationMinutes:     minutes,
		WorkItemTypeID:      workItemTypeID,
		Text:                text,
		CreateTime:          types.CurrentTimestamp(),
	}
	if err := db.Create(&ledger).Error; err != nil {
		return err
	}

	common.Log.Infof("time entry `%s` upserted to issue `%s` as work item `%s`", entry.ID, issueID, created.ID)
	return nil
}

// DurationMinutes rounds the tracked period to whole minutes, half away
// from zero (90s rounds to 2), with a minimum of one minute: YouTrack
// forbids zero-duration work items.
func DurationMinutes(start, end time.Time) int {
	minutes := int(math.Round(end.Sub(start).Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// RenderWorkItemText renders the work item body: the emphasized free text
// plus a provenance block carrying the entry id marker that the legacy
// text-scan detection relies on.
func RenderWorkItemText(description, entryID string, now time.Time) string {
	return fmt.Sprintf("**%s**\n\nInserted from clockify on %s\nDO NOT EDIT CONTENT BELOW MANUALLY\nTime entry id: `%s`",
		description, now.Format("2006-01-02 15:04:05 (-0700)"), entryID)
}
