package syncer

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"cloyt/client/clockify"
	"cloyt/client/youtrack"
	"cloyt/common"
	"cloyt/domain"
	"cloyt/persistence"

	"github.com/opentracing/opentracing-go"
)

// TimeEntrySource is the consumed part of the clockify client.
type TimeEntrySource interface {
	TimeEntries(ctx context.Context, workspaceID, userID string, pageSize int, start time.Time) ([]clockify.TimeEntry, error)
}

// IssueTracker is the consumed part of the youtrack client.
type IssueTracker interface {
	Projects(ctx context.Context) ([]youtrack.Project, error)
	WorkItemTypes(ctx context.Context, projectID string) ([]youtrack.WorkItemType, error)
	IssueWorkItems(ctx context.Context, issueID string) ([]youtrack.IssueWorkItem, error)
	CreateIssueWorkItem(ctx context.Context, issueID string, creation youtrack.IssueWorkItemCreation) (*youtrack.IssueWorkItem, error)
}

var (
	// NowFunc and SleepFunc are replaced in tests to drive the cadence
	// deterministically.
	NowFunc   = time.Now
	SleepFunc = time.Sleep

	ClockifyClientFunc = func(cfg *Config, employee domain.Employee) TimeEntrySource {
		return clockify.NewClient(cfg.ClockifyBaseURL, employee.ClockifyToken, cfg.HTTPTimeout, nil)
	}
	YoutrackClientFunc = func(cfg *Config, employee domain.Employee) IssueTracker {
		return youtrack.NewClient(cfg.YoutrackBaseURL, employee.YoutrackToken, cfg.HTTPTimeout, nil)
	}
)

type Synchronizer struct {
	config   Config
	detector DuplicateDetector
}

func NewSynchronizer(config Config) (*Synchronizer, error) {
	detector, err := NewDuplicateDetector(config.DedupStrategy)
	if err != nil {
		return nil, err
	}
	return &Synchronizer{config: config, detector: detector}, nil
}

// Run loops forever: one full pass over all active employees, then a sleep
// that tops the cycle up to the configured throttling delay. The loop has
// no exit condition, the process lives and dies with it.
func (s *Synchronizer) Run() {
	for {
		startsAt := NowFunc()
		s.RunOnce()
		elapsed := NowFunc().Sub(startsAt)

		delay := s.config.ThrottlingDelay - elapsed
		if delay <= time.Second {
			common.Log.Warnf("throttling delay too small, %.4fs remaining after a %.1fs cycle",
				delay.Seconds(), elapsed.Seconds())
		}
		// an overrun cycle clamps to an immediate next cycle
		if delay > 0 {
			SleepFunc(delay)
		}
	}
}

// RunOnce performs one sync cycle. Failures are isolated per employee: a
// broken token or an unexpected error abandons that employee's remainder
// and the cycle moves on.
func (s *Synchronizer) RunOnce() {
	employees := []domain.Employee{}
	db := persistence.ActiveDataSourceManager.GormDB(context.Background())
	if err := db.Where("deleted = ?", false).Order("id ASC").Find(&employees).Error; err != nil {
		common.Log.Errorf("failed to load employees: %v", err)
		return
	}

	for _, employee := range employees {
		if err := s.syncEmployee(employee); err != nil {
			if errors.Is(err, youtrack.ErrUnauthorized) {
				common.Log.Errorf("youtrack rejected credentials of employee %v (%s): %v",
					employee.ID, employee.FullName, err)
			} else {
				common.Log.Errorf("sync of employee %v (%s) failed: %v",
					employee.ID, employee.FullName, err)
			}
		}
	}
}

func (s *Synchronizer) syncEmployee(employee domain.Employee) (err error) {
	defer func() {
		if ret := recover(); ret != nil {
			err = fmt.Errorf("panic: %v\n%s", ret, debug.Stack())
		}
	}()

	span := opentracing.StartSpan("sync employee")
	defer span.Finish()
	ctx := opentracing.ContextWithSpan(context.Background(), span)

	tracker := YoutrackClientFunc(&s.config, employee)
	if err := SyncEmployeeProjectsFunc(ctx, employee, tracker); err != nil {
		return err
	}

	source := ClockifyClientFunc(&s.config, employee)
	entries, err := source.TimeEntries(ctx, employee.ClockifyWorkspaceID, employee.ClockifyUserID,
		s.config.WindowSize, s.config.IgnoreEntriesBefore)
	if err != nil {
		return err
	}
	if s.config.WindowSize > 0 && len(entries) > s.config.WindowSize {
		entries = entries[0:s.config.WindowSize]
	}

	for _, entry := range entries {
		if err := MaterializeTimeEntryFunc(ctx, &s.config, employee, entry, tracker, s.detector); err != nil {
			return err
		}
	}
	return nil
}
