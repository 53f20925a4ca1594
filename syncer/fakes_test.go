package syncer_test

import (
	"context"
	"time"

	"cloyt/client/clockify"
	"cloyt/client/youtrack"
)

type createdWorkItem struct {
	IssueID  string
	Creation youtrack.IssueWorkItemCreation
}

type fakeTracker struct {
	projects      []youtrack.Project
	projectsErr   error
	workItemTypes map[string][]youtrack.WorkItemType
	issueItems    map[string][]youtrack.IssueWorkItem
	issueItemsErr error

	created   []createdWorkItem
	createErr error
	nextID    string
}

func (f *fakeTracker) Projects(ctx context.Context) ([]youtrack.Project, error) {
	return f.projects, f.projectsErr
}

func (f *fakeTracker) WorkItemTypes(ctx context.Context, projectID string) ([]youtrack.WorkItemType, error) {
	return f.workItemTypes[projectID], nil
}

func (f *fakeTracker) IssueWorkItems(ctx context.Context, issueID string) ([]youtrack.IssueWorkItem, error) {
	if f.issueItemsErr != nil {
		return nil, f.issueItemsErr
	}
	return f.issueItems[issueID], nil
}

func (f *fakeTracker) CreateIssueWorkItem(ctx context.Context, issueID string, creation youtrack.IssueWorkItemCreation) (*youtrack.IssueWorkItem, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, createdWorkItem{IssueID: issueID, Creation: creation})
	id := f.nextID
	if id == "" {
		id = "142-1"
	}
	return &youtrack.IssueWorkItem{ID: id, Text: creation.Text}, nil
}

type fakeEntrySource struct {
	entries []clockify.TimeEntry
	err     error
}

func (f *fakeEntrySource) TimeEntries(ctx context.Context, workspaceID, userID string, pageSize int, start time.Time) ([]clockify.TimeEntry, error) {
	return f.entries, f.err
}
