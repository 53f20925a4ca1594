package domain

import (
	"github.com/fundwit/go-commons/types"
)

// WorkItem is the idempotency ledger: one row per time entry that has been
// materialized as a YouTrack issue work item. The unique clockify time entry
// id is the sole signal that an entry was already processed.
type WorkItem struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	ProjectMemberID     types.ID `json:"projectMemberId"`
	ClockifyTimeEntryID string   `json:"clockifyTimeEntryId" gorm:"unique_index:work_item_entry_unique"`
	YoutrackID          string   `json:"youtrackId" gorm:"unique_index:work_item_youtrack_unique"`

	DurationMinutes int       `json:"durationMinutes"`
	WorkItemTypeID  *types.ID `json:"workItemTypeId"`
	Text            string    `json:"text" sql:"type:TEXT"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (w *WorkItem) TableName() string {
	return "work_items"
}
