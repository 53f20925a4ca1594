package domain

import (
	"github.com/fundwit/go-commons/types"
)

// Project mirrors a YouTrack project. Rows are upserted by the project
// synchronizer on every cycle, keyed by the YouTrack id.
type Project struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	Name string `json:"name"`
	// ShortName is the YouTrack project code, the prefix of issue ids like ABC-42.
	ShortName  string `json:"shortName" gorm:"index:short_name_idx"`
	YoutrackID string `json:"youtrackId" gorm:"unique_index:project_youtrack_unique"`

	DefaultWorkItemTypeID *types.ID `json:"defaultWorkItemTypeId"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (p *Project) TableName() string {
	return "projects"
}

type ProjectUpdating struct {
	Name                  string    `json:"name" binding:"required,lte=128"`
	DefaultWorkItemTypeID *types.ID `json:"defaultWorkItemTypeId"`
}

// WorkItemType mirrors a YouTrack work item type of one project.
// Rows are created on first discovery and never refreshed afterwards.
type WorkItemType struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	ProjectID  types.ID `json:"projectId"`
	Name       string   `json:"name"`
	YoutrackID string   `json:"youtrackId" gorm:"unique_index:work_item_type_youtrack_unique"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (t *WorkItemType) TableName() string {
	return "work_item_types"
}
