package domain

import (
	"github.com/fundwit/go-commons/types"
)

// ProjectMember links an employee to a project and carries the per-member
// sync policy. The project synchronizer creates one the first time a project
// becomes visible for an employee; it never deletes or overwrites one.
type ProjectMember struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	EmployeeID types.ID `json:"employeeId" gorm:"unique_index:member_project_unique"`
	ProjectID  types.ID `json:"projectId" gorm:"unique_index:member_project_unique"`

	SyncEnabled bool `json:"syncEnabled"`
	// DefaultWorkItemTypeID overrides the project default when set.
	DefaultWorkItemTypeID *types.ID `json:"defaultWorkItemTypeId"`
	Comment               string    `json:"comment"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (m *ProjectMember) TableName() string {
	return "project_members"
}

type ProjectMemberCreation struct {
	EmployeeID            types.ID  `json:"employeeId" binding:"required"`
	ProjectID             types.ID  `json:"projectId" binding:"required"`
	SyncEnabled           bool      `json:"syncEnabled"`
	DefaultWorkItemTypeID *types.ID `json:"defaultWorkItemTypeId"`
	Comment               string    `json:"comment" binding:"omitempty,lte=255"`
}

type ProjectMemberUpdating struct {
	SyncEnabled           bool      `json:"syncEnabled"`
	DefaultWorkItemTypeID *types.ID `json:"defaultWorkItemTypeId"`
	Comment               string    `json:"comment" binding:"omitempty,lte=255"`
}
