package domain

import (
	"github.com/fundwit/go-commons/types"
)

type Employee struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	FullName string `json:"fullName"`

	ClockifyToken       string `json:"clockifyToken" gorm:"unique_index:clockify_token_unique"`
	ClockifyUserID      string `json:"clockifyUserId" gorm:"unique_index:clockify_user_unique"`
	ClockifyWorkspaceID string `json:"clockifyWorkspaceId"`
	YoutrackToken       string `json:"youtrackToken"`

	// Deleted marks the employee as retired. Rows are never removed, the
	// synchronizer only skips deleted employees.
	Deleted bool   `json:"deleted"`
	Comment string `json:"comment"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (e *Employee) TableName() string {
	return "employees"
}

type EmployeeCreation struct {
	FullName            string `json:"fullName" binding:"required,lte=128"`
	ClockifyToken       string `json:"clockifyToken" binding:"required,lte=255"`
	ClockifyUserID      string `json:"clockifyUserId" binding:"required,lte=64"`
	ClockifyWorkspaceID string `json:"clockifyWorkspaceId" binding:"required,lte=64"`
	YoutrackToken       string `json:"youtrackToken" binding:"required,lte=255"`
	Comment             string `json:"comment" binding:"omitempty,lte=255"`
}

type EmployeeUpdating struct {
	FullName            string `json:"fullName" binding:"required,lte=128"`
	ClockifyToken       string `json:"clockifyToken" binding:"required,lte=255"`
	ClockifyUserID      string `json:"clockifyUserId" binding:"required,lte=64"`
	ClockifyWorkspaceID string `json:"clockifyWorkspaceId" binding:"required,lte=64"`
	YoutrackToken       string `json:"youtrackToken" binding:"required,lte=255"`
	Comment             string `json:"comment" binding:"omitempty,lte=255"`
}
