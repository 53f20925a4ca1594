package admin

import (
	"context"

	"cloyt/common"
	"cloyt/domain"
	"cloyt/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var (
	QueryProjectMembersFunc = QueryProjectMembers
	CreateProjectMemberFunc = CreateProjectMember
	UpdateProjectMemberFunc = UpdateProjectMember
)

type ProjectMemberQuery struct {
	EmployeeID types.ID `form:"employeeId"`
	ProjectID  types.ID `form:"projectId"`
}

func QueryProjectMembers(ctx context.Context, query *ProjectMemberQuery) ([]domain.ProjectMember, error) {
	members := []domain.ProjectMember{}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if query.EmployeeID != 0 {
		db = db.Where("employee_id = ?", query.EmployeeID)
	}
	if query.ProjectID != 0 {
		db = db.Where("project_id = ?", query.ProjectID)
	}
	if err := db.Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func CreateProjectMember(ctx context.Context, creation *domain.ProjectMemberCreation) (*domain.ProjectMember, error) {
	member := domain.ProjectMember{}
	err := persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&domain.Employee{ID: creation.EmployeeID}).
			First(&domain.Employee{}).Error; err != nil {
			return err
		}
		if err := tx.Where(&domain.Project{ID: creation.ProjectID}).
			First(&domain.Project{}).Error; err != nil {
			return err
		}
		member = domain.ProjectMember{
			ID:                    common.NextID(idWorker),
			EmployeeID:            creation.EmployeeID,
			ProjectID:             creation.ProjectID,
			SyncEnabled:           creation.SyncEnabled,
			DefaultWorkItemTypeID: creation.DefaultWorkItemTypeID,
			Comment:               creation.Comment,
			CreateTime:            types.CurrentTimestamp(),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func UpdateProjectMember(ctx context.Context, id types.ID, updating *domain.ProjectMemberUpdating) error {
	return persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		member := domain.ProjectMember{}
		if err := tx.Where(&domain.ProjectMember{ID: id}).First(&member).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"sync_enabled":              updating.SyncEnabled,
			"default_work_item_type_id": updating.DefaultWorkItemTypeID,
			"comment":                   updating.Comment,
		}
		return tx.Model(&member).Updates(updates).Error
	})
}
