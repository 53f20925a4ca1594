package admin

import (
	"context"

	"cloyt/domain"
	"cloyt/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var (
	QueryProjectsFunc      = QueryProjects
	UpdateProjectFunc      = UpdateProject
	QueryWorkItemTypesFunc = QueryWorkItemTypes
)

func QueryProjects(ctx context.Context) ([]domain.Project, error) {
	projects := []domain.Project{}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := db.Order("short_name ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject only touches local attributes. Identity fields
// (youtrack_id, short_name) are owned by the project sync.
func UpdateProject(ctx context.Context, id types.ID, updating *domain.ProjectUpdating) error {
	return persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		project := domain.Project{}
		if err := tx.Where(&domain.Project{ID: id}).First(&project).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"name":                      updating.Name,
			"default_work_item_type_id": updating.DefaultWorkItemTypeID,
		}
		return tx.Model(&project).Updates(updates).Error
	})
}

func QueryWorkItemTypes(ctx context.Context, projectID types.ID) ([]domain.WorkItemType, error) {
	workItemTypes := []domain.WorkItemType{}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := db.Where(&domain.WorkItemType{ProjectID: projectID}).Order("name ASC").
		Find(&workItemTypes).Error; err != nil {
		return nil, err
	}
	return workItemTypes, nil
}
