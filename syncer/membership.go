package syncer

import (
	"context"
	"errors"

	"cloyt/client/youtrack"
	"cloyt/common"
	"cloyt/domain"
	"cloyt/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var idWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

// AutoProvisionComment marks project members created by the synchronizer
// rather than an administrator.
const AutoProvisionComment = "auto-provisioned by project sync"

var SyncEmployeeProjectsFunc = SyncEmployeeProjects

// SyncEmployeeProjects mirrors the projects visible to the employee in
// YouTrack: it upserts Project rows, records unknown work item types and
// ensures a ProjectMember row per discovered project. All remote data is
// fetched first, then the writes of the whole pass commit as one
// transaction.
func SyncEmployeeProjects(ctx context.Context, employee domain.Employee, tracker IssueTracker) error {
	remoteProjects, err := tracker.Projects(ctx)
	if err != nil {
		return err
	}

	type discoveredProject struct {
		project       youtrack.Project
		workItemTypes []youtrack.WorkItemType
	}
	discovered := make([]discoveredProject, 0, len(remoteProjects))
	for _, remote := range remoteProjects {
		workItemTypes, err := tracker.WorkItemTypes(ctx, remote.ID)
		if err != nil {
			return err
		}
		discovered = append(discovered, discoveredProject{project: remote, workItemTypes: workItemTypes})
	}

	return persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range discovered {
			project, err := upsertProject(tx, d.project)
			if err != nil {
				return err
			}
			for _, workItemType := range d.workItemTypes {
				if err := ensureWorkItemType(tx, project.ID, workItemType); err != nil {
					return err
				}
			}
			if err := ensureProjectMember(tx, employee.ID, project.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// upsertProject creates the project when unknown, otherwise refreshes the
// mutable display fields.
func upsertProject(tx *gorm.DB, remote youtrack.Project) (*domain.Project, error) {
	project := domain.Project{}
	err := tx.Where(&domain.Project{YoutrackID: remote.ID}).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		project = domain.Project{
			ID:         common.NextID(idWorker),
			Name:       remote.Name,
			ShortName:  remote.ShortName,
			YoutrackID: remote.ID,
			CreateTime: types.CurrentTimestamp(),
		}
		if err := tx.Create(&project).Error; err != nil {
			return nil, err
		}
		common.Log.Infof("project `%s` (%s) created", remote.ShortName, remote.ID)
		return &project, nil
	} else if err != nil {
		return nil, err
	}

	if project.Name != remote.Name || project.ShortName != remote.ShortName {
		updates := map[string]interface{}{"name": remote.Name, "short_name": remote.ShortName}
		if err := tx.Model(&project).Updates(updates).Error; err != nil {
			return nil, err
		}
		project.Name = remote.Name
		project.ShortName = remote.ShortName
	}
	return &project, nil
}

// work item types are created once per YouTrack id and never refreshed
func ensureWorkItemType(tx *gorm.DB, projectID types.ID, remote youtrack.WorkItemType) error {
	workItemType := domain.WorkItemType{}
	err := tx.Where(&domain.WorkItemType{YoutrackID: remote.ID}).First(&workItemType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		workItemType = domain.WorkItemType{
			ID:         common.NextID(idWorker),
			ProjectID:  projectID,
			Name:       remote.Name,
			YoutrackID: remote.ID,
			CreateTime: types.CurrentTimestamp(),
		}
		return tx.Create(&workItemType).Error
	}
	return err
}

func ensureProjectMember(tx *gorm.DB, employeeID, projectID types.ID) error {
	member := domain.ProjectMember{}
	err := tx.Where("employee_id = ? AND project_id = ?", employeeID, projectID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		member = domain.ProjectMember{
			ID:          common.NextID(idWorker),
			EmployeeID:  employeeID,
			ProjectID:   projectID,
			SyncEnabled: true,
			Comment:     AutoProvisionComment,
			CreateTime:  types.CurrentTimestamp(),
		}
		return tx.Create(&member).Error
	}
	return err
}
