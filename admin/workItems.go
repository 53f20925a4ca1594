package admin

import (
	"context"

	"cloyt/domain"
	"cloyt/persistence"

	"github.com/fundwit/go-commons/types"
)

var QueryWorkItemsFunc = QueryWorkItems

type WorkItemQuery struct {
	ProjectMemberID types.ID `form:"projectMemberId"`
	Page            int      `form:"page"`
	PageSize        int      `form:"pageSize"`
}

// QueryWorkItems lists ledger rows, newest first.
func QueryWorkItems(ctx context.Context, query *WorkItemQuery) ([]domain.WorkItem, int64, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	db := persistence.ActiveDataSourceManager.GormDB(ctx).Model(&domain.WorkItem{})
	if query.ProjectMemberID != 0 {
		db = db.Where("project_member_id = ?", query.ProjectMemberID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	workItems := []domain.WorkItem{}
	if err := db.Order("create_time DESC").Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&workItems).Error; err != nil {
		return nil, 0, err
	}
	return workItems, total, nil
}
