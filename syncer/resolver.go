package syncer

import (
	"cloyt/domain"

	"github.com/fundwit/go-commons/types"
)

// ResolveWorkItemType picks the work item type for a new work item:
// member override first, then the project default, else none.
func ResolveWorkItemType(member domain.ProjectMember, project domain.Project) *types.ID {
	if member.DefaultWorkItemTypeID != nil {
		return member.DefaultWorkItemTypeID
	}
	return project.DefaultWorkItemTypeID
}
