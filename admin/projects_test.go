package admin_test

import (
	"context"
	"testing"

	"cloyt/admin"
	"cloyt/domain"
	"cloyt/persistence"
	"cloyt/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

func TestProjectAdmin(t *testing.T) {
	RegisterTestingT(t)

	testDatabase := testinfra.StartMysqlTestDatabase("cloyt")
	defer testinfra.StopMysqlTestDatabase(testDatabase)
	ctx := context.Background()
	Expect(testDatabase.DS.GormDB(ctx).AutoMigrate(&domain.Project{}, &domain.WorkItemType{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = testDatabase.DS

	gormDB := testDatabase.DS.GormDB(ctx)
	Expect(gormDB.Create(&domain.Project{ID: 10, Name: "Zulu", ShortName: "ZU", YoutrackID: "0-2",
		CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
	Expect(gormDB.Create(&domain.Project{ID: 11, Name: "Alphabet", ShortName: "ABC", YoutrackID: "0-1",
		CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
	Expect(gormDB.Create(&domain.WorkItemType{ID: 20, ProjectID: 11, Name: "Development", YoutrackID: "86-1",
		CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
	Expect(gormDB.Create(&domain.WorkItemType{ID: 21, ProjectID: 11, Name: "Testing", YoutrackID: "86-2",
		CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())

	t.Run("should list projects by short name", func(t *testing.T) {
		projects, err := admin.QueryProjects(ctx)
		Expect(err).To(BeNil())
		Expect(len(projects)).To(Equal(2))
		Expect(projects[0].ShortName).To(Equal("ABC"))
		Expect(projects[1].ShortName).To(Equal("ZU"))
	})

	t.Run("should list the work item types of one project", func(t *testing.T) {
		workItemTypes, err := admin.QueryWorkItemTypes(ctx, 11)
		Expect(err).To(BeNil())
		Expect(len(workItemTypes)).To(Equal(2))
		Expect(workItemTypes[0].Name).To(Equal("Development"))

		workItemTypes, err = admin.QueryWorkItemTypes(ctx, 10)
		Expect(err).To(BeNil())
		Expect(workItemTypes).To(BeEmpty())
	})

	t.Run("should update name and default work item type only", func(t *testing.T) {
		typeID := types.ID(20)
		Expect(admin.UpdateProject(ctx, 11, &domain.ProjectUpdating{
			Name: "Alphabet Inc", DefaultWorkItemTypeID: &typeID})).To(BeNil())

		updated := domain.Project{}
		Expect(gormDB.Where(&domain.Project{ID: 11}).First(&updated).Error).To(BeNil())
		Expect(updated.Name).To(Equal("Alphabet Inc"))
		Expect(updated.ShortName).To(Equal("ABC"))
		Expect(updated.YoutrackID).To(Equal("0-1"))
		Expect(updated.DefaultWorkItemTypeID).ToNot(BeNil())
		Expect(*updated.DefaultWorkItemTypeID).To(Equal(typeID))

		// clearing the default is allowed
		Expect(admin.UpdateProject(ctx, 11, &domain.ProjectUpdating{Name: "Alphabet Inc"})).To(BeNil())
		Expect(gormDB.Where(&domain.Project{ID: 11}).First(&updated).Error).To(BeNil())
		Expect(updated.DefaultWorkItemTypeID).To(BeNil())
	})

	t.Run("should report a missing project", func(t *testing.T) {
		err := admin.UpdateProject(ctx, 99999, &domain.ProjectUpdating{Name: "Ghost"})
		Expect(err).To(Equal(gorm.ErrRecordNotFound))
	})
}
