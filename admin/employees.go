package admin

import (
	"context"

	"cloyt/common"
	"cloyt/domain"
	"cloyt/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	idWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	QueryEmployeesFunc = QueryEmployees
	CreateEmployeeFunc = CreateEmployee
	UpdateEmployeeFunc = UpdateEmployee
	DeleteEmployeeFunc = DeleteEmployee
)

func QueryEmployees(ctx context.Context) ([]domain.Employee, error) {
	employees := []domain.Employee{}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := db.Order("id ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func CreateEmployee(ctx context.Context, creation *domain.EmployeeCreation) (*domain.Employee, error) {
	employee := domain.Employee{
		ID:                  common.NextID(idWorker),
		FullName:            creation.FullName,
		ClockifyToken:       creation.ClockifyToken,
		ClockifyUserID:      creation.ClockifyUserID,
		ClockifyWorkspaceID: creation.ClockifyWorkspaceID,
		YoutrackToken:       creation.YoutrackToken,
		Comment:             creation.Comment,
		CreateTime:          types.CurrentTimestamp(),
	}
	if err := persistence.ActiveDataSourceManager.GormDB(ctx).Create(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func UpdateEmployee(ctx context.Context, id types.ID, updating *domain.EmployeeUpdating) error {
	return persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		employee := domain.Employee{}
		if err := tx.Where(&domain.Employee{ID: id}).First(&employee).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"full_name":             updating.FullName,
			"clockify_token":        updating.ClockifyToken,
			"clockify_user_id":      updating.ClockifyUserID,
			"clockify_workspace_id": updating.ClockifyWorkspaceID,
			"youtrack_token":        updating.YoutrackToken,
			"comment":               updating.Comment,
		}
		return tx.Model(&employee).Updates(updates).Error
	})
}

// DeleteEmployee soft-deletes: the row is kept to preserve the referential
// history of project members and ledger rows.
func DeleteEmployee(ctx context.Context, id types.ID) error {
	return persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		employee := domain.Employee{}
		if err := tx.Where(&domain.Employee{ID: id}).First(&employee).Error; err != nil {
			return err
		}
		return tx.Model(&employee).Update("deleted", true).Error
	})
}
