// Package allocationrepo stores which waiter serves which table.
package allocationrepo

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/allocation"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TableAllocationDTO struct {
	TableNumber int `gorm:"primaryKey;autoIncrement:false"`
	WaiterID    string
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

// TableName sets the table name for GORM.
func (TableAllocationDTO) TableName() string {
	return "table_allocations"
}

type GormTableAllocationRepository struct {
	db *gorm.DB
}

// NewGormTableAllocationRepository binds the repository to db.
func NewGormTableAllocationRepository(db *gorm.DB) *GormTableAllocationRepository {
	return &GormTableAllocationRepository{db: db}
}

// Save inserts the allocation or reassigns the table to the new waiter.
func (r *GormTableAllocationRepository) Save(ctx context.Context, a allocation.TableAllocation) error {
	dto := TableAllocationDTO{
		TableNumber: a.TableNumber().Int(),
		WaiterID:    a.WaiterID(),
		UpdatedAt:   a.UpdatedAt(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "table_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"waiter_id", "updated_at"}),
	}).Create(&dto).Error
}

// Get returns the allocation of table or an ObjectNotFoundError.
func (r *GormTableAllocationRepository) Get(ctx context.Context, table kernel.TableNumber) (allocation.TableAllocation, error) {
	var dto TableAllocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "table_number = ?", table.Int()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return allocation.TableAllocation{}, errs.NewObjectNotFoundError("table allocation", table.Int())
		}
		return allocation.TableAllocation{}, err
	}
	return toDomain(dto)
}

// List returns every allocation ordered by table number.
func (r *GormTableAllocationRepository) List(ctx context.Context) ([]allocation.TableAllocation, error) {
	var dtos []TableAllocationDTO
	if err := r.db.WithContext(ctx).Order("table_number").Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]allocation.TableAllocation, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func toDomain(dto TableAllocationDTO) (allocation.TableAllocation, error) {
	table, err := kernel.NewTableNumber(dto.TableNumber)
	if err != nil {
		return allocation.TableAllocation{}, err
	}
	return allocation.NewTableAllocation(table, dto.WaiterID, dto.UpdatedAt.UTC())
}
