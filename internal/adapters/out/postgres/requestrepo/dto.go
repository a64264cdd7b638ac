// Package requestrepo persists customer requests.
package requestrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/request"

	"github.com/google/uuid"
)

type RequestDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     string    `gorm:"index"`
	TableNumber int       `gorm:"index"`
	Content     string
	Status      int       `gorm:"index"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

// TableName sets the table name for GORM.
func (RequestDTO) TableName() string {
	return "requests"
}

func fromDomain(r *request.Request) RequestDTO {
	return RequestDTO{
		ID:          r.ID().Bytes(),
		OwnerID:     r.OwnerID(),
		TableNumber: r.TableNumber().Int(),
		Content:     r.Content(),
		Status:      int(r.Status()),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

func toDomain(dto RequestDTO) (*request.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	table, err := kernel.NewTableNumber(dto.TableNumber)
	if err != nil {
		return nil, err
	}
	return request.RestoreRequest(id, dto.OwnerID, table, dto.Content, request.Status(dto.Status),
		dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
