package requestrepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRequestRepository implements ports.RequestRepository using GORM.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository binds the repository to db, usually the unit of work transaction.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Add inserts a new request row.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes status, content and updated_at. Owner, table and creation time never
// change after creation.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RequestDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":     dto.Status,
			"content":    dto.Content,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("request", aggregate.ID().String())
	}
	return nil
}

// Get reads the request without locking.
func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate issues SELECT ... FOR UPDATE. Outside a transaction the lock is released
// immediately, so callers must Begin first.
func (r *GormRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormRequestRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*request.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// LockOwner takes a transaction-scoped advisory lock keyed on the owner id.
func (r *GormRequestRepository) LockOwner(ctx context.Context, ownerID string) error {
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", ownerLockKey(ownerID)).Error
}

// List returns the requests matching filter, oldest first.
func (r *GormRequestRepository) List(ctx context.Context, filter ports.RequestFilter) ([]*request.Request, error) {
	query := r.db.WithContext(ctx)
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.TableNumber != 0 {
		query = query.Where("table_number = ?", filter.TableNumber.Int())
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]int, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, int(s))
		}
		query = query.Where("status IN ?", statuses)
	}
	if !filter.CreatedBefore.IsZero() {
		query = query.Where("created_at < ?", filter.CreatedBefore)
	}

	var dtos []RequestDTO
	if err := query.Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	requests := make([]*request.Request, 0, len(dtos))
	for _, dto := range dtos {
		req, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

func ownerLockKey(ownerID string) string {
	return "request-owner:" + ownerID
}
