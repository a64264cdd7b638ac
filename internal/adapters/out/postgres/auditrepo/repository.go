// Package auditrepo stores the append-only status change log.
package auditrepo

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryDTO rows are never updated. Seq gives a stable insertion order for entries that
// share a timestamp.
type EntryDTO struct {
	Seq        int64      `gorm:"primaryKey;autoIncrement"`
	ID         uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	Subject    string
	SubjectID  uuid.UUID  `gorm:"type:uuid;index"`
	ParentID   *uuid.UUID `gorm:"type:uuid;index"`
	Role       string
	FromStatus string
	ToStatus   string
	Action     string
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
}

// TableName sets the table name for GORM.
func (EntryDTO) TableName() string {
	return "audit_log"
}

type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository binds the repository to db.
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append inserts one entry. Entries are never updated.
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := EntryDTO{
		ID:         entry.ID().Bytes(),
		Subject:    string(entry.Subject()),
		SubjectID:  entry.SubjectID().Bytes(),
		Role:       entry.Role().String(),
		FromStatus: entry.From(),
		ToStatus:   entry.To(),
		Action:     entry.Action(),
		CreatedAt:  entry.CreatedAt(),
	}
	if parent := entry.ParentID(); parent != nil {
		raw := parent.Bytes()
		dto.ParentID = &raw
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListBySubject returns the entries of the subject and of entries whose parent it is,
// oldest first.
func (r *GormAuditLogRepository) ListBySubject(ctx context.Context, subjectID kernel.UUID) ([]*audit.Entry, error) {
	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("subject_id = ? OR parent_id = ?", subjectID.Bytes(), subjectID.Bytes()).
		Order("seq").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	subjectID, err := kernel.UUIDFromBytes(dto.SubjectID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentID != nil {
		pid, parentErr := kernel.UUIDFromBytes(dto.ParentID[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &pid
	}

	return audit.NewEntry(id, audit.Subject(dto.Subject), subjectID, parentID,
		kernel.ParseRole(dto.Role), dto.FromStatus, dto.ToStatus, dto.CreatedAt.UTC())
}
