// Package chatrepo stores assistant conversations per session.
package chatrepo

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/chat"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageDTO struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement"`
	ID        uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	SessionID string    `gorm:"index"`
	Author    string
	Content   string
	ToolName  string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

// TableName sets the table name for GORM.
func (MessageDTO) TableName() string {
	return "chat_messages"
}

type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository binds the repository to db.
func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// Append stores one message.
func (r *GormChatRepository) Append(ctx context.Context, m *chat.Message) error {
	dto := MessageDTO{
		ID:        m.ID().Bytes(),
		SessionID: m.SessionID(),
		Author:    string(m.Author()),
		Content:   m.Content(),
		ToolName:  m.ToolName(),
		CreatedAt: m.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListBySession returns the session messages, oldest first.
func (r *GormChatRepository) ListBySession(ctx context.Context, sessionID string) ([]*chat.Message, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]*chat.Message, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		m, err := chat.NewMessage(id, dto.SessionID, chat.Author(dto.Author), dto.Content, dto.ToolName, dto.CreatedAt.UTC())
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}
