package ports

import (
	"context"

	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/kernel"
)

// AuditLogRepository is append-only.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *audit.Entry) error

	// ListBySubject returns the entries of a request, order or order item, oldest first.
	// For an order it includes the entries of its items.
	ListBySubject(ctx context.Context, subjectID kernel.UUID) ([]*audit.Entry, error)
}
