// Package queries contains read-only operations. Handlers read through repositories
// obtained from a unit of work without opening a transaction.
package queries

import (
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// UoWFactory is the read side's view of the unit of work factory.
type UoWFactory interface {
	Create() ports.UnitOfWork
}

func parseID(subject, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewObjectNotFoundErrorWithCause(subject, raw, err)
	}
	return id, nil
}
