// Package allocation maps dining tables to the waiter serving them.
package allocation

import (
	"errors"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// TableAllocation assigns one table to one waiter. A table has at most one allocation.
type TableAllocation struct {
	tableNumber kernel.TableNumber
	waiterID    string
	updatedAt   time.Time
}

// NewTableAllocation assigns tableNumber to waiterID.
func NewTableAllocation(tableNumber kernel.TableNumber, waiterID string, updatedAt time.Time) (TableAllocation, error) {
	var waiterErr error
	if strings.TrimSpace(waiterID) == "" {
		waiterErr = errs.NewValueIsRequiredError("waiter id")
	}
	if err := errors.Join(tableNumber.Validate(), waiterErr); err != nil {
		return TableAllocation{}, err
	}
	return TableAllocation{tableNumber: tableNumber, waiterID: waiterID, updatedAt: updatedAt}, nil
}

// TableNumber returns the allocated table.
func (a TableAllocation) TableNumber() kernel.TableNumber { return a.tableNumber }

// WaiterID returns the waiter serving the table.
func (a TableAllocation) WaiterID() string { return a.waiterID }

// UpdatedAt returns when the allocation was last saved.
func (a TableAllocation) UpdatedAt() time.Time { return a.updatedAt }
