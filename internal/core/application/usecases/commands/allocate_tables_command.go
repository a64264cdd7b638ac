package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrAllocateTablesCommandIsNotConstructed = errors.New(
	"AllocateTablesCommand must be created via NewAllocateTablesCommand constructor",
)

// AllocateTablesCommand assigns tables to a waiter, replacing any previous assignment of
// those tables.
type AllocateTablesCommand struct { //nolint:recvcheck //using for validation
	waiterID string
	tables   []kernel.TableNumber

	guard guard.ConstructorGuard
}

// NewAllocateTablesCommand creates a command assigning tables to waiterID.
func NewAllocateTablesCommand(waiterID string, tables []kernel.TableNumber) (AllocateTablesCommand, error) {
	waiterID = strings.TrimSpace(waiterID)
	if waiterID == "" {
		return AllocateTablesCommand{}, errs.NewValueIsRequiredError("waiter id")
	}
	if len(tables) == 0 {
		return AllocateTablesCommand{}, errs.NewValueIsRequiredError("tables")
	}

	seen := make(map[kernel.TableNumber]struct{}, len(tables))
	unique := make([]kernel.TableNumber, 0, len(tables))
	tableErrs := make([]error, 0)
	for _, t := range tables {
		if err := t.Validate(); err != nil {
			tableErrs = append(tableErrs, err)
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	if err := errors.Join(tableErrs...); err != nil {
		return AllocateTablesCommand{}, err
	}

	return AllocateTablesCommand{
		waiterID: waiterID,
		tables:   unique,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command was built by NewAllocateTablesCommand.
func (c AllocateTablesCommand) Validate() error {
	return c.guard.Validate(ErrAllocateTablesCommandIsNotConstructed)
}

// WaiterID returns the waiter receiving the tables.
func (c AllocateTablesCommand) WaiterID() string { return c.waiterID }

// Tables returns the tables to allocate.
func (c AllocateTablesCommand) Tables() []kernel.TableNumber {
	return append([]kernel.TableNumber(nil), c.tables...)
}
