package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand raises a service request from a customer session.
//
// Example:
//
//	cmd, err := NewCreateRequestCommand(kernel.NewUUID(), "session-42", 7, "Ready to pay")
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // the session is already waiting for the bill
//	}
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	ownerID     string
	tableNumber kernel.TableNumber
	content     string

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand creates a command raising a request for ownerID at tableNumber.
func NewCreateRequestCommand(
	requestID kernel.UUID,
	ownerID string,
	tableNumber kernel.TableNumber,
	content string,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setOwnerID(ownerID),
		cmd.setTableNumber(tableNumber),
		cmd.setContent(content),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return cmd, nil
}

// Validate reports whether the command was built by NewCreateRequestCommand.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

// RequestID returns the id the new request will get.
func (c CreateRequestCommand) RequestID() kernel.UUID { return c.requestID }

// OwnerID returns the customer session.
func (c CreateRequestCommand) OwnerID() string { return c.ownerID }

// TableNumber returns the table.
func (c CreateRequestCommand) TableNumber() kernel.TableNumber { return c.tableNumber }

// Content returns the request text.
func (c CreateRequestCommand) Content() string { return c.content }

func (c *CreateRequestCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requestID = id
	return nil
}

func (c *CreateRequestCommand) setOwnerID(ownerID string) error {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return errs.NewValueIsRequiredError("owner id")
	}
	c.ownerID = ownerID
	return nil
}

func (c *CreateRequestCommand) setTableNumber(tableNumber kernel.TableNumber) error {
	if err := tableNumber.Validate(); err != nil {
		return err
	}
	c.tableNumber = tableNumber
	return nil
}

func (c *CreateRequestCommand) setContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return errs.NewValueIsRequiredError("content")
	}
	c.content = content
	return nil
}
