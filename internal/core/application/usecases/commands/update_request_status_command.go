package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/pkg/guard"
)

var ErrUpdateRequestStatusCommandIsNotConstructed = errors.New(
	"UpdateRequestStatusCommand must be created via NewUpdateRequestStatusCommand constructor",
)

// UpdateRequestStatusCommand moves a request to a new status on behalf of an actor role,
// optionally replacing its content in the same change.
type UpdateRequestStatusCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	status    request.Status
	role      kernel.Role
	content   *string

	guard guard.ConstructorGuard
}

// NewUpdateRequestStatusCommand fails with an ObjectNotFoundError when requestID is not a
// UUID and with a ValueIsInvalidError for an invalid status.
func NewUpdateRequestStatusCommand(
	requestID string,
	status request.Status,
	role kernel.Role,
	content *string,
) (UpdateRequestStatusCommand, error) {
	id, err := parseSubjectID("request", requestID)
	if err != nil {
		return UpdateRequestStatusCommand{}, err
	}
	if err = status.Validate(); err != nil {
		return UpdateRequestStatusCommand{}, err
	}

	cmd := UpdateRequestStatusCommand{
		requestID: id,
		status:    status,
		role:      role,
		guard:     guard.NewConstructorGuard(),
	}
	if content != nil {
		c := *content
		cmd.content = &c
	}
	return cmd, nil
}

// Validate reports whether the command was built by NewUpdateRequestStatusCommand.
func (c UpdateRequestStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRequestStatusCommandIsNotConstructed)
}

// RequestID returns the request to change.
func (c UpdateRequestStatusCommand) RequestID() kernel.UUID { return c.requestID }

// Status returns the requested status.
func (c UpdateRequestStatusCommand) Status() request.Status { return c.status }

// Role returns the acting role.
func (c UpdateRequestStatusCommand) Role() kernel.Role { return c.role }

// Content is nil when the content is left unchanged.
func (c UpdateRequestStatusCommand) Content() *string {
	return c.content
}
