package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/ports"
	"restaurant/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// CreateRequest handles POST /api/v1/requests.
func (s *Server) CreateRequest(ctx echo.Context) error {
	var body servers.NewRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateRequestCommand(
		kernel.NewUUID(),
		body.SessionId,
		kernel.TableNumber(body.TableNumber),
		body.Content,
	)
	if err != nil {
		return badRequest(ctx, "Invalid request data: "+err.Error())
	}

	r, err := s.handlers.CreateRequest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to create request")
	}
	s.announcer.RequestCreated(ctx.Request().Context(), r)

	return ctx.JSON(http.StatusCreated, toRequest(r))
}

// ListRequests handles GET /api/v1/requests.
func (s *Server) ListRequests(ctx echo.Context, params servers.ListRequestsParams) error {
	table, err := optionalTableNumber(params.TableNumber)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	filter := ports.RequestFilter{TableNumber: table}
	if params.SessionId != nil {
		filter.OwnerID = *params.SessionId
	}
	if params.Status != nil {
		for _, raw := range *params.Status {
			status, parseErr := request.ParseStatus(raw)
			if parseErr != nil {
				return badRequest(ctx, parseErr.Error())
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	query, err := queries.NewListRequestsQuery(filter)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	requests, err := s.handlers.ListRequests.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve requests")
	}

	response := make([]servers.Request, len(requests))
	for i, r := range requests {
		response[i] = toRequest(r)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetRequest handles GET /api/v1/requests/{requestId}.
func (s *Server) GetRequest(ctx echo.Context, requestId string) error {
	query, err := queries.NewGetRequestQuery(requestId)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve request")
	}
	r, err := s.handlers.GetRequest.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve request")
	}
	return ctx.JSON(http.StatusOK, toRequest(r))
}

// UpdateRequestStatus handles PATCH /api/v1/requests/{requestId}/status. A refused
// transition answers 409 with the statuses the role may move to instead.
func (s *Server) UpdateRequestStatus(
	ctx echo.Context,
	requestId string,
	params servers.UpdateRequestStatusParams,
) error {
	var body servers.RequestStatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	status, err := request.ParseStatus(body.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateRequestStatusCommand(requestId, status, actorRole(params.XActorRole), body.Content)
	if err != nil {
		return s.fail(ctx, err, "Failed to update request")
	}
	t, err := s.handlers.UpdateRequestStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update request")
	}
	s.announcer.RequestStatusChanged(ctx.Request().Context(), t)

	return ctx.JSON(http.StatusOK, toRequest(t.Request))
}

// GetRequestLog handles GET /api/v1/requests/{requestId}/log.
func (s *Server) GetRequestLog(ctx echo.Context, requestId string) error {
	return s.auditLog(ctx, audit.SubjectRequest, requestId)
}

func (s *Server) auditLog(ctx echo.Context, subject audit.Subject, id string) error {
	query, err := queries.NewGetAuditLogQuery(subject, id)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve status log")
	}
	entries, err := s.handlers.GetAuditLog.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve status log")
	}

	response := make([]servers.AuditEntry, len(entries))
	for i, e := range entries {
		response[i] = toAuditEntry(e)
	}
	return ctx.JSON(http.StatusOK, response)
}
