package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"restaurant/internal/core/application/assistant"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/chat"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/ports"
	"restaurant/internal/generated/servers"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateRequest         commands.CreateRequestCommandHandler
	UpdateRequestStatus   commands.UpdateRequestStatusCommandHandler
	AddOrderItem          commands.AddOrderItemCommandHandler
	UpdateOrderStatus     commands.UpdateOrderStatusCommandHandler
	UpdateOrderItemStatus commands.UpdateOrderItemStatusCommandHandler
	AllocateTables        commands.AllocateTablesCommandHandler

	GetRequest           queries.GetRequestQueryHandler
	ListRequests         queries.ListRequestsQueryHandler
	GetOrder             queries.GetOrderQueryHandler
	ListOrders           queries.ListOrdersQueryHandler
	GetAuditLog          queries.GetAuditLogQueryHandler
	ListTableAllocations queries.ListTableAllocationsQueryHandler
	GetChatHistory       queries.GetChatHistoryQueryHandler
}

// Announcer publishes committed changes. Notifications are best effort and never fail
// the HTTP call.
type Announcer interface {
	RequestCreated(ctx context.Context, r *request.Request)
	RequestStatusChanged(ctx context.Context, t commands.RequestTransition)
	OrderItemAdded(ctx context.Context, c commands.OrderChange)
	OrderStatusChanged(ctx context.Context, t commands.OrderTransition)
	OrderItemStatusChanged(ctx context.Context, t commands.OrderItemTransition)
}

// OrderCache keeps recently read orders. Every order write invalidates its entry; reads
// fill it only if no invalidation happened while they loaded.
type OrderCache interface {
	Get(id kernel.UUID) (*order.Order, bool)
	Generation() uint64
	Fill(o *order.Order, generation uint64) bool
	Invalidate(id kernel.UUID)
}

// Subscriber hands out notification streams per channel.
type Subscriber interface {
	Subscribe(channel string) (<-chan ports.Notification, func())
}

type ChatAssistant interface {
	Chat(ctx context.Context, sessionID string, role kernel.Role, text string) (*chat.Message, error)
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers   Handlers
	announcer  Announcer
	cache      OrderCache
	subscriber Subscriber
	assistant  ChatAssistant
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	handlers Handlers,
	announcer Announcer,
	cache OrderCache,
	subscriber Subscriber,
	chatAssistant ChatAssistant,
	logger *slog.Logger,
) *Server {
	return &Server{
		handlers:   handlers,
		announcer:  announcer,
		cache:      cache,
		subscriber: subscriber,
		assistant:  chatAssistant,
		logger:     logger.With("component", "HTTPServer"),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// fail maps a use case error to its HTTP status. Unexpected errors are logged and hidden
// behind a generic message.
func (s *Server) fail(ctx echo.Context, err error, fallback string) error {
	var transitionErr *errs.InvalidTransitionError
	switch {
	case errors.As(err, &transitionErr):
		allowed := append([]string{}, transitionErr.Allowed...)
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: transitionErr.Error(),
			Allowed: &allowed,
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	case errors.Is(err, assistant.ErrAssistantIsNotConfigured):
		return ctx.JSON(http.StatusServiceUnavailable, servers.Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Assistant is not available",
		})
	}

	s.logger.ErrorContext(ctx.Request().Context(), fallback, "error", err)
	return ctx.JSON(http.StatusInternalServerError, servers.Error{
		Code:    http.StatusInternalServerError,
		Message: fallback,
	})
}

func actorRole(header *servers.ActorRole) kernel.Role {
	if header == nil {
		return kernel.Role("")
	}
	return kernel.ParseRole(*header)
}

func optionalTableNumber(n *int) (kernel.TableNumber, error) {
	if n == nil {
		return 0, nil
	}
	return kernel.NewTableNumber(*n)
}
