package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const BasePath = "/api/v1"

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Send a request to the staff
	// (POST /requests)
	CreateRequest(ctx echo.Context) error
	// List requests, oldest first
	// (GET /requests)
	ListRequests(ctx echo.Context, params ListRequestsParams) error
	// (GET /requests/{requestId})
	GetRequest(ctx echo.Context, requestId string) error
	// Change the status of a request, optionally replacing its content
	// (PATCH /requests/{requestId}/status)
	UpdateRequestStatus(ctx echo.Context, requestId string, params UpdateRequestStatusParams) error
	// (GET /requests/{requestId}/log)
	GetRequestLog(ctx echo.Context, requestId string) error
	// Add an item to the session's running order, opening one if needed
	// (POST /orders/items)
	AddOrderItem(ctx echo.Context) error
	// (GET /orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderId string) error
	// (PATCH /orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, orderId string, params UpdateOrderStatusParams) error
	// (PATCH /orders/{orderId}/items/{itemId}/status)
	UpdateOrderItemStatus(ctx echo.Context, orderId string, itemId string, params UpdateOrderItemStatusParams) error
	// (GET /orders/{orderId}/log)
	GetOrderLog(ctx echo.Context, orderId string) error
	// (GET /tables/allocations)
	ListTableAllocations(ctx echo.Context) error
	// (PUT /tables/allocations)
	AllocateTables(ctx echo.Context) error
	// Server-sent events of one notification channel
	// (GET /notifications/{channel})
	StreamNotifications(ctx echo.Context, channel string) error
	// (GET /assistant/{sessionId}/messages)
	GetChatHistory(ctx echo.Context, sessionId string) error
	// (POST /assistant/{sessionId}/messages)
	SendChatMessage(ctx echo.Context, sessionId string, params SendChatMessageParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPath(ctx echo.Context, name string, dest *string) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func bindActorRole(ctx echo.Context) (*ActorRole, error) {
	headers := ctx.Request().Header
	valueList, found := headers[http.CanonicalHeaderKey("X-Actor-Role")]
	if !found {
		return nil, nil
	}
	if n := len(valueList); n != 1 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for X-Actor-Role, got %d", n))
	}

	var role ActorRole
	err := runtime.BindStyledParameterWithOptions("simple", "X-Actor-Role", valueList[0], &role,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-Actor-Role: %s", err))
	}
	return &role, nil
}

func bindListFilters(ctx echo.Context, sessionID **string, tableNumber **int, status **[]string) error {
	if err := runtime.BindQueryParameter("form", true, false, "sessionId", ctx.QueryParams(), sessionID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sessionId: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "tableNumber", ctx.QueryParams(), tableNumber); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter tableNumber: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	return nil
}

// CreateRequest converts echo context to params.
func (w *ServerInterfaceWrapper) CreateRequest(ctx echo.Context) error {
	return w.Handler.CreateRequest(ctx)
}

// ListRequests converts echo context to params.
func (w *ServerInterfaceWrapper) ListRequests(ctx echo.Context) error {
	var params ListRequestsParams
	if err := bindListFilters(ctx, &params.SessionId, &params.TableNumber, &params.Status); err != nil {
		return err
	}
	return w.Handler.ListRequests(ctx, params)
}

// GetRequest converts echo context to params.
func (w *ServerInterfaceWrapper) GetRequest(ctx echo.Context) error {
	var requestId string
	if err := bindPath(ctx, "requestId", &requestId); err != nil {
		return err
	}
	return w.Handler.GetRequest(ctx, requestId)
}

// UpdateRequestStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateRequestStatus(ctx echo.Context) error {
	var requestId string
	if err := bindPath(ctx, "requestId", &requestId); err != nil {
		return err
	}
	role, err := bindActorRole(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateRequestStatus(ctx, requestId, UpdateRequestStatusParams{XActorRole: role})
}

// GetRequestLog converts echo context to params.
func (w *ServerInterfaceWrapper) GetRequestLog(ctx echo.Context) error {
	var requestId string
	if err := bindPath(ctx, "requestId", &requestId); err != nil {
		return err
	}
	return w.Handler.GetRequestLog(ctx, requestId)
}

// AddOrderItem converts echo context to params.
func (w *ServerInterfaceWrapper) AddOrderItem(ctx echo.Context) error {
	return w.Handler.AddOrderItem(ctx)
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	if err := bindListFilters(ctx, &params.SessionId, &params.TableNumber, &params.Status); err != nil {
		return err
	}
	return w.Handler.ListOrders(ctx, params)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var orderId string
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	var orderId string
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	role, err := bindActorRole(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, orderId, UpdateOrderStatusParams{XActorRole: role})
}

// UpdateOrderItemStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderItemStatus(ctx echo.Context) error {
	var orderId, itemId string
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	if err := bindPath(ctx, "itemId", &itemId); err != nil {
		return err
	}
	role, err := bindActorRole(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderItemStatus(ctx, orderId, itemId, UpdateOrderItemStatusParams{XActorRole: role})
}

// GetOrderLog converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderLog(ctx echo.Context) error {
	var orderId string
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.GetOrderLog(ctx, orderId)
}

// ListTableAllocations converts echo context to params.
func (w *ServerInterfaceWrapper) ListTableAllocations(ctx echo.Context) error {
	return w.Handler.ListTableAllocations(ctx)
}

// AllocateTables converts echo context to params.
func (w *ServerInterfaceWrapper) AllocateTables(ctx echo.Context) error {
	return w.Handler.AllocateTables(ctx)
}

// StreamNotifications converts echo context to params.
func (w *ServerInterfaceWrapper) StreamNotifications(ctx echo.Context) error {
	var channel string
	if err := bindPath(ctx, "channel", &channel); err != nil {
		return err
	}
	return w.Handler.StreamNotifications(ctx, channel)
}

// GetChatHistory converts echo context to params.
func (w *ServerInterfaceWrapper) GetChatHistory(ctx echo.Context) error {
	var sessionId string
	if err := bindPath(ctx, "sessionId", &sessionId); err != nil {
		return err
	}
	return w.Handler.GetChatHistory(ctx, sessionId)
}

// SendChatMessage converts echo context to params.
func (w *ServerInterfaceWrapper) SendChatMessage(ctx echo.Context) error {
	var sessionId string
	if err := bindPath(ctx, "sessionId", &sessionId); err != nil {
		return err
	}
	role, err := bindActorRole(ctx)
	if err != nil {
		return err
	}
	return w.Handler.SendChatMessage(ctx, sessionId, SendChatMessageParams{XActorRole: role})
}

// EchoRouter is the subset of echo.Echo and echo.Group the routes are registered on.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, and prepends BaseURL to the paths,
// so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/requests", wrapper.CreateRequest)
	router.GET(baseURL+"/requests", wrapper.ListRequests)
	router.GET(baseURL+"/requests/:requestId", wrapper.GetRequest)
	router.PATCH(baseURL+"/requests/:requestId/status", wrapper.UpdateRequestStatus)
	router.GET(baseURL+"/requests/:requestId/log", wrapper.GetRequestLog)
	router.POST(baseURL+"/orders/items", wrapper.AddOrderItem)
	router.GET(baseURL+"/orders", wrapper.ListOrders)
	router.GET(baseURL+"/orders/:orderId", wrapper.GetOrder)
	router.PATCH(baseURL+"/orders/:orderId/status", wrapper.UpdateOrderStatus)
	router.PATCH(baseURL+"/orders/:orderId/items/:itemId/status", wrapper.UpdateOrderItemStatus)
	router.GET(baseURL+"/orders/:orderId/log", wrapper.GetOrderLog)
	router.GET(baseURL+"/tables/allocations", wrapper.ListTableAllocations)
	router.PUT(baseURL+"/tables/allocations", wrapper.AllocateTables)
	router.GET(baseURL+"/notifications/:channel", wrapper.StreamNotifications)
	router.GET(baseURL+"/assistant/:sessionId/messages", wrapper.GetChatHistory)
	router.POST(baseURL+"/assistant/:sessionId/messages", wrapper.SendChatMessage)
}
