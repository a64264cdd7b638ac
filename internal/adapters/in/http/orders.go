package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// AddOrderItem handles POST /api/v1/orders/items - adds to the session's running order.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	var body servers.NewOrderItem
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	price, err := kernel.MoneyFromFloat(body.Price)
	if err != nil {
		return badRequest(ctx, "Invalid price: "+err.Error())
	}
	details := commands.ItemDetails{
		Name:      body.Name,
		UnitPrice: price,
		Quantity:  body.Quantity,
	}
	if body.Options != nil {
		details.Options = *body.Options
	}
	if body.Extras != nil {
		details.Extras = *body.Extras
	}
	if body.SpecialInstructions != nil {
		details.SpecialInstructions = *body.SpecialInstructions
	}

	cmd, err := commands.NewAddOrderItemCommand(
		kernel.NewUUID(),
		kernel.NewUUID(),
		body.SessionId,
		kernel.TableNumber(body.TableNumber),
		details,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order item: "+err.Error())
	}

	change, err := s.handlers.AddOrderItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to add order item")
	}
	s.cache.Invalidate(change.Order.ID())
	s.announcer.OrderItemAdded(ctx.Request().Context(), change)

	return ctx.JSON(http.StatusCreated, toOrder(change.Order))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	table, err := optionalTableNumber(params.TableNumber)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	filter := ports.OrderFilter{TableNumber: table}
	if params.SessionId != nil {
		filter.SessionID = *params.SessionId
	}
	if params.Status != nil {
		for _, raw := range *params.Status {
			status, parseErr := order.ParseStatus(raw)
			if parseErr != nil {
				return badRequest(ctx, parseErr.Error())
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	orders, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}. Reads are served from the cache when
// the order was fetched recently and not written since. A load that overlapped a write
// is returned but not cached.
func (s *Server) GetOrder(ctx echo.Context, orderId string) error {
	if id, err := kernel.UUIDFromString(orderId); err == nil {
		if o, ok := s.cache.Get(id); ok {
			return ctx.JSON(http.StatusOK, toOrder(o))
		}
	}

	query, err := queries.NewGetOrderQuery(orderId)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}
	generation := s.cache.Generation()
	o, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}
	s.cache.Fill(o, generation)

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderId string, params servers.UpdateOrderStatusParams) error {
	var body servers.StatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderId, status, actorRole(params.XActorRole))
	if err != nil {
		return s.fail(ctx, err, "Failed to update order")
	}
	t, err := s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update order")
	}
	s.cache.Invalidate(t.Order.ID())
	s.announcer.OrderStatusChanged(ctx.Request().Context(), t)

	return ctx.JSON(http.StatusOK, toOrder(t.Order))
}

// UpdateOrderItemStatus handles PATCH /api/v1/orders/{orderId}/items/{itemId}/status.
func (s *Server) UpdateOrderItemStatus(
	ctx echo.Context,
	orderId string,
	itemId string,
	params servers.UpdateOrderItemStatusParams,
) error {
	var body servers.StatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	status, err := order.ParseItemStatus(body.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateOrderItemStatusCommand(orderId, itemId, status, actorRole(params.XActorRole))
	if err != nil {
		return s.fail(ctx, err, "Failed to update order item")
	}
	t, err := s.handlers.UpdateOrderItemStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update order item")
	}
	s.cache.Invalidate(t.Order.ID())
	s.announcer.OrderItemStatusChanged(ctx.Request().Context(), t)

	return ctx.JSON(http.StatusOK, toOrder(t.Order))
}

// GetOrderLog handles GET /api/v1/orders/{orderId}/log.
func (s *Server) GetOrderLog(ctx echo.Context, orderId string) error {
	return s.auditLog(ctx, audit.SubjectOrder, orderId)
}
