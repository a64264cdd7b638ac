package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	ToolCreateRequest       = "create_request"
	ToolUpdateRequestStatus = "update_request_status"
	ToolCancelRequest       = "cancel_request"
	ToolListRequests        = "list_requests"
	ToolAddOrderItem        = "add_order_item"
	ToolListOrders          = "list_orders"
)

// Handlers are the use cases the tools run.
type Handlers struct {
	CreateRequest       commands.CreateRequestCommandHandler
	UpdateRequestStatus commands.UpdateRequestStatusCommandHandler
	AddOrderItem        commands.AddOrderItemCommandHandler
	ListRequests        queries.ListRequestsQueryHandler
	ListOrders          queries.ListOrdersQueryHandler
}

// Announcer publishes committed changes. *notifications.Dispatcher implements it.
type Announcer interface {
	RequestCreated(ctx context.Context, r *request.Request)
	RequestStatusChanged(ctx context.Context, t commands.RequestTransition)
	OrderItemAdded(ctx context.Context, c commands.OrderChange)
}

// caller identifies who the assistant acts for.
type caller struct {
	sessionID string
	role      kernel.Role
}

type tool struct {
	spec ports.ToolSpec
	run  func(ctx context.Context, c caller, args map[string]any) (any, error)
}

// Toolbox holds the fixed capability set and validates arguments against each tool's
// schema before running it.
type Toolbox struct {
	handlers  Handlers
	announcer Announcer
	tools     map[string]tool
	order     []string
}

// NewToolbox registers the fixed tool set over handlers. Changes made by tools are
// announced through announcer.
func NewToolbox(handlers Handlers, announcer Announcer) *Toolbox {
	tb := &Toolbox{handlers: handlers, announcer: announcer, tools: make(map[string]tool)}

	tb.register(ports.ToolSpec{
		Name:        ToolCreateRequest,
		Description: "Send a request to the staff, for example more water or the bill.",
		Parameters: object(map[string]*openapi3.Schema{
			"tableNumber": tableNumberSchema(),
			"content":     openapi3.NewStringSchema().WithMinLength(1),
		}, "tableNumber", "content"),
	}, tb.createRequest)

	tb.register(ports.ToolSpec{
		Name:        ToolUpdateRequestStatus,
		Description: "Change the status of a request.",
		Parameters: object(map[string]*openapi3.Schema{
			"requestId": openapi3.NewUUIDSchema(),
			"status":    openapi3.NewStringSchema().WithEnum(requestStatusNames()...),
		}, "requestId", "status"),
	}, tb.updateRequestStatus)

	tb.register(ports.ToolSpec{
		Name:        ToolCancelRequest,
		Description: "Cancel a request that is no longer needed.",
		Parameters: object(map[string]*openapi3.Schema{
			"requestId": openapi3.NewUUIDSchema(),
		}, "requestId"),
	}, tb.cancelRequest)

	tb.register(ports.ToolSpec{
		Name:        ToolListRequests,
		Description: "List the requests of this session.",
		Parameters: object(map[string]*openapi3.Schema{
			"status": openapi3.NewStringSchema().WithEnum(requestStatusNames()...),
		}),
	}, tb.listRequests)

	tb.register(ports.ToolSpec{
		Name:        ToolAddOrderItem,
		Description: "Add a dish or drink to the running order of this session.",
		Parameters: object(map[string]*openapi3.Schema{
			"tableNumber":         tableNumberSchema(),
			"name":                openapi3.NewStringSchema().WithMinLength(1),
			"price":               openapi3.NewFloat64Schema().WithMin(0),
			"quantity":            openapi3.NewIntegerSchema().WithMin(1),
			"options":             openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()),
			"extras":              openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()),
			"specialInstructions": openapi3.NewStringSchema(),
		}, "tableNumber", "name", "price", "quantity"),
	}, tb.addOrderItem)

	tb.register(ports.ToolSpec{
		Name:        ToolListOrders,
		Description: "List the orders of this session with their items and totals.",
		Parameters:  object(map[string]*openapi3.Schema{}),
	}, tb.listOrders)

	return tb
}

func (tb *Toolbox) register(spec ports.ToolSpec, run func(context.Context, caller, map[string]any) (any, error)) {
	tb.tools[spec.Name] = tool{spec: spec, run: run}
	tb.order = append(tb.order, spec.Name)
}

// Specs returns the tool specifications in registration order.
func (tb *Toolbox) Specs() []ports.ToolSpec {
	specs := make([]ports.ToolSpec, 0, len(tb.order))
	for _, name := range tb.order {
		specs = append(specs, tb.tools[name].spec)
	}
	return specs
}

// Run validates and executes one call and returns its JSON result. Failures are
// returned as a JSON error object so the reasoner can react to them.
func (tb *Toolbox) Run(ctx context.Context, c caller, call ports.ToolCall) string {
	result, err := tb.run(ctx, c, call)
	if err != nil {
		return mustJSON(map[string]string{"error": err.Error()})
	}
	return mustJSON(result)
}

func (tb *Toolbox) run(ctx context.Context, c caller, call ports.ToolCall) (any, error) {
	t, ok := tb.tools[call.Name]
	if !ok {
		return nil, errs.NewObjectNotFoundError("tool", call.Name)
	}

	raw := call.Arguments
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("tool arguments", err)
	}
	if err := t.spec.Parameters.VisitJSON(value); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("tool arguments", err)
	}
	args, ok := value.(map[string]any)
	if !ok {
		return nil, errs.NewValueIsInvalidError("tool arguments")
	}
	return t.run(ctx, c, args)
}

func (tb *Toolbox) createRequest(ctx context.Context, c caller, args map[string]any) (any, error) {
	table, err := kernel.NewTableNumber(intArg(args, "tableNumber"))
	if err != nil {
		return nil, err
	}
	cmd, err := commands.NewCreateRequestCommand(kernel.NewUUID(), c.sessionID, table, stringArg(args, "content"))
	if err != nil {
		return nil, err
	}
	created, err := tb.handlers.CreateRequest.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	tb.announcer.RequestCreated(ctx, created)
	return requestView(created), nil
}

func (tb *Toolbox) updateRequestStatus(ctx context.Context, c caller, args map[string]any) (any, error) {
	status, err := request.ParseStatus(stringArg(args, "status"))
	if err != nil {
		return nil, err
	}
	return tb.changeRequest(ctx, c, stringArg(args, "requestId"), status)
}

func (tb *Toolbox) cancelRequest(ctx context.Context, c caller, args map[string]any) (any, error) {
	return tb.changeRequest(ctx, c, stringArg(args, "requestId"), request.Cancelled)
}

func (tb *Toolbox) changeRequest(ctx context.Context, c caller, id string, status request.Status) (any, error) {
	cmd, err := commands.NewUpdateRequestStatusCommand(id, status, c.role, nil)
	if err != nil {
		return nil, err
	}
	t, err := tb.handlers.UpdateRequestStatus.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	tb.announcer.RequestStatusChanged(ctx, t)
	return requestView(t.Request), nil
}

func (tb *Toolbox) listRequests(ctx context.Context, c caller, args map[string]any) (any, error) {
	filter := ports.RequestFilter{OwnerID: c.sessionID}
	if s := stringArg(args, "status"); s != "" {
		status, err := request.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		filter.Statuses = []request.Status{status}
	}
	q, err := queries.NewListRequestsQuery(filter)
	if err != nil {
		return nil, err
	}
	found, err := tb.handlers.ListRequests.Handle(ctx, q)
	if err != nil {
		return nil, err
	}
	views := make([]map[string]any, 0, len(found))
	for _, r := range found {
		views = append(views, requestView(r))
	}
	return views, nil
}

func (tb *Toolbox) addOrderItem(ctx context.Context, c caller, args map[string]any) (any, error) {
	table, err := kernel.NewTableNumber(intArg(args, "tableNumber"))
	if err != nil {
		return nil, err
	}
	price, err := kernel.MoneyFromFloat(floatArg(args, "price"))
	if err != nil {
		return nil, err
	}
	cmd, err := commands.NewAddOrderItemCommand(kernel.NewUUID(), kernel.NewUUID(), c.sessionID, table, commands.ItemDetails{
		Name:                stringArg(args, "name"),
		UnitPrice:           price,
		Quantity:            intArg(args, "quantity"),
		Options:             stringsArg(args, "options"),
		Extras:              stringsArg(args, "extras"),
		SpecialInstructions: stringArg(args, "specialInstructions"),
	})
	if err != nil {
		return nil, err
	}
	change, err := tb.handlers.AddOrderItem.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	tb.announcer.OrderItemAdded(ctx, change)
	return orderView(change.Order), nil
}

func (tb *Toolbox) listOrders(ctx context.Context, c caller, _ map[string]any) (any, error) {
	q, err := queries.NewListOrdersQuery(ports.OrderFilter{SessionID: c.sessionID})
	if err != nil {
		return nil, err
	}
	found, err := tb.handlers.ListOrders.Handle(ctx, q)
	if err != nil {
		return nil, err
	}
	views := make([]map[string]any, 0, len(found))
	for _, o := range found {
		views = append(views, orderView(o))
	}
	return views, nil
}

func object(properties map[string]*openapi3.Schema, required ...string) *openapi3.Schema {
	s := openapi3.NewObjectSchema().WithProperties(properties)
	s.Required = required
	return s
}

func tableNumberSchema() *openapi3.Schema {
	return openapi3.NewIntegerSchema().WithMin(1).WithMax(kernel.MaxTableNumber)
}

func requestStatusNames() []any {
	names := make([]any, 0)
	for _, s := range request.Statuses() {
		names = append(names, s.String())
	}
	return names
}

func requestView(r *request.Request) map[string]any {
	return map[string]any{
		"id":          r.ID().String(),
		"tableNumber": r.TableNumber().Int(),
		"content":     r.Content(),
		"status":      r.Status().String(),
	}
}

func orderView(o *order.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, map[string]any{
			"id":       item.ID().String(),
			"name":     item.Name(),
			"quantity": item.Quantity(),
			"status":   item.Status().String(),
			"subtotal": item.Subtotal().String(),
		})
	}
	return map[string]any{
		"id":     o.ID().String(),
		"status": o.Status().String(),
		"items":  items,
		"total":  o.Total().String(),
	}
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// Numbers arrive as float64 from encoding/json; the schema has already checked them.
func floatArg(args map[string]any, key string) float64 {
	f, _ := args[key].(float64)
	return f
}

func intArg(args map[string]any, key string) int {
	return int(floatArg(args, key))
}

func stringsArg(args map[string]any, key string) []string {
	raw, _ := args[key].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(b)
}
