package cmd

import (
	"context"
	"log/slog"
	"time"

	"restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/cache"
	"restaurant/internal/adapters/out/kafka"
	"restaurant/internal/adapters/out/llm"
	"restaurant/internal/adapters/out/sse"
	"restaurant/internal/core/application/assistant"
	"restaurant/internal/core/application/notifications"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/jobs"
)

const sseBuffer = 32

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	engine     services.StatusTransitionEngine

	orderCache *cache.OrderCache
	hub        *sse.Hub
	publisher  *kafka.Publisher
	dispatcher *notifications.Dispatcher
}

// NewCompositionRoot wires the shared collaborators. uowFactory selects the storage.
func NewCompositionRoot(cfg Config, uowFactory ports.UnitOfWorkFactory, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		uowFactory: uowFactory,
		engine:     services.NewStatusTransitionEngine(time.Now),
		orderCache: cache.NewOrderCache(cfg.CacheTTL, nil),
		hub:        sse.NewHub(sseBuffer),
	}

	sinks := []notifications.Sink{{Name: "sse", Notifier: c.hub}}
	if cfg.KafkaHost != "" {
		c.publisher = kafka.NewPublisher(cfg.KafkaHost, cfg.KafkaOrderChangedTopic)
		sinks = append(sinks, notifications.Sink{Name: "kafka", Notifier: c.publisher})
	}
	c.dispatcher = notifications.NewDispatcher(uowFactory, logger, sinks...)

	return c
}

// CreateCreateRequestCommandHandler creates the create request handler.
func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.requestUoWFactory(), c.engine)
}

// CreateUpdateRequestStatusCommandHandler creates the update request status handler.
func (c *CompositionRoot) CreateUpdateRequestStatusCommandHandler() commands.UpdateRequestStatusCommandHandler {
	return commands.NewUpdateRequestStatusCommandHandler(c.requestUoWFactory(), c.engine)
}

// CreateAddOrderItemCommandHandler creates the add order item handler.
func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(c.orderUoWFactory(), c.engine)
}

// CreateUpdateOrderStatusCommandHandler creates the update order status handler.
func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.engine)
}

// CreateUpdateOrderItemStatusCommandHandler creates the update order item status handler.
func (c *CompositionRoot) CreateUpdateOrderItemStatusCommandHandler() commands.UpdateOrderItemStatusCommandHandler {
	return commands.NewUpdateOrderItemStatusCommandHandler(c.orderUoWFactory(), c.engine)
}

// CreateAllocateTablesCommandHandler creates the allocate tables handler.
func (c *CompositionRoot) CreateAllocateTablesCommandHandler() commands.AllocateTablesCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateTablesCommandHandler(f, c.engine)
}

// CreateListRequestsQueryHandler creates the list requests handler.
func (c *CompositionRoot) CreateListRequestsQueryHandler() queries.ListRequestsQueryHandler {
	return queries.NewListRequestsQueryHandler(c.uowFactory)
}

// CreateListOrdersQueryHandler creates the list orders handler.
func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) requestUoWFactory() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// CreateAssistant returns an assistant backed by the configured LLM. Without LLM_TOKEN
// the assistant answers every message with ErrAssistantIsNotConfigured.
func (c *CompositionRoot) CreateAssistant() *assistant.Assistant {
	toolbox := assistant.NewToolbox(assistant.Handlers{
		CreateRequest:       c.CreateCreateRequestCommandHandler(),
		UpdateRequestStatus: c.CreateUpdateRequestStatusCommandHandler(),
		AddOrderItem:        c.CreateAddOrderItemCommandHandler(),
		ListRequests:        c.CreateListRequestsQueryHandler(),
		ListOrders:          c.CreateListOrdersQueryHandler(),
	}, cacheInvalidatingAnnouncer{Dispatcher: c.dispatcher, cache: c.orderCache})

	var reasoner ports.Reasoner
	if c.cfg.LLMToken != "" {
		r, err := llm.NewOpenAIReasoner(llm.Config{
			Model:   c.cfg.LLMModel,
			Token:   c.cfg.LLMToken,
			BaseURL: c.cfg.LLMBaseURL,
		})
		if err != nil {
			c.logger.Warn("assistant disabled", "error", err)
		} else {
			reasoner = r
		}
	}

	return assistant.NewAssistant(reasoner, toolbox, c.uowFactory, c.engine, c.logger)
}

// CreateServer creates the HTTP server implementation with every handler wired.
func (c *CompositionRoot) CreateServer() *http.Server {
	handlers := http.Handlers{
		CreateRequest:         c.CreateCreateRequestCommandHandler(),
		UpdateRequestStatus:   c.CreateUpdateRequestStatusCommandHandler(),
		AddOrderItem:          c.CreateAddOrderItemCommandHandler(),
		UpdateOrderStatus:     c.CreateUpdateOrderStatusCommandHandler(),
		UpdateOrderItemStatus: c.CreateUpdateOrderItemStatusCommandHandler(),
		AllocateTables:        c.CreateAllocateTablesCommandHandler(),
		GetRequest:            queries.NewGetRequestQueryHandler(c.uowFactory),
		ListRequests:          c.CreateListRequestsQueryHandler(),
		GetOrder:              queries.NewGetOrderQueryHandler(c.uowFactory),
		ListOrders:            c.CreateListOrdersQueryHandler(),
		GetAuditLog:           queries.NewGetAuditLogQueryHandler(c.uowFactory),
		ListTableAllocations:  queries.NewListTableAllocationsQueryHandler(c.uowFactory),
		GetChatHistory:        queries.NewGetChatHistoryQueryHandler(c.uowFactory),
	}
	return http.NewServer(handlers, c.dispatcher, c.orderCache, c.hub, c.CreateAssistant(), c.logger)
}

// CreateJobManager creates the cache eviction and request reminder jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.orderCache,
		c.CreateListRequestsQueryHandler(),
		c.dispatcher,
		c.cfg.RequestReminderAfter,
		c.logger,
	)
}

// Close releases outbound connections.
func (c *CompositionRoot) Close() error {
	if c.publisher != nil {
		return c.publisher.Close()
	}
	return nil
}

// cacheInvalidatingAnnouncer drops cached orders the assistant changed before announcing.
type cacheInvalidatingAnnouncer struct {
	*notifications.Dispatcher
	cache *cache.OrderCache
}

// OrderItemAdded invalidates the cached order, then announces the item.
func (a cacheInvalidatingAnnouncer) OrderItemAdded(ctx context.Context, change commands.OrderChange) {
	a.cache.Invalidate(change.Order.ID())
	a.Dispatcher.OrderItemAdded(ctx, change)
}

// FuncRequestUoWFactory adapts a function to commands.RequestUoWFactory.
type FuncRequestUoWFactory func() commands.RequestUoW

// Create calls f.
func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create calls f.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncAllocationUoWFactory adapts a function to commands.AllocationUoWFactory.
type FuncAllocationUoWFactory func() commands.AllocationUoW

// Create calls f.
func (f FuncAllocationUoWFactory) Create() commands.AllocationUoW {
	return f()
}
