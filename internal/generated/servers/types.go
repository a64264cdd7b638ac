// Package servers holds the HTTP contract of the service: the OpenAPI document, the
// request and response bodies, and the echo routing that binds path, query and header
// parameters before calling a ServerInterface.
package servers

import (
	"time"

	"github.com/google/uuid"
)

// Error defines model for Error.
type Error struct {
	Allowed *[]string `json:"allowed,omitempty"`
	Code    int       `json:"code"`
	Message string    `json:"message"`
}

// NewRequest defines model for NewRequest.
type NewRequest struct {
	Content     string `json:"content"`
	SessionId   string `json:"sessionId"`
	TableNumber int    `json:"tableNumber"`
}

// Request defines model for Request.
type Request struct {
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	Id          uuid.UUID `json:"id"`
	SessionId   string    `json:"sessionId"`
	Status      string    `json:"status"`
	TableNumber int       `json:"tableNumber"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StatusChange defines model for StatusChange.
type StatusChange struct {
	Status string `json:"status"`
}

// RequestStatusChange defines model for RequestStatusChange.
type RequestStatusChange struct {
	Content *string `json:"content,omitempty"`
	Status  string  `json:"status"`
}

// AuditEntry defines model for AuditEntry.
type AuditEntry struct {
	Action    string     `json:"action"`
	CreatedAt time.Time  `json:"createdAt"`
	From      string     `json:"from"`
	Id        uuid.UUID  `json:"id"`
	ParentId  *uuid.UUID `json:"parentId,omitempty"`
	Role      string     `json:"role"`
	Subject   string     `json:"subject"`
	SubjectId uuid.UUID  `json:"subjectId"`
	To        string     `json:"to"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	Extras              *[]string `json:"extras,omitempty"`
	Name                string    `json:"name"`
	Options             *[]string `json:"options,omitempty"`
	Price               float64   `json:"price"`
	Quantity            int       `json:"quantity"`
	SessionId           string    `json:"sessionId"`
	SpecialInstructions *string   `json:"specialInstructions,omitempty"`
	TableNumber         int       `json:"tableNumber"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Extras              *[]string `json:"extras,omitempty"`
	Id                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Options             *[]string `json:"options,omitempty"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions *string   `json:"specialInstructions,omitempty"`
	Status              string    `json:"status"`
	Subtotal            string    `json:"subtotal"`
	UnitPrice           string    `json:"unitPrice"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt   time.Time   `json:"createdAt"`
	Id          uuid.UUID   `json:"id"`
	Items       []OrderItem `json:"items"`
	SessionId   string      `json:"sessionId"`
	Status      string      `json:"status"`
	TableNumber int         `json:"tableNumber"`
	Total       string      `json:"total"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TableAllocation defines model for TableAllocation.
type TableAllocation struct {
	TableNumber int       `json:"tableNumber"`
	UpdatedAt   time.Time `json:"updatedAt"`
	WaiterId    string    `json:"waiterId"`
}

// AllocateTables defines model for AllocateTables.
type AllocateTables struct {
	Tables   []int  `json:"tables"`
	WaiterId string `json:"waiterId"`
}

// NewChatMessage defines model for NewChatMessage.
type NewChatMessage struct {
	Text string `json:"text"`
}

// ChatMessage defines model for ChatMessage.
type ChatMessage struct {
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Id        uuid.UUID `json:"id"`
	ToolName  *string   `json:"toolName,omitempty"`
}

// ActorRole defines model for ActorRole.
type ActorRole = string

// ListRequestsParams defines parameters for ListRequests.
type ListRequestsParams struct {
	SessionId   *string   `form:"sessionId,omitempty" json:"sessionId,omitempty"`
	TableNumber *int      `form:"tableNumber,omitempty" json:"tableNumber,omitempty"`
	Status      *[]string `form:"status,omitempty" json:"status,omitempty"`
}

// UpdateRequestStatusParams defines parameters for UpdateRequestStatus.
type UpdateRequestStatusParams struct {
	XActorRole *ActorRole `json:"X-Actor-Role,omitempty"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	SessionId   *string   `form:"sessionId,omitempty" json:"sessionId,omitempty"`
	TableNumber *int      `form:"tableNumber,omitempty" json:"tableNumber,omitempty"`
	Status      *[]string `form:"status,omitempty" json:"status,omitempty"`
}

// UpdateOrderStatusParams defines parameters for UpdateOrderStatus.
type UpdateOrderStatusParams struct {
	XActorRole *ActorRole `json:"X-Actor-Role,omitempty"`
}

// UpdateOrderItemStatusParams defines parameters for UpdateOrderItemStatus.
type UpdateOrderItemStatusParams struct {
	XActorRole *ActorRole `json:"X-Actor-Role,omitempty"`
}

// SendChatMessageParams defines parameters for SendChatMessage.
type SendChatMessageParams struct {
	XActorRole *ActorRole `json:"X-Actor-Role,omitempty"`
}
