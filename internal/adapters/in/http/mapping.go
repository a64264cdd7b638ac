package http

import (
	"restaurant/internal/core/domain/model/allocation"
	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/chat"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/generated/servers"

	"github.com/google/uuid"
)

func toRequest(r *request.Request) servers.Request {
	return servers.Request{
		Id:          r.ID().Bytes(),
		SessionId:   r.OwnerID(),
		TableNumber: r.TableNumber().Int(),
		Content:     r.Content(),
		Status:      r.Status().String(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

func toOrder(o *order.Order) servers.Order {
	items := make([]servers.OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, toOrderItem(item))
	}

	return servers.Order{
		Id:          o.ID().Bytes(),
		SessionId:   o.SessionID(),
		TableNumber: o.TableNumber().Int(),
		Status:      o.Status().String(),
		Items:       items,
		Total:       o.Total().String(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

func toOrderItem(i *order.Item) servers.OrderItem {
	item := servers.OrderItem{
		Id:        i.ID().Bytes(),
		Name:      i.Name(),
		UnitPrice: i.UnitPrice().String(),
		Quantity:  i.Quantity(),
		Status:    i.Status().String(),
		Subtotal:  i.Subtotal().String(),
	}
	if options := i.Options(); len(options) > 0 {
		item.Options = &options
	}
	if extras := i.Extras(); len(extras) > 0 {
		item.Extras = &extras
	}
	if notes := i.SpecialInstructions(); notes != "" {
		item.SpecialInstructions = &notes
	}
	return item
}

func toAuditEntry(e *audit.Entry) servers.AuditEntry {
	entry := servers.AuditEntry{
		Id:        e.ID().Bytes(),
		Subject:   string(e.Subject()),
		SubjectId: e.SubjectID().Bytes(),
		Action:    e.Action(),
		Role:      e.Role().String(),
		From:      e.From(),
		To:        e.To(),
		CreatedAt: e.CreatedAt(),
	}
	if parent := e.ParentID(); parent != nil {
		var id uuid.UUID = parent.Bytes()
		entry.ParentId = &id
	}
	return entry
}

func toTableAllocation(a allocation.TableAllocation) servers.TableAllocation {
	return servers.TableAllocation{
		TableNumber: a.TableNumber().Int(),
		WaiterId:    a.WaiterID(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

func toChatMessage(m *chat.Message) servers.ChatMessage {
	msg := servers.ChatMessage{
		Id:        m.ID().Bytes(),
		Author:    string(m.Author()),
		Content:   m.Content(),
		CreatedAt: m.CreatedAt(),
	}
	if tool := m.ToolName(); tool != "" {
		msg.ToolName = &tool
	}
	return msg
}
