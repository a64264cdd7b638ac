package memory

import (
	"maps"
	"slices"
	"time"

	"restaurant/internal/core/domain/model/allocation"
	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/chat"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// Records are immutable once stored: updates replace the whole record, so a shallow
// copy of the maps is a full snapshot.
type requestRecord struct {
	seq         int64
	id          kernel.UUID
	ownerID     string
	tableNumber kernel.TableNumber
	content     string
	status      request.Status
	createdAt   time.Time
	updatedAt   time.Time
}

type itemRecord struct {
	id                  kernel.UUID
	name                string
	unitPrice           kernel.Money
	quantity            int
	options             []string
	extras              []string
	specialInstructions string
	status              order.ItemStatus
	updatedAt           time.Time
}

type orderRecord struct {
	seq         int64
	id          kernel.UUID
	tableNumber kernel.TableNumber
	sessionID   string
	status      order.Status
	items       []itemRecord
	createdAt   time.Time
	updatedAt   time.Time
}

type snapshot struct {
	seq         int64
	requests    map[uuid.UUID]requestRecord
	orders      map[uuid.UUID]orderRecord
	auditLog    []*audit.Entry
	allocations map[kernel.TableNumber]allocation.TableAllocation
	chat        []*chat.Message
}

func newSnapshot() *snapshot {
	return &snapshot{
		requests:    make(map[uuid.UUID]requestRecord),
		orders:      make(map[uuid.UUID]orderRecord),
		allocations: make(map[kernel.TableNumber]allocation.TableAllocation),
	}
}

func (s *snapshot) clone() *snapshot {
	return &snapshot{
		seq:         s.seq,
		requests:    maps.Clone(s.requests),
		orders:      maps.Clone(s.orders),
		auditLog:    slices.Clone(s.auditLog),
		allocations: maps.Clone(s.allocations),
		chat:        slices.Clone(s.chat),
	}
}

func (s *snapshot) next() int64 {
	s.seq++
	return s.seq
}

func requestFromDomain(seq int64, r *request.Request) requestRecord {
	return requestRecord{
		seq:         seq,
		id:          r.ID(),
		ownerID:     r.OwnerID(),
		tableNumber: r.TableNumber(),
		content:     r.Content(),
		status:      r.Status(),
		createdAt:   r.CreatedAt(),
		updatedAt:   r.UpdatedAt(),
	}
}

func (rec requestRecord) toDomain() (*request.Request, error) {
	return request.RestoreRequest(rec.id, rec.ownerID, rec.tableNumber, rec.content, rec.status, rec.createdAt, rec.updatedAt)
}

func orderFromDomain(seq int64, o *order.Order) orderRecord {
	items := make([]itemRecord, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, itemRecord{
			id:                  item.ID(),
			name:                item.Name(),
			unitPrice:           item.UnitPrice(),
			quantity:            item.Quantity(),
			options:             item.Options(),
			extras:              item.Extras(),
			specialInstructions: item.SpecialInstructions(),
			status:              item.Status(),
			updatedAt:           item.UpdatedAt(),
		})
	}
	return orderRecord{
		seq:         seq,
		id:          o.ID(),
		tableNumber: o.TableNumber(),
		sessionID:   o.SessionID(),
		status:      o.Status(),
		items:       items,
		createdAt:   o.CreatedAt(),
		updatedAt:   o.UpdatedAt(),
	}
}

func (rec orderRecord) toDomain() (*order.Order, error) {
	items := make([]*order.Item, 0, len(rec.items))
	for _, ir := range rec.items {
		item, err := order.RestoreItem(ir.id, ir.name, ir.unitPrice, ir.quantity, ir.options, ir.extras,
			ir.specialInstructions, ir.status, ir.updatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return order.RestoreOrder(rec.id, rec.tableNumber, rec.sessionID, rec.status, items, rec.createdAt, rec.updatedAt)
}
