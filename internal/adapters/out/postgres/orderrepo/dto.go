// Package orderrepo persists the order aggregate: one orders row plus one order_items row
// per line item.
package orderrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table. Timestamps come from the domain clock, so GORM must not
// overwrite them.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TableNumber int       `gorm:"index"`
	SessionID   string    `gorm:"index"`
	Status      int       `gorm:"index"`
	Items       []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

// TableName sets the table name for GORM.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one line item. Position keeps the order in which items were added.
type ItemDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID       `gorm:"type:uuid;index"`
	Position            int
	Name                string
	UnitPrice           decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity            int
	Options             pq.StringArray  `gorm:"type:text[]"`
	Extras              pq.StringArray  `gorm:"type:text[]"`
	SpecialInstructions string
	Status              int
	UpdatedAt           time.Time `gorm:"autoUpdateTime:false"`
}

// TableName sets the table name for GORM.
func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	items := o.Items()
	dtos := make([]ItemDTO, 0, len(items))
	for i, item := range items {
		dtos = append(dtos, ItemDTO{
			ID:                  item.ID().Bytes(),
			OrderID:             o.ID().Bytes(),
			Position:            i,
			Name:                item.Name(),
			UnitPrice:           item.UnitPrice().Decimal(),
			Quantity:            item.Quantity(),
			Options:             item.Options(),
			Extras:              item.Extras(),
			SpecialInstructions: item.SpecialInstructions(),
			Status:              int(item.Status()),
			UpdatedAt:           item.UpdatedAt(),
		})
	}

	return OrderDTO{
		ID:          o.ID().Bytes(),
		TableNumber: o.TableNumber().Int(),
		SessionID:   o.SessionID(),
		Status:      int(o.Status()),
		Items:       dtos,
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	table, err := kernel.NewTableNumber(dto.TableNumber)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, table, dto.SessionID, order.Status(dto.Status), items,
		dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	return order.RestoreItem(id, dto.Name, price, dto.Quantity, dto.Options, dto.Extras,
		dto.SpecialInstructions, order.ItemStatus(dto.Status), dto.UpdatedAt.UTC())
}
