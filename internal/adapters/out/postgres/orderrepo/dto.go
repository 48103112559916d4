// Package orderrepo persists orders. Status is stored by name so that the
// order_ready trigger and operators reading the table see the same values as
// the API.
package orderrepo

import (
	"time"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is a row of the orders table.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SellerID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID         uuid.UUID  `gorm:"type:uuid;not null"`
	DeliveryAddress    string     `gorm:"type:text;not null"`
	TotalAmount        int64      `gorm:"not null"`
	CourierFee         int64      `gorm:"not null;default:0"`
	Status             string     `gorm:"type:varchar(16);not null;index:idx_orders_status_created,priority:1"`
	CourierID          *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt          time.Time  `gorm:"not null;index:idx_orders_status_created,priority:2"`
	AssignedAt         *time.Time
	PickedUpAt         *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string `gorm:"type:text;not null;default:''"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                 o.ID().Bytes(),
		SellerID:           o.SellerID().Bytes(),
		CustomerID:         o.CustomerID().Bytes(),
		DeliveryAddress:    o.DeliveryAddress(),
		TotalAmount:        o.TotalAmount(),
		CourierFee:         o.CourierFee(),
		Status:             o.Status().String(),
		CourierID:          rawID(o.CourierID()),
		CreatedAt:          o.CreatedAt(),
		AssignedAt:         o.AssignedAt(),
		PickedUpAt:         o.PickedUpAt(),
		DeliveredAt:        o.DeliveredAt(),
		CancelledAt:        o.CancelledAt(),
		CancellationReason: o.CancellationReason(),
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, idErr := kernel.UUIDFromBytes(dto.CourierID[:])
		if idErr != nil {
			return nil, idErr
		}
		courierID = &cID
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                 id,
		SellerID:           sellerID,
		CustomerID:         customerID,
		DeliveryAddress:    dto.DeliveryAddress,
		TotalAmount:        dto.TotalAmount,
		CourierFee:         dto.CourierFee,
		Status:             status,
		CourierID:          courierID,
		CreatedAt:          dto.CreatedAt,
		AssignedAt:         dto.AssignedAt,
		PickedUpAt:         dto.PickedUpAt,
		DeliveredAt:        dto.DeliveredAt,
		CancelledAt:        dto.CancelledAt,
		CancellationReason: dto.CancellationReason,
	})
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
