// Package earningrepo stores courier fee records.
package earningrepo

import (
	"context"
	"time"

	"fooddispatch/internal/adapters/out/postgres/pgerr"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EarningDTO is a row of courier_earnings. One delivery fee per order.
type EarningDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_courier_earnings_order_fee,priority:1"`
	Amount    int64     `gorm:"not null"`
	FeeType   string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_courier_earnings_order_fee,priority:2"`
	Status    string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (EarningDTO) TableName() string {
	return "courier_earnings"
}

type GormEarningRepository struct {
	db *gorm.DB
}

func NewGormEarningRepository(db *gorm.DB) *GormEarningRepository {
	return &GormEarningRepository{db: db}
}

func (r *GormEarningRepository) Add(ctx context.Context, earning *courier.Earning) error {
	dto := EarningDTO{
		ID:        earning.ID().Bytes(),
		CourierID: earning.CourierID().Bytes(),
		OrderID:   earning.OrderID().Bytes(),
		Amount:    earning.Amount(),
		FeeType:   earning.FeeType(),
		Status:    earning.Status(),
		CreatedAt: earning.CreatedAt(),
	}
	return pgerr.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormEarningRepository) GetAllByCourier(ctx context.Context, courierID kernel.UUID) ([]*courier.Earning, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EarningDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate(err)
	}

	earnings := make([]*courier.Earning, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		earnings = append(earnings, e)
	}
	return earnings, nil
}

func toDomain(dto EarningDTO) (*courier.Earning, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	return courier.RestoreEarning(id, courierID, orderID, dto.Amount, dto.FeeType, dto.Status, dto.CreatedAt)
}
