// Package courierrepo persists couriers and owns their capacity counters.
// Profile writes and counter writes are separate statements: Update never
// touches current_deliveries or total_deliveries, which only move through
// the conditional updates of GormCapacityLedger.
package courierrepo

import (
	"time"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is a row of the couriers table. Latitude and longitude are
// null until the courier reports a position.
type CourierDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Phone             string    `gorm:"type:varchar(32);not null;default:''"`
	IsOnline          bool      `gorm:"not null;default:false"`
	Status            string    `gorm:"type:varchar(16);not null;index"`
	CurrentDeliveries int       `gorm:"not null;default:0;check:chk_couriers_current_deliveries,current_deliveries >= 0"`
	TotalDeliveries   int       `gorm:"not null;default:0"`
	Rating            *float64  `gorm:"type:double precision"`
	Latitude          *float64  `gorm:"type:double precision"`
	Longitude         *float64  `gorm:"type:double precision"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(c *courier.Courier) CourierDTO {
	rating := c.Rating()
	dto := CourierDTO{
		ID:                c.ID().Bytes(),
		Name:              c.Name(),
		Phone:             c.Phone(),
		IsOnline:          c.IsOnline(),
		Status:            c.Status().String(),
		CurrentDeliveries: c.CurrentDeliveries(),
		TotalDeliveries:   c.TotalDeliveries(),
		Rating:            &rating,
	}

	if loc := c.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}
	return dto
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := courier.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return courier.RestoreCourier(courier.Snapshot{
		ID:                id,
		Name:              dto.Name,
		Phone:             dto.Phone,
		IsOnline:          dto.IsOnline,
		Status:            status,
		CurrentDeliveries: dto.CurrentDeliveries,
		TotalDeliveries:   dto.TotalDeliveries,
		Rating:            dto.Rating,
		Location:          location,
	})
}
