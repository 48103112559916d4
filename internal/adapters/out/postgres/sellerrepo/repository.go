// Package sellerrepo reads pickup locations from seller_profiles.
package sellerrepo

import (
	"context"
	"errors"

	"fooddispatch/internal/adapters/out/postgres/pgerr"
	"fooddispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SellerProfileDTO holds the part of the seller profile dispatch needs.
// Coordinates are null for sellers that never set their address on the map.
type SellerProfileDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;default:''"`
	Latitude  *float64  `gorm:"type:double precision"`
	Longitude *float64  `gorm:"type:double precision"`
}

func (SellerProfileDTO) TableName() string {
	return "seller_profiles"
}

// GormSellerLocationProvider implements ports.SellerLocationProvider.
type GormSellerLocationProvider struct {
	db *gorm.DB
}

func NewGormSellerLocationProvider(db *gorm.DB) *GormSellerLocationProvider {
	return &GormSellerLocationProvider{db: db}
}

// GetSellerLocation returns nil without error for unknown sellers and for
// sellers without coordinates; dispatch then ranks without distance.
func (p *GormSellerLocationProvider) GetSellerLocation(ctx context.Context, sellerID kernel.UUID) (*kernel.Location, error) {
	var dto SellerProfileDTO
	err := p.db.WithContext(ctx).First(&dto, "id = ?", sellerID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pgerr.Translate(err)
	}

	if dto.Latitude == nil || dto.Longitude == nil {
		return nil, nil
	}

	loc, err := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// Save upserts a seller profile; used by the seed command.
func (p *GormSellerLocationProvider) Save(ctx context.Context, sellerID kernel.UUID, name string, location *kernel.Location) error {
	dto := SellerProfileDTO{ID: sellerID.Bytes(), Name: name}
	if location != nil {
		lat, lon := location.Latitude(), location.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lon
	}

	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
	return pgerr.Translate(err)
}
