package courierrepo

import (
	"context"
	"errors"

	"fooddispatch/internal/adapters/out/postgres/pgerr"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the courier profile: availability, rating and location.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":      dto.Name,
			"phone":     dto.Phone,
			"is_online": dto.IsOnline,
			"status":    dto.Status,
			"rating":    dto.Rating,
			"latitude":  dto.Latitude,
			"longitude": dto.Longitude,
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}

// GetAll retrieves every courier ordered by name.
func (r *GormCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	return r.find(r.db.WithContext(ctx))
}

// GetAllEligible retrieves the dispatch pool: online, active couriers below
// the concurrency cap.
//
// Example:
//
//	pool, err := repo.GetAllEligible(ctx, courier.MaxConcurrentDeliveries)
//	if err != nil {
//		return fmt.Errorf("failed to load courier pool: %w", err)
//	}
func (r *GormCourierRepository) GetAllEligible(ctx context.Context, maxConcurrent int) ([]*courier.Courier, error) {
	return r.find(r.db.WithContext(ctx).
		Where("is_online AND status = ? AND current_deliveries < ?", courier.Active.String(), maxConcurrent))
}

func (r *GormCourierRepository) find(q *gorm.DB) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	if err := q.Order("name, id").Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate(err)
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}
