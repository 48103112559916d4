package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"fooddispatch/internal/adapters/out/postgres/pgerr"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update writes the whole order row, provided the stored status and courier
// still match expected. The condition is part of the UPDATE statement, so two
// transactions racing for the same order cannot both succeed.
//
// Example:
//
//	expected := ports.ExpectOrder(o)
//	if err := o.AssignCourier(courierID, time.Now()); err != nil {
//		return err
//	}
//	if err := repo.Update(ctx, o, expected); errors.Is(err, ports.ErrOrderStateConflict) {
//		// someone else moved the order first
//	}
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expected ports.OrderPrecondition) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	q := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.Status.String())
	if expected.CourierID == nil {
		q = q.Where("courier_id IS NULL")
	} else {
		q = q.Where("courier_id = ?", expected.CourierID.Bytes())
	}

	result := q.Select("*").Omit("id", "created_at").Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		current, err := r.Get(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: order %s is %s", ports.ErrOrderStateConflict, current.ID(), current.Status())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}

// GetAllReadyUnassigned retrieves up to limit ready orders without a courier,
// oldest first. A limit of zero or less means no limit.
func (r *GormOrderRepository) GetAllReadyUnassigned(ctx context.Context, limit int) ([]*order.Order, error) {
	q := r.db.WithContext(ctx).Where("status = ? AND courier_id IS NULL", order.Ready.String())
	if limit > 0 {
		q = q.Limit(limit)
	}
	return r.find(q)
}

// GetAllActive retrieves every order that is neither delivered nor cancelled.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status NOT IN ?", []string{order.Delivered.String(), order.Cancelled.String()}))
}

func (r *GormOrderRepository) find(q *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := q.Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate(err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
