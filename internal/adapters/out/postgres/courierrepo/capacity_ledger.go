package courierrepo

import (
	"context"

	"fooddispatch/internal/adapters/out/postgres/pgerr"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCapacityLedger implements ports.CapacityLedger with single-statement
// conditional updates, so the check and the write cannot interleave with a
// concurrent transaction.
type GormCapacityLedger struct {
	db *gorm.DB
}

func NewGormCapacityLedger(db *gorm.DB) *GormCapacityLedger {
	return &GormCapacityLedger{db: db}
}

const (
	incrementSQL = `
		UPDATE couriers
		SET current_deliveries = current_deliveries + ?, updated_at = now()
		WHERE id = ?
			AND (? <= 0 OR current_deliveries + ? <= ?)
			AND (NOT ? OR (is_online AND status = ?))
		RETURNING current_deliveries`

	decrementSQL = `
		UPDATE couriers
		SET current_deliveries = GREATEST(current_deliveries + ?, 0), updated_at = now()
		WHERE id = ?
		RETURNING current_deliveries`

	completeSQL = `
		UPDATE couriers
		SET current_deliveries = GREATEST(current_deliveries - 1, 0),
			total_deliveries = total_deliveries + 1,
			updated_at = now()
		WHERE id = ?
		RETURNING current_deliveries`
)

func (l *GormCapacityLedger) Adjust(ctx context.Context, courierID kernel.UUID, delta int, limit ports.CapacityLimit) (int, error) {
	if err := courierID.Validate(); err != nil {
		return 0, err
	}

	id := courierID.Bytes()
	if delta <= 0 {
		return l.returning(ctx, courierID, decrementSQL, delta, id)
	}

	counts, err := l.scan(ctx, incrementSQL,
		delta, id,
		limit.Max, delta, limit.Max,
		limit.RequireAvailable, courier.Active.String(),
	)
	if err != nil {
		return 0, err
	}
	if len(counts) == 1 {
		return counts[0], nil
	}

	// No row matched: either the courier is gone or the condition failed.
	if err = l.exists(ctx, courierID); err != nil {
		return 0, err
	}
	return 0, ports.ErrCapacityConflict
}

func (l *GormCapacityLedger) Complete(ctx context.Context, courierID kernel.UUID) (int, error) {
	if err := courierID.Validate(); err != nil {
		return 0, err
	}
	return l.returning(ctx, courierID, completeSQL, courierID.Bytes())
}

func (l *GormCapacityLedger) returning(ctx context.Context, courierID kernel.UUID, sql string, args ...any) (int, error) {
	counts, err := l.scan(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, errs.NewObjectNotFoundError("courier", courierID.String())
	}
	return counts[0], nil
}

func (l *GormCapacityLedger) scan(ctx context.Context, sql string, args ...any) ([]int, error) {
	var counts []int
	if err := l.db.WithContext(ctx).Raw(sql, args...).Scan(&counts).Error; err != nil {
		return nil, pgerr.Translate(err)
	}
	return counts, nil
}

func (l *GormCapacityLedger) exists(ctx context.Context, courierID kernel.UUID) error {
	var n int64
	if err := l.db.WithContext(ctx).Model(&CourierDTO{}).Where("id = ?", courierID.Bytes()).Count(&n).Error; err != nil {
		return pgerr.Translate(err)
	}
	if n == 0 {
		return errs.NewObjectNotFoundError("courier", courierID.String())
	}
	return nil
}
