package postgres

import (
	"context"
	"fmt"

	"fooddispatch/internal/adapters/out/postgres/courierrepo"
	"fooddispatch/internal/adapters/out/postgres/earningrepo"
	"fooddispatch/internal/adapters/out/postgres/orderrepo"
	"fooddispatch/internal/adapters/out/postgres/sellerrepo"

	"gorm.io/gorm"
)

// OrderReadyChannel is the LISTEN/NOTIFY channel carrying the id of every
// order that becomes ready without a courier.
const OrderReadyChannel = "order_ready"

var orderReadyTrigger = []string{
	`CREATE OR REPLACE FUNCTION notify_order_ready() RETURNS trigger AS $$
	BEGIN
		PERFORM pg_notify('` + OrderReadyChannel + `', NEW.id::text);
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS orders_notify_ready ON orders`,
	`CREATE TRIGGER orders_notify_ready
		AFTER INSERT OR UPDATE OF status, courier_id ON orders
		FOR EACH ROW
		WHEN (NEW.status = 'ready' AND NEW.courier_id IS NULL)
		EXECUTE FUNCTION notify_order_ready()`,
}

// Migrate creates or updates the schema and installs the order_ready
// trigger. It is idempotent.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
		&earningrepo.EarningDTO{},
		&sellerrepo.SellerProfileDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range orderReadyTrigger {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("install order_ready trigger: %w", err)
		}
	}
	return nil
}
