package cmd

import (
	"context"
	"fmt"

	"fooddispatch/internal/adapters/out/memory"
	"fooddispatch/internal/adapters/out/postgres"
	"fooddispatch/internal/adapters/out/postgres/sellerrepo"
	"fooddispatch/internal/core/ports"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage is the selected storage driver. DB is nil for the memory driver.
type Storage struct {
	UoWFactory ports.UnitOfWorkFactory
	Sellers    ports.SellerLocationProvider
	DB         *gorm.DB
}

// OpenStorage connects the driver named by config.StorageDriver. The
// postgres driver is migrated before use.
func OpenStorage(ctx context.Context, config Config) (Storage, error) {
	if config.StorageDriver == StorageDriverMemory {
		store := memory.NewStore()
		return Storage{
			UoWFactory: memory.NewUnitOfWorkFactory(store),
			Sellers:    store,
		}, nil
	}

	db, err := OpenDB(config)
	if err != nil {
		return Storage{}, err
	}
	if err = postgres.Migrate(ctx, db); err != nil {
		return Storage{}, err
	}

	return Storage{
		UoWFactory: postgres.NewGormUnitOfWorkFactory(db),
		Sellers:    sellerrepo.NewGormSellerLocationProvider(db),
		DB:         db,
	}, nil
}

func OpenDB(config Config) (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Close releases the database pool, if any.
func (s Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
