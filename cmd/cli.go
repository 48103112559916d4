package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "fooddispatch/internal/adapters/in/http"
	"fooddispatch/internal/adapters/out/postgres"
	"fooddispatch/internal/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	appName         = "fooddispatch"
	shutdownTimeout = 10 * time.Second
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Courier dispatch service for food orders",
	Long: `fooddispatch assigns couriers to ready food orders, tracks courier capacity
and availability and credits delivery fees to courier earnings.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the background dispatch jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := LoadConfig(envFile)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return Serve(ctx, config)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the postgres schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := LoadConfig(envFile)
		if err != nil {
			return err
		}
		db, err := OpenDB(config)
		if err != nil {
			return err
		}
		defer func() { _ = (Storage{DB: db}).Close() }()
		return postgres.Migrate(cmd.Context(), db)
	},
}

var (
	seedCouriers int
	seedSellers  int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the postgres store with demo couriers and seller profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := LoadConfig(envFile)
		if err != nil {
			return err
		}
		if config.StorageDriver != StorageDriverPostgres {
			return fmt.Errorf("seed needs STORAGE_DRIVER=%s", StorageDriverPostgres)
		}
		storage, err := OpenStorage(cmd.Context(), config)
		if err != nil {
			return err
		}
		defer func() { _ = storage.Close() }()

		seeder := NewSeeder(storage)
		if err = seeder.Seed(cmd.Context(), seedCouriers, seedSellers); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d couriers and %d sellers\n", seedCouriers, seedSellers)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	seedCmd.Flags().IntVar(&seedCouriers, "couriers", 20, "number of couriers to create")
	seedCmd.Flags().IntVar(&seedSellers, "sellers", 5, "number of seller profiles to create")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Serve runs the service until ctx is done, then shuts it down in reverse
// start order.
func Serve(ctx context.Context, config Config) error {
	logger, err := logging.Init(appName, config.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	storage, err := OpenStorage(ctx, config)
	if err != nil {
		return err
	}
	defer func() { _ = storage.Close() }()

	app, err := NewCompositionRoot(config, storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("closing notifiers", zap.Error(err))
		}
	}()

	e, err := httpadapter.NewRouter(app.CreateServer(), logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	if readyListener := app.CreateOrderReadyListener(); readyListener != nil {
		go func() {
			if err := readyListener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("order ready listener stopped", zap.Error(err))
			}
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting",
			zap.String("port", config.HTTPPort),
			zap.String("storage", config.StorageDriver))
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
