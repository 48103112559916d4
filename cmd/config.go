package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/jobs"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort      string
	LogLevel      string
	StorageDriver string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers []string
	KafkaTopic   string
	KafkaVersion string

	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RedisChannelPrefix string

	PolicyFile string
	Policy     PolicyConfig
}

// PolicyConfig is the dispatch tuning file. Keys missing from the file keep
// their defaults.
type PolicyConfig struct {
	MaxConcurrentDeliveries      int           `toml:"max_concurrent_deliveries"`
	MaxCapacityRetries           uint64        `toml:"max_capacity_retries"`
	RetryDelay                   time.Duration `toml:"retry_delay"`
	StorageTimeout               time.Duration `toml:"storage_timeout"`
	NotifyTimeout                time.Duration `toml:"notify_timeout"`
	ManualAssignEnforcesCapacity bool          `toml:"manual_assign_enforces_capacity"`
	AutoDispatchOnReady          bool          `toml:"auto_dispatch_on_ready"`
	PollSpec                     string        `toml:"poll_spec"`
	PollBatch                    int           `toml:"poll_batch"`
	ListenForReady               bool          `toml:"listen_for_ready"`
}

func DefaultPolicyConfig() PolicyConfig {
	p := commands.DefaultDispatchPolicy()
	return PolicyConfig{
		MaxConcurrentDeliveries:      p.MaxConcurrentDeliveries,
		MaxCapacityRetries:           p.MaxCapacityRetries,
		RetryDelay:                   p.RetryDelay,
		StorageTimeout:               p.StorageTimeout,
		NotifyTimeout:                p.NotifyTimeout,
		ManualAssignEnforcesCapacity: p.ManualAssignEnforcesCapacity,
		AutoDispatchOnReady:          p.AutoDispatchOnReady,
		PollSpec:                     jobs.DefaultPollSpec,
		PollBatch:                    jobs.DefaultPollBatch,
		ListenForReady:               true,
	}
}

func (p PolicyConfig) DispatchPolicy() commands.DispatchPolicy {
	return commands.DispatchPolicy{
		MaxConcurrentDeliveries:      p.MaxConcurrentDeliveries,
		MaxCapacityRetries:           p.MaxCapacityRetries,
		RetryDelay:                   p.RetryDelay,
		StorageTimeout:               p.StorageTimeout,
		NotifyTimeout:                p.NotifyTimeout,
		ManualAssignEnforcesCapacity: p.ManualAssignEnforcesCapacity,
		AutoDispatchOnReady:          p.AutoDispatchOnReady,
	}
}

func (p PolicyConfig) Validate() error {
	var errs []error
	if p.MaxConcurrentDeliveries <= 0 {
		errs = append(errs, errors.New("max_concurrent_deliveries must be positive"))
	}
	if p.RetryDelay < 0 || p.StorageTimeout < 0 || p.NotifyTimeout < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	if p.PollBatch <= 0 {
		errs = append(errs, errors.New("poll_batch must be positive"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads envFile (if it exists) into the environment, builds the
// config from it and decodes the policy file named by DISPATCH_POLICY_FILE.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("REDIS_DB: %w", err)
	}

	config := Config{
		HTTPPort:      getEnv("HTTP_PORT", "8082"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageDriverPostgres),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "fooddispatch"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   os.Getenv("KAFKA_DISPATCH_TOPIC"),
		KafkaVersion: os.Getenv("KAFKA_VERSION"),

		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            redisDB,
		RedisChannelPrefix: os.Getenv("REDIS_CHANNEL_PREFIX"),

		PolicyFile: os.Getenv("DISPATCH_POLICY_FILE"),
		Policy:     DefaultPolicyConfig(),
	}

	switch config.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", config.StorageDriver)
	}

	if config.PolicyFile != "" {
		if _, err = toml.DecodeFile(config.PolicyFile, &config.Policy); err != nil {
			return Config{}, fmt.Errorf("loading policy: %w", err)
		}
	}
	if err = config.Policy.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid policy: %w", err)
	}

	return config, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
