package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Бэкенды хранилища документов
const (
	StorageMemory    = "memory"
	StoragePostgres  = "postgres"
	StorageFirestore = "firestore"
)

// Провайдеры аутентификации
const (
	AuthJWT      = "jwt"
	AuthFirebase = "firebase"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Firestore FirestoreConfig `toml:"firestore"`
	Auth      AuthConfig      `toml:"auth"`
	Booking   BookingConfig   `toml:"booking"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Backend string `toml:"backend"` // memory, postgres, firestore
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type FirestoreConfig struct {
	ProjectID       string `toml:"project_id"`
	CredentialsFile string `toml:"credentials_file"`
}

type AuthConfig struct {
	Provider  string `toml:"provider"` // jwt или firebase
	JWTSecret string `toml:"jwt_secret"`
	JWTIssuer string `toml:"jwt_issuer"`
}

// BookingConfig бизнес-правила бронирования
type BookingConfig struct {
	EnforceAvailability  bool    `toml:"enforce_availability"`
	CrossLocationFee     float64 `toml:"cross_location_fee"`
	AdditionalDriverRate float64 `toml:"additional_driver_rate"`
	EarlyBookingBonus    int     `toml:"early_booking_bonus"`
	EarlyBookingDays     int     `toml:"early_booking_days"`
}

type SchedulerConfig struct {
	Enabled bool `toml:"enabled"`
	// LifecycleSpec cron-выражение с секундами
	LifecycleSpec string `toml:"lifecycle_spec"`
}

// Default конфигурация по умолчанию; значения из файла накладываются поверх
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-carrentalservice",
		},
		Storage: StorageConfig{
			Backend: StorageMemory,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Auth: AuthConfig{
			Provider: AuthJWT,
		},
		Booking: BookingConfig{
			EnforceAvailability:  true,
			CrossLocationFee:     50,
			AdditionalDriverRate: 10,
			EarlyBookingBonus:    50,
			EarlyBookingDays:     7,
		},
		Scheduler: SchedulerConfig{
			Enabled:       true,
			LifecycleSpec: "0 */5 * * * *",
		},
	}
}

// Load читает .env (если есть), затем TOML файл, затем переменные окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv перекрывает секреты и бэкенд значениями из окружения
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("FIREBASE_CREDENTIALS_FILE"); v != "" {
		c.Firestore.CredentialsFile = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = strings.ToLower(v)
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort)
	}

	switch c.Storage.Backend {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return errors.New("database.host and database.dbname are required for postgres storage")
		}
	case StorageFirestore:
		if c.Firestore.ProjectID == "" {
			return errors.New("firestore.project_id is required for firestore storage")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}

	switch c.Auth.Provider {
	case AuthJWT:
		if c.Auth.JWTSecret == "" {
			return errors.New("auth.jwt_secret (or JWT_SECRET) is required for jwt provider")
		}
	case AuthFirebase:
		if c.Firestore.ProjectID == "" {
			return errors.New("firestore.project_id is required for firebase auth")
		}
	default:
		return fmt.Errorf("unknown auth.provider %q", c.Auth.Provider)
	}

	if c.Booking.CrossLocationFee < 0 || c.Booking.AdditionalDriverRate < 0 {
		return errors.New("booking fees must not be negative")
	}
	if c.Booking.EarlyBookingBonus < 0 || c.Booking.EarlyBookingDays < 0 {
		return errors.New("booking early bonus settings must not be negative")
	}

	if c.Scheduler.Enabled && strings.TrimSpace(c.Scheduler.LifecycleSpec) == "" {
		return errors.New("scheduler.lifecycle_spec is required when scheduler is enabled")
	}

	return nil
}
