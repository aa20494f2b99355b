package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"oxexplorer/internal/database"
)

// Config holds all explorer settings. Values come from an optional YAML file,
// then a .env file, then the process environment (highest precedence).
type Config struct {
	DB database.DBConfig `yaml:"db"`

	XMLPath  string `yaml:"xml_path"`
	XMLCache bool   `yaml:"xml_cache"`

	BoundaryPath      string `yaml:"boundary_path"`
	BoundaryNameField string `yaml:"boundary_name_field"`
	BoundaryCRS       string `yaml:"boundary_crs"`

	WatchlistPath string `yaml:"watchlist_path"`

	HTTPAddr        string        `yaml:"http_addr"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		DB: database.DBConfig{
			Driver:       database.DriverSQLite,
			Path:         "final/final_oxfordshire.db",
			Host:         "localhost",
			Port:         "1521",
			Service:      "XE",
			QueryTimeout: 10 * time.Second,
		},
		XMLPath:           "CouncilTaxData.xml",
		BoundaryNameField: "WD_NAME",
		BoundaryCRS:       "wgs84",
		WatchlistPath:     "data/wards.txt",
		HTTPAddr:          ":8080",
		LogLevel:          "info",
		LogFormat:         "text",
		ShutdownTimeout:   10 * time.Second,
	}
}

// Load reads configuration. path names an optional YAML file; when empty the
// EXPLORER_CONFIG variable is consulted.
func Load(path string) (*Config, error) {
	// A missing .env is fine; variables already in the environment win.
	_ = godotenv.Load()

	cfg := Defaults()

	if path == "" {
		path = os.Getenv("EXPLORER_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.DB.Driver = getEnvOrDefault("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.Path = getEnvOrDefault("DB_PATH", cfg.DB.Path)
	cfg.DB.Host = getEnvOrDefault("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = getEnvOrDefault("DB_PORT", cfg.DB.Port)
	cfg.DB.Service = getEnvOrDefault("DB_SERVICE", cfg.DB.Service)
	cfg.DB.Username = getEnvOrDefault("DB_USERNAME", cfg.DB.Username)
	cfg.DB.Password = getEnvOrDefault("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.WalletLocation = getEnvOrDefault("DB_WALLET_LOCATION", cfg.DB.WalletLocation)

	cfg.XMLPath = getEnvOrDefault("XML_PATH", cfg.XMLPath)
	cfg.BoundaryPath = getEnvOrDefault("BOUNDARY_PATH", cfg.BoundaryPath)
	cfg.BoundaryNameField = getEnvOrDefault("BOUNDARY_NAME_FIELD", cfg.BoundaryNameField)
	cfg.BoundaryCRS = strings.ToLower(getEnvOrDefault("BOUNDARY_CRS", cfg.BoundaryCRS))
	cfg.WatchlistPath = getEnvOrDefault("WATCHLIST_PATH", cfg.WatchlistPath)
	cfg.HTTPAddr = getEnvOrDefault("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)

	if v := os.Getenv("XML_CACHE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("invalid XML_CACHE: want true or false")
		}
		cfg.XMLCache = b
	}

	var err error
	if cfg.DB.QueryTimeout, err = durationEnv("DB_QUERY_TIMEOUT", cfg.DB.QueryTimeout); err != nil {
		return err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case database.DriverSQLite:
		if c.DB.Path == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case database.DriverOracle:
		if c.DB.Username == "" {
			return errors.New("DB_USERNAME is required for the oracle driver")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: want sqlite or oracle", c.DB.Driver)
	}
	switch c.BoundaryCRS {
	case "wgs84", "bng":
	default:
		return fmt.Errorf("invalid BOUNDARY_CRS %q: want wgs84 or bng", c.BoundaryCRS)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: want json or text", c.LogFormat)
	}
	return nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
