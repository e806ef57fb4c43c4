package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jha-shubham/PRDs/internal/logging"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Run modes.
const (
	ModeDemo  = "demo"
	ModeStdio = "stdio"
	ModeHTTP  = "http"
)

// ID strategies.
const (
	IDStrategySequence = "sequence"
	IDStrategyUUID     = "uuid"
)

// Config defines application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	IDs       IDConfig        `yaml:"ids"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
	Export    ExportConfig    `yaml:"export"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	// Capacity bounds the number of PRDs. Zero means unbounded.
	Capacity int `yaml:"capacity"`
}

type IDConfig struct {
	Strategy string `yaml:"strategy"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type ExportConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Store: StoreConfig{
			Backend: BackendMemory,
		},
		IDs: IDConfig{
			Strategy: IDStrategySequence,
		},
		Transport: TransportConfig{
			Mode: ModeDemo,
		},
		Log: LogConfig{
			Level: "info",
		},
		Export: ExportConfig{
			Format: "json",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
// An empty path falls back to PRD_CONFIG_PATH.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("PRD_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("PRD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PRD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid PRD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if backend := os.Getenv("PRD_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if capStr := os.Getenv("PRD_STORE_CAPACITY"); capStr != "" {
		capacity, err := strconv.Atoi(capStr)
		if err != nil {
			return fmt.Errorf("invalid PRD_STORE_CAPACITY: %w", err)
		}
		cfg.Store.Capacity = capacity
	}
	if strategy := os.Getenv("PRD_ID_STRATEGY"); strategy != "" {
		cfg.IDs.Strategy = strategy
	}
	if mode := os.Getenv("PRD_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("PRD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("PRD_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	switch c.Store.Backend {
	case BackendMemory, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}
	if c.Store.Capacity < 0 {
		errs = append(errs, fmt.Errorf("store capacity must not be negative, got %d", c.Store.Capacity))
	}
	switch c.IDs.Strategy {
	case IDStrategySequence, IDStrategyUUID:
	default:
		errs = append(errs, fmt.Errorf("unknown id strategy %q", c.IDs.Strategy))
	}
	switch c.Transport.Mode {
	case ModeDemo, ModeStdio, ModeHTTP:
	default:
		errs = append(errs, fmt.Errorf("unknown transport mode %q", c.Transport.Mode))
	}
	if c.Transport.Mode == ModeHTTP && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Errorf("server port out of range: %d", c.Server.Port))
	}
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}

	return errors.Join(errs...)
}
