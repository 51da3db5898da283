package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage driver names accepted by the "storage.driver" key.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config holds all configuration for the application. Values are read by
// Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	API      APIConfig      `mapstructure:"api"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// StorageConfig selects the backing store: "mongo" for the real document
// store, "memory" for the injected in-process store (offline mode, demos,
// tests). SeedDemo creates the demo user on startup.
type StorageConfig struct {
	Driver   string `mapstructure:"driver"`
	SeedDemo bool   `mapstructure:"seed_demo"`
}

// APIConfig configures the client-side tools (CLI/TUI/MCP): where the
// server lives and how long to wait for it. A bounded timeout keeps a dead
// server from suspending the client indefinitely.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoadConfig reads configuration from file or environment variables.
// Missing config file is fine: defaults plus env vars apply.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	// Nested keys map to env vars: storage.driver -> STORAGE_DRIVER.
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "gym_tracker")
	viper.SetDefault("storage.driver", DriverMongo)
	viper.SetDefault("storage.seed_demo", false)
	viper.SetDefault("api.base_url", "http://localhost:8080")
	viper.SetDefault("api.timeout", "10s")

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	if config.Storage.Driver != DriverMongo && config.Storage.Driver != DriverMemory {
		return config, fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}
	if config.API.Timeout <= 0 {
		return config, fmt.Errorf("api.timeout must be positive, got %s", config.API.Timeout)
	}
	return config, nil
}
