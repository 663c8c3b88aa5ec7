package mortydex

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/mortydex/mortydex/mortydex/database"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log     LogConfig         `toml:"log"`
	DB      database.DBConfig `toml:"db"`
	Catalog CatalogConfig     `toml:"catalog"`
	Server  ServerConfig      `toml:"server"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type CatalogConfig struct {
	BaseURL            string `toml:"base_url"`
	RefreshIntervalMin int    `toml:"refresh_interval_min"`
}

// RefreshInterval converts the configured minutes to a duration, falling back
// to six hours when unset.
func (c CatalogConfig) RefreshInterval() time.Duration {
	if c.RefreshIntervalMin <= 0 {
		return 6 * time.Hour
	}
	return time.Duration(c.RefreshIntervalMin) * time.Minute
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}
