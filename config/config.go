package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gorustyt/gonavgraph/common/logger"
	"github.com/gorustyt/gonavgraph/navmesh"
	"github.com/hjson/hjson-go/v4"
)

// Config is the HJSON configuration of the navmesh command.
type Config struct {
	Build        navmesh.Options    `json:"build"`
	SpatialIndex SpatialIndexConfig `json:"spatialIndex"`
	Log          logger.Config      `json:"log"`
	Store        StoreConfig        `json:"store"`
	Server       ServerConfig       `json:"server"`
}

type SpatialIndexConfig struct {
	Enabled bool `json:"enabled"`
	CellsX  int  `json:"cellsX"`
	CellsY  int  `json:"cellsY"`
	CellsZ  int  `json:"cellsZ"`
}

type StoreConfig struct {
	// Dsn is a sqlite file path, ":memory:" or "sqlite://path".
	Dsn   string `json:"dsn"`
	Debug bool   `json:"debug"`
}

type ServerConfig struct {
	Addr           string   `json:"addr"`
	AllowedOrigins []string `json:"allowedOrigins"`
	// Mesh is the stored mesh served at startup.
	Mesh string `json:"mesh"`
}

func Default() *Config {
	return &Config{
		Build: navmesh.DefaultOptions(),
		SpatialIndex: SpatialIndexConfig{
			Enabled: true,
			CellsX:  16,
			CellsY:  1,
			CellsZ:  16,
		},
		Log: logger.DefaultConfig(),
		Store: StoreConfig{
			Dsn: "navmesh.db",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			Mesh:           "default",
		},
	}
}

// Load reads path over the defaults; keys missing from the file keep their
// default value. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err = Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte, cfg *Config) error {
	// skip the utf-8 bom some editors write
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}
	if err := hjson.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Build.EpsilonContainsTest < 0 || c.Build.EpsilonCoplanarTest < 0 {
		return errors.New("build epsilons must not be negative")
	}
	if c.SpatialIndex.Enabled && (c.SpatialIndex.CellsX <= 0 || c.SpatialIndex.CellsY <= 0 || c.SpatialIndex.CellsZ <= 0) {
		return fmt.Errorf("spatial index cells must be positive, got %dx%dx%d",
			c.SpatialIndex.CellsX, c.SpatialIndex.CellsY, c.SpatialIndex.CellsZ)
	}
	return nil
}
