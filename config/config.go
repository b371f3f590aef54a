package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// AppConfig holds the structure of the configuration
type AppConfig struct {
	SelfPath      string `json:"selfpath" env:"SELF_PATH"`
	Port          string `json:"port" env:"PORT"`
	Blocksize     int    `json:"blocksize" env:"BLOCK_SIZE"`
	Width         int    `json:"width" env:"BOARD_WIDTH"`
	Height        int    `json:"height" env:"BOARD_HEIGHT"`
	Slots         int    `json:"slots" env:"SPAWN_SLOTS"`
	PointsPerCell int    `json:"pointspercell" env:"POINTS_PER_CELL"`
	PointsPerLine int    `json:"pointsperline" env:"POINTS_PER_LINE"`
	CatalogDir    string `json:"catalogdir" env:"CATALOG_DIR"`
	DBPath        string `json:"dbpath" env:"DB_PATH"`
	StaticDir     string `json:"staticdir" env:"STATIC_DIR"`
	LogLevel      string `json:"loglevel" env:"LOG_LEVEL"`
	Seed          uint64 `json:"seed" env:"SEED"`
}

// Default returns the built-in configuration
func Default() AppConfig {
	return AppConfig{
		SelfPath:      "http://www.example.com",
		Port:          "38870",
		Blocksize:     40,
		Width:         8,
		Height:        8,
		Slots:         3,
		PointsPerCell: 1,
		PointsPerLine: 10,
		CatalogDir:    "./blocks",
		DBPath:        "game.db",
		StaticDir:     "./static",
		LogLevel:      "info",
	}
}

// LoadConfig reads the config file, creating it with defaults if it does not exist,
// then applies environment overrides
func LoadConfig(filePath string) (*AppConfig, error) {
	cfg := Default()

	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		if err := saveConfig(filePath, &cfg); err != nil {
			return nil, err
		}
	} else if err := loadConfig(filePath, &cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects sizes the engine cannot run with
func (c *AppConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("board size %dx%d must be positive", c.Width, c.Height)
	case c.Slots <= 0:
		return fmt.Errorf("slots %d must be positive", c.Slots)
	case c.Blocksize <= 0:
		return fmt.Errorf("blocksize %d must be positive", c.Blocksize)
	case c.PointsPerCell < 0 || c.PointsPerLine < 0:
		return errors.New("points must not be negative")
	case c.Port == "":
		return errors.New("port is empty")
	}
	return nil
}

// loadConfig loads the settings from the file
func loadConfig(filePath string, cfg *AppConfig) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}
	return nil
}

// saveConfig saves the current settings to the file
func saveConfig(filePath string, cfg *AppConfig) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
