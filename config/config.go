package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/hoshinonyaruko/jungle-snake/snake"
)

// AppConfig holds the structure of the configuration
type AppConfig struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Blocksize    int    `json:"blocksize"`
	Database     string `json:"database"`
	Sprites      string `json:"sprites"`
	Output       string `json:"output"`
	Sound        bool   `json:"sound"`
	Seed         int64  `json:"seed"`
	HighScoreKey string `json:"highscore_key"`
}

const minBlocksize = 4

var (
	instance *AppConfig
	mu       sync.RWMutex
)

// Default returns the values written to a fresh config file.
func Default() AppConfig {
	return AppConfig{
		Width:        30,
		Height:       20,
		Blocksize:    20,
		Database:     "game.db",
		Sprites:      "./sprites",
		Output:       "./output",
		Sound:        true,
		Seed:         0,
		HighScoreKey: "jungleSnakeHighScore",
	}
}

// Validate checks the values the game cannot run without.
func (c AppConfig) Validate() error {
	if _, err := snake.NewGrid(c.Width, c.Height); err != nil {
		return err
	}
	if c.Blocksize < minBlocksize {
		return fmt.Errorf("blocksize %d is smaller than %d", c.Blocksize, minBlocksize)
	}
	if c.HighScoreKey == "" {
		return fmt.Errorf("highscore_key is empty")
	}
	return nil
}

// LoadConfig reads the file at filePath, creating it with defaults if it
// does not exist, and installs the result as the current configuration.
func LoadConfig(filePath string) (*AppConfig, error) {
	cfg := Default()
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		if err := saveConfig(filePath, &cfg); err != nil {
			return nil, err
		}
	} else if err := loadConfig(filePath, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filePath, err)
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()
	return &cfg, nil
}

// loadConfig loads the settings from the file
func loadConfig(filePath string, cfg *AppConfig) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
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
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("encode %s: %w", filePath, err)
	}
	return nil
}

// Get returns a copy of the current configuration, or the defaults when
// nothing has been loaded.
func Get() AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return Default()
	}
	return *instance
}

// GetConfigValue returns the value of the configuration by key
func GetConfigValue(key string) interface{} {
	cfg := Get()
	switch key {
	case "width":
		return cfg.Width
	case "height":
		return cfg.Height
	case "blocksize":
		return cfg.Blocksize
	case "database":
		return cfg.Database
	case "sprites":
		return cfg.Sprites
	case "output":
		return cfg.Output
	case "sound":
		return cfg.Sound
	case "seed":
		return cfg.Seed
	case "highscore_key":
		return cfg.HighScoreKey
	default:
		return ""
	}
}
