package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	ListenAddr      string  `json:"listenAddr"`
	DatabasePath    string  `json:"databasePath"`
	DefaultRateSale float64 `json:"defaultRateSale"`
	DefaultRateCost float64 `json:"defaultRateCost"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./longchen_config.json"

func applyDefaults(c *Config) {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "./longchen.db"
	}
	// JPY→TWD rates the product form falls back to.
	if c.DefaultRateSale == 0 {
		c.DefaultRateSale = 0.250
	}
	if c.DefaultRateCost == 0 {
		c.DefaultRateCost = 0.205
	}
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&tempCfg)
	cfg = tempCfg
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)
	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	c := cfg
	applyDefaults(&c)
	return c
}
