package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration, read from environment variables.
type Config struct {
	Addr         string `envconfig:"APP_ADDR" default:":8081"`
	DBDSN        string `envconfig:"DB_DSN" default:"shopledger.db"` // sqlite file in project root
	LogFile      string `envconfig:"LOG_FILE" default:"./shopledger.log"`
	TemplatesDir string `envconfig:"TEMPLATES_DIR" default:"./web/templates"`
	StaticDir    string `envconfig:"STATIC_DIR" default:"./web/static"`
}

// Load reads configuration from the environment, applying defaults.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	log.Printf("[config] APP_ADDR=%s DB_DSN=%s LOG_FILE=%s", cfg.Addr, cfg.DBDSN, cfg.LogFile)
	return cfg, nil
}
