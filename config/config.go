// Package config loads settings from yaml with environment overrides.
package config

import (
	_ "embed"
	"os"
	"strconv"
	"time"

	"cafedash/server"
	"cafedash/source"
	"cafedash/util"
)

//go:embed sample.yaml
var Sample []byte

// Config is shared by the tui and the api server.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Redis   RedisConfig   `yaml:"redis"`
	Server  server.Config `yaml:"server"`
	Listen  string        `yaml:"listen"`
	Store   string        `yaml:"store"`
	LogFile string        `yaml:"log_file"`
	Layout  string        `yaml:"layout"`
}

// SourceConfig picks where orders come from; a file wins over the api.
type SourceConfig struct {
	APIURL  string        `yaml:"api_url"`
	File    string        `yaml:"file"`
	Timeout time.Duration `yaml:"timeout"`
}

// RedisConfig enables the snapshot cache when Addr is set.
type RedisConfig struct {
	Addr string        `yaml:"addr"`
	Key  string        `yaml:"key"`
	TTL  time.Duration `yaml:"ttl"`
}

// Default returns settings good for local development.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			APIURL:  source.DefaultBaseURL,
			Timeout: 10 * time.Second,
		},
		Server: server.Config{
			Timeout:  10 * time.Second,
			MaxAge:   60 * time.Second,
			PageSize: 10,
		},
		Listen:  ":8080",
		Store:   "memo",
		LogFile: "cafedash.log",
		Layout:  "layout.yaml",
	}
}

// Load reads path over the defaults when it exists, then applies env overrides.
func Load(path string) (cfg *Config, err error) {

	cfg = Default()

	_, statErr := os.Stat(path)
	if path != "" && statErr == nil {
		err = util.LoadConfig(cfg, path)
		if err != nil {
			return
		}
	}

	cfg.Source.APIURL = getEnv("CAFEDASH_API_URL", cfg.Source.APIURL)
	cfg.Source.File = getEnv("CAFEDASH_ORDERS_FILE", cfg.Source.File)
	cfg.Source.Timeout = getEnvDuration("CAFEDASH_TIMEOUT", cfg.Source.Timeout)
	cfg.Redis.Addr = getEnv("CAFEDASH_REDIS_ADDR", cfg.Redis.Addr)
	cfg.Listen = getEnv("CAFEDASH_LISTEN", cfg.Listen)
	cfg.Store = getEnv("CAFEDASH_STORE", cfg.Store)
	cfg.Server.PageSize = getEnvInt("CAFEDASH_PAGE_SIZE", cfg.Server.PageSize)
	return
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
