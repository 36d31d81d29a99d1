package config

import (
	"github.com/go-redis/redis/v8"

	nt "cafedash/entity"
	"cafedash/source"
	"cafedash/source/cache"
)

// Fetcher returns the configured order source, a file when set and the api otherwise.
func (cfg *Config) Fetcher(lgr nt.Logger) source.Fetcher {

	if cfg.Source.File != "" {
		return source.File{Path: cfg.Source.File}
	}
	return source.NewClient(cfg.Source.APIURL, cfg.Source.Timeout, lgr)
}

// Cache wraps next in a redis cache, or returns nil when no redis is configured.
func (cfg *Config) Cache(next source.Fetcher, lgr nt.Logger) *cache.Cache {

	if cfg.Redis.Addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})

	cch := cache.New(rdb, next, lgr)
	if cfg.Redis.Key != "" {
		cch.Key = cfg.Redis.Key
	}
	if cfg.Redis.TTL > 0 {
		cch.TTL = cfg.Redis.TTL
	}
	return cch
}

// SourceName labels where orders come from.
func (cfg *Config) SourceName() string {

	if cfg.Source.File != "" {
		return cfg.Source.File
	}
	return cfg.Source.APIURL
}
