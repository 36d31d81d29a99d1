package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"cafedash/source"
	"cafedash/util/utiltest"
)

func TestLoadMissingUsesDefaults(t *testing.T) {

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadSample(t *testing.T) {

	path := filepath.Join(t.TempDir(), "cafedash.yaml")
	require.NoError(t, os.WriteFile(path, Sample, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.Source.APIURL)
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "cafedash:orders", cfg.Redis.Key)
	assert.Equal(t, 60*time.Second, cfg.Server.MaxAge)
	assert.Equal(t, "", cfg.Redis.Addr)
}

func TestEnvOverrides(t *testing.T) {

	t.Setenv("CAFEDASH_API_URL", "http://backend:8000/api")
	t.Setenv("CAFEDASH_REDIS_ADDR", "redis:6379")
	t.Setenv("CAFEDASH_LISTEN", ":9090")
	t.Setenv("CAFEDASH_PAGE_SIZE", "bogus")
	t.Setenv("CAFEDASH_TIMEOUT", "3s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://backend:8000/api", cfg.Source.APIURL)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, 10, cfg.Server.PageSize)
	assert.Equal(t, 3*time.Second, cfg.Source.Timeout)
}

func TestLoadBadYaml(t *testing.T) {

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [oops"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSampleMatchesConfig(t *testing.T) {

	var cfg Config
	require.NoError(t, yaml.Unmarshal(Sample, &cfg))
	assert.Equal(t, "memo", cfg.Store)
}

func TestFetcher(t *testing.T) {

	cfg := Default()
	assert.IsType(t, &source.Client{}, cfg.Fetcher(utiltest.NopLogger{}))

	cfg.Source.File = "orders.json"
	assert.Equal(t, source.File{Path: "orders.json"}, cfg.Fetcher(utiltest.NopLogger{}))
}

func TestCache(t *testing.T) {

	cfg := Default()
	assert.Nil(t, cfg.Cache(source.File{}, utiltest.NopLogger{}))

	mr := miniredis.RunT(t)
	cfg.Redis = RedisConfig{Addr: mr.Addr(), Key: "test:orders", TTL: 5 * time.Second}

	cch := cfg.Cache(source.File{Path: "testdata/orders.json"}, utiltest.NopLogger{})
	require.NotNil(t, cch)
	assert.Equal(t, "test:orders", cch.Key)
	assert.Equal(t, 5*time.Second, cch.TTL)

	orders, err := cch.FetchOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.True(t, mr.Exists("test:orders"))
	assert.Equal(t, 5*time.Second, mr.TTL("test:orders"))
}
