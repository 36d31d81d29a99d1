package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/clarktrimble/sabot"
	"github.com/joho/godotenv"

	"cafedash/config"
	"cafedash/metrics"
)

func main() {

	path := flag.String("config", "cafedash.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()
	lgr := &sabot.Sabot{Writer: os.Stdout}

	cfg, err := config.Load(*path)
	if err != nil {
		lgr.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	reg := metrics.NewRegistry()

	fetcher := cfg.Fetcher(lgr)
	if cch := cfg.Cache(fetcher, lgr); cch != nil {
		cch.Hits = reg.CacheHits
		cch.Misses = reg.CacheMisses
		fetcher = cch
	}

	svr := cfg.Server.New(fetcher, reg, lgr)

	// a failed warmup is retried on the first request
	err = svr.Refresh(ctx)
	if err != nil {
		lgr.Error(ctx, "failed initial fetch", err)
	}

	lgr.Info(ctx, "listening", "address", cfg.Listen)
	err = http.ListenAndServe(cfg.Listen, svr.Router())
	lgr.Error(ctx, "server stopped", err)
	os.Exit(1)
}
