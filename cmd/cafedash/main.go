package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"
	"github.com/joho/godotenv"
	_ "github.com/marcboeker/go-duckdb"

	"cafedash"
	"cafedash/config"
	"cafedash/store/duck"
	"cafedash/store/memo"
	"cafedash/util"
)

const (
	cfgPath = "cafedash.yaml"
)

func main() {

	path := flag.String("config", cfgPath, "path to config file")
	dump := flag.String("dump", "", "write the effective config to this path and exit")
	flag.Parse()

	_ = godotenv.Load()

	err := util.SampleConfig(config.Sample, *path, 0644)
	if err != nil {
		fmt.Printf("warning: %s\n", err.Error())
	}

	cfg, err := config.Load(*path)
	if err != nil {
		bail(err)
	}

	if *dump != "" {
		err = util.WriteConfig(cfg, *dump, 0644)
		if err != nil {
			bail(err)
		}
		return
	}

	ctx := context.Background()

	logFile := util.OpenLog(cfg.LogFile, 0644)
	defer util.CloseLog(logFile)
	lgr := &sabot.Sabot{Writer: logFile}

	lgr.Info(ctx, "starting cafedash", "config", cfg)

	fetcher := cfg.Fetcher(lgr)
	if cch := cfg.Cache(fetcher, lgr); cch != nil {
		fetcher = cch
	}

	var store cafedash.Store
	switch cfg.Store {
	case "duck":
		dk, err := duck.New(cfg.SourceName())
		if err != nil {
			bail(err)
		}
		defer dk.Close()
		store = dk
	default:
		store = memo.New(cfg.SourceName())
	}

	layout := cfg.Layout
	if _, err := os.Stat(layout); err != nil {
		layout = ""
	}

	model, err := cafedash.NewModel(ctx, store, fetcher, layout, lgr)
	if err != nil {
		bail(err)
	}

	_, err = tea.NewProgram(model).Run()
	if err != nil {
		lgr.Error(ctx, "tui exited", err)
		bail(err)
	}
}

func bail(err error) {
	fmt.Printf("Error: %+v\n", err)
	os.Exit(1)
}
