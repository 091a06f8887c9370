package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hollowfall/delve/internal/catalog"
	"github.com/hollowfall/delve/internal/config"
	"github.com/hollowfall/delve/internal/dice"
	"github.com/hollowfall/delve/internal/encounter"
	"github.com/hollowfall/delve/internal/logger"
	"github.com/hollowfall/delve/internal/server"
	"github.com/hollowfall/delve/internal/storage"
)

func main() {
	configFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Initialize(cfg.Logging)
	logger.Info("starting delve combat server")

	cat, err := catalog.LoadDir(cfg.DataDir)
	if err != nil {
		logger.Error("failed to load catalogs", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(storage.DialectType(cfg.Database.Driver), cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to open storage", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	engine := encounter.NewEngine(cat, dice.NewTimeSeeded())

	srv := server.New(cfg, cat, engine, store)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
