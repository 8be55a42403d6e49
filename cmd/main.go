package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/subreverse/subreverse/internal/config"
	"github.com/subreverse/subreverse/internal/library"
	"github.com/subreverse/subreverse/internal/persistence"
	"github.com/subreverse/subreverse/internal/service"
	"github.com/subreverse/subreverse/pkg/log"
)

func main() {
	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}
	log.InitLogger(log.ParseLevel(cfg.System.LogLevel))

	store, err := persistence.NewSQLiteStore(cfg.Store.DBPath)
	if err != nil {
		log.Fatal("Failed to open store: %v", err)
	}
	defer store.Close()

	scanner, err := library.NewScanner(cfg.Media.Dirs, cfg.Align.PrimaryLanguage, cfg.Align.SecondaryLanguage)
	if err != nil {
		log.Fatal("Failed to create scanner: %v", err)
	}

	c := cron.New()
	svc := service.NewAlignService(*cfg, store, scanner)
	if err := svc.Schedule(context.Background(), c); err != nil {
		log.Fatal("Failed to schedule alignment runs: %v", err)
	}

	c.Start()
	select {}
}
