// Package main provides the battled binary: the server-authoritative combat
// resolution service.
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/okonen/lingoclash/internal/battleapi"
	"github.com/okonen/lingoclash/internal/config"
	"github.com/okonen/lingoclash/internal/game/combat"
	"github.com/okonen/lingoclash/internal/game/vocab"
	"github.com/okonen/lingoclash/internal/observability"
	"github.com/okonen/lingoclash/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	tables := combat.DefaultTables()
	if cfg.Balance.File != "" {
		tables, err = combat.LoadTablesFile(cfg.Balance.File)
		if err != nil {
			logger.Fatal("loading balance tables", zap.Error(err))
		}
	}
	store, err := combat.NewStore(tables)
	if err != nil {
		logger.Fatal("publishing balance tables", zap.Error(err))
	}
	logger.Info("balance tables loaded", zap.String("version", tables.Version))

	var catalog *vocab.Catalog
	if cfg.Content.VocabularyDir != "" {
		catalog, err = vocab.LoadDirectory(cfg.Content.VocabularyDir)
		if err != nil {
			logger.Fatal("loading vocabulary catalog", zap.Error(err))
		}
		logger.Info("vocabulary catalog loaded", zap.Int("items", catalog.Len()))
	} else {
		logger.Info("no vocabulary dir configured, item lookup disabled")
	}

	api := battleapi.NewService(cfg.HTTP, logger, store, catalog)

	lc := server.NewLifecycle(logger, api)
	if err := lc.Run(context.Background()); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}
