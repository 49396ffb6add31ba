package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/terraincognita07/nibble/internal/api"
	"github.com/terraincognita07/nibble/internal/db"
	"github.com/terraincognita07/nibble/internal/i18n"
)

// environment holds everything a command needs once the store is open.
type environment struct {
	logger   *slog.Logger
	services api.Services
	i18n     *i18n.Manager
	close    func() error
}

func openEnvironment(cfg config, logOutput io.Writer) (*environment, error) {
	logger := newLogger(logOutput, cfg.LogLevel)

	i18nManager, err := i18n.NewManager(cfg.Language, i18n.EmbeddedLocales())
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	repositories := db.NewRepositories(store, cfg.Location)

	return &environment{
		logger:   logger,
		services: api.NewServices(repositories, cfg.Location),
		i18n:     i18nManager,
		close:    closeStore,
	}, nil
}

func (env *environment) Close() {
	if err := env.close(); err != nil {
		env.logger.Error("close store failed", "error", err)
	}
}
