package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	appRepos "github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/bootstrap"
	"github.com/yigit/admissions/internal/config"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/tokenstore"
)

// environment is the wired backend the subcommands run against
type environment struct {
	cfg      *config.Config
	database *db.PostgresDB
	repos    *appRepos.Repositories
	deps     *bootstrap.Dependencies
	logger   zerolog.Logger
}

func newEnvironment(ctx context.Context, configPath string) (*environment, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repos := appRepos.NewRepositories(database.Pool)
	// CLI sessions never log out, so revocations need not be shared
	deps := bootstrap.BuildDependencies(
		database,
		bootstrap.StoresFromRepositories(repos),
		bootstrap.NewJWTService(cfg),
		tokenstore.NewMemoryStore(),
		database.Ping,
		lgr,
	)

	return &environment{
		cfg:      cfg,
		database: database,
		repos:    repos,
		deps:     deps,
		logger:   lgr,
	}, nil
}

func (e *environment) Close() {
	e.database.Close()
}
