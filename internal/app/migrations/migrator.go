package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/pkg/logger"
)

// Migrator applies the numbered SQL files of a directory exactly once each,
// tracking applied versions in schema_migrations.
type Migrator struct {
	db  *pgxpool.Pool
	log zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool) *Migrator {
	return &Migrator{
		db:  db,
		log: logger.Component("migrator"),
	}
}

func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

func isMigrationApplied(ctx context.Context, tx pgx.Tx, version string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// versionOf extracts the version prefix ("001_init.sql" => "001")
func versionOf(filePath string) string {
	return strings.SplitN(filepath.Base(filePath), "_", 2)[0]
}

// MigrateFromFile applies a single migration file inside its own transaction
func (m *Migrator) MigrateFromFile(ctx context.Context, filePath string) (bool, error) {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return false, err
	}

	filename := filepath.Base(filePath)
	version := versionOf(filePath)

	content, err := os.ReadFile(filePath)
	if err != nil {
		return false, fmt.Errorf("failed to read migration file: %w", err)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// serializes concurrent migrators (several API replicas starting together)
	if _, err := tx.Exec(ctx, `LOCK TABLE schema_migrations IN EXCLUSIVE MODE`); err != nil {
		return false, fmt.Errorf("failed to lock migration table: %w", err)
	}

	applied, err := isMigrationApplied(ctx, tx, version)
	if err != nil {
		return false, err
	}
	if applied {
		m.log.Debug().Str("file", filename).Msg("Migration already applied, skipping")
		return false, nil
	}

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return false, fmt.Errorf("error occurred during SQL migration %s: %w", filename, err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return false, fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	m.log.Info().Str("file", filename).Msg("Migration applied")
	return true, nil
}

// MigrateFromDirectory applies every pending *.sql file in lexical order and
// returns the names of the files it applied.
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) ([]string, error) {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".sql") {
			sqlFiles = append(sqlFiles, file.Name())
		}
	}
	sort.Strings(sqlFiles)

	var applied []string
	for _, file := range sqlFiles {
		ok, err := m.MigrateFromFile(ctx, filepath.Join(dirPath, file))
		if err != nil {
			return applied, err
		}
		if ok {
			applied = append(applied, file)
		}
	}

	return applied, nil
}
