package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"restaurant/internal/adapters/out/postgres"

	"github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CreateDatabaseIfMissing connects to the server's maintenance database and creates
// DBName when it does not exist yet.
func CreateDatabaseIfMissing(ctx context.Context, cfg Config) error {
	db, err := sql.Open("postgres", cfg.ServerDSN())
	if err != nil {
		return fmt.Errorf("failed to open postgres server connection: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var exists bool
	err = db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check database %q: %w", cfg.DBName, err)
	}
	if exists {
		return nil
	}

	if _, err = db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(cfg.DBName)); err != nil {
		return fmt.Errorf("failed to create database %q: %w", cfg.DBName, err)
	}
	return nil
}

// OpenDatabase opens the service database through GORM and migrates its tables.
func OpenDatabase(ctx context.Context, cfg Config) (*gorm.DB, error) {
	if err := CreateDatabaseIfMissing(ctx, cfg); err != nil {
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(cfg.DatabaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
