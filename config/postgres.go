package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // database/sql driver
)

// PGXPoolConfig creates a pgxpool.Config from the loaded settings.
func PGXPoolConfig(cfg *Config) (*pgxpool.Config, error) {
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("config: parse database url: %w", err)
	}

	dbConfig.MaxConns = cfg.MaxConns
	dbConfig.MinConns = cfg.MinConns
	dbConfig.MaxConnLifetime = cfg.MaxConnLifetime
	dbConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	dbConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	return dbConfig, nil
}

// OpenPGXPool connects a pgx connection pool.
func OpenPGXPool(ctx context.Context, cfg *Config) (*pgxpool.Pool, error) {
	dbConfig, configErr := PGXPoolConfig(cfg)
	if configErr != nil {
		return nil, configErr
	}

	pool, connectErr := pgxpool.NewWithConfig(ctx, dbConfig)
	if connectErr != nil {
		return nil, fmt.Errorf("config: connect pgx pool: %w", connectErr)
	}

	return pool, nil
}

// OpenSQLX connects a sqlx.DB over the lib/pq driver.
func OpenSQLX(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("config: connect sqlx: %w", err)
	}

	db.SetMaxOpenConns(int(cfg.MaxConns))
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	return db, nil
}

// OpenSQLDB opens a plain sql.DB over the lib/pq driver.
func OpenSQLDB(cfg *Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("config: open sql db: %w", err)
	}

	db.SetMaxOpenConns(int(cfg.MaxConns))
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	return db, nil
}
