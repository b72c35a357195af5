package db

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// OpenPostgres opens a PostgreSQL database connection using pgx.
// If maxConns is 0 it defaults to 25.
func OpenPostgres(dsn string, maxConns int) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}

	if maxConns <= 0 {
		maxConns = 25
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 5)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	return db, nil
}

// OpenPostgresPool opens a Pool backed by a single pgx-managed connection
// pool. Postgres handles read/write concurrency internally, so the writer
// and reader are the same *sqlx.DB.
func OpenPostgresPool(dsn string, maxConns int) (*Pool, error) {
	db, err := OpenPostgres(dsn, maxConns)
	if err != nil {
		return nil, err
	}
	return NewPool(db, db), nil
}
