package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/ringsizer/storefront/internal/config"
	"github.com/ringsizer/storefront/internal/repository/dao"
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	return OpenPostgresWithURL(conf.DSN())
}

// OpenPostgresWithURL accepts either a URL or a key=value DSN and migrates the credential table.
func OpenPostgresWithURL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open() -> %w", err)
	}

	if err = dao.InitTables(db); err != nil {
		return nil, fmt.Errorf("dao.InitTables() -> %w", err)
	}

	return db, nil
}

// OpenSQLite opens dsn with the pure-Go SQLite driver and creates the credential table.
func OpenSQLite(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() -> %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("db.Ping() -> %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err = dao.NewSQLiteCredentialDAO(db).EnsureSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("EnsureSchema() -> %w", err)
	}

	return db, nil
}
