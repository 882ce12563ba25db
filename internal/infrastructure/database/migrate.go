package database

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"promptvault-backend/migrations"
)

// RunMigrations applies the embedded SQL migrations with goose. It opens a
// short-lived database/sql handle because goose does not speak pgxpool.
func (db *PostgresDB) RunMigrations(ctx context.Context) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", db.connString())
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
