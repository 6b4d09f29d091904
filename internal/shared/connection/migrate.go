package connection

import (
	"context"
	"database/sql"
	"fmt"

	"employee-management/db/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const migrationTable = "schema_migrations"

// Migrate applies (up) or rolls back one version of (down) the embedded
// schema migrations.
func Migrate(ctx context.Context, db *sql.DB, direction string) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrationTable)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	var err error
	switch direction {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", direction, err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	zap.L().Named("connection").Info("migrations applied",
		zap.String("direction", direction),
		zap.Int64("version", version),
	)
	return nil
}
