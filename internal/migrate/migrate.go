package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/RaikyD/parcel-orders/internal/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// gooseLogger routes goose output through the service logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	logger.Info(fmt.Sprintf(format, v...))
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	logger.Error(fmt.Sprintf(format, v...))
}

// Up brings the schema behind the Postgres store to the latest version.
func Up(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	// каталог указываем относительно embed FS
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	v, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	logger.Info("migrations applied", "version", v)
	return nil
}
