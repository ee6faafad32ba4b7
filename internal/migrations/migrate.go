package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/Simplici0/printstock/internal/logger"
)

const (
	sqliteDialect = "sqlite3"
	migrationsDir = "sql"
)

//go:embed sql/*.sql
var embedded embed.FS

// gooseLogger sends goose progress lines to the application logger.
type gooseLogger struct{}

var _ goose.Logger = gooseLogger{}

func (gooseLogger) Printf(format string, v ...any) {
	logger.L().Info(strings.TrimSpace(fmt.Sprintf(format, v...)), logger.String("component", "goose"))
}

func (gooseLogger) Fatalf(format string, v ...any) {
	logger.L().Fatal(strings.TrimSpace(fmt.Sprintf(format, v...)), logger.String("component", "goose"))
}

// Up runs all pending SQL migrations embedded in the binary.
func Up(db *sql.DB) error {
	goose.SetBaseFS(embedded)
	goose.SetLogger(gooseLogger{})

	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}
