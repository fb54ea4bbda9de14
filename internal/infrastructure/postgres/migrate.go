package postgres

import (
	"fmt"

	_ "github.com/lib/pq" // driver database/sql para goose
	"github.com/pressly/goose/v3"

	"github.com/petverde/green-pos/pkg/config"
)

// Migrate aplica las migraciones SQL pendientes con goose sobre una conexión
// database/sql independiente del pool pgx.
func Migrate(cfg config.DBConfig, dir string) error {
	db, err := goose.OpenDBWithDriver("postgres", cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("abrir DB para migraciones: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}
