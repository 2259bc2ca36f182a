package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/gridcall/api/config"
	"github.com/gridcall/api/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates all tables in dependency order.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Race)(nil),
		(*models.Grid)(nil),
		(*models.GridMember)(nil),
		(*models.Prediction)(nil),
		(*models.RaceOutcome)(nil),
		(*models.ScoringSummary)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	constraints := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'races_no_dupes') THEN ALTER TABLE races ADD CONSTRAINT races_no_dupes UNIQUE (year, round); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'predictions_no_dupes') THEN ALTER TABLE predictions ADD CONSTRAINT predictions_no_dupes UNIQUE (user_id, race_id); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'grid_members_no_dupes') THEN ALTER TABLE grid_members ADD CONSTRAINT grid_members_no_dupes UNIQUE (grid_id, user_id); END IF; END $$`,
	}
	for _, stmt := range constraints {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("constraint: %v", err)
		}
	}

	return nil
}
