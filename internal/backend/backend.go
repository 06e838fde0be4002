// Package backend selects a record-store implementation from config.
package backend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dvloznov/budgetbuddy/internal/config"
	"github.com/dvloznov/budgetbuddy/internal/store"
	bqstore "github.com/dvloznov/budgetbuddy/internal/store/bigquery"
	"github.com/dvloznov/budgetbuddy/internal/store/memory"
	"github.com/dvloznov/budgetbuddy/internal/store/sqlite"
)

// Open creates the store named by cfg.DataBackend.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.DataBackend {
	case "memory":
		log.Warn().Msg("using in-memory store; records are lost on restart")
		return memory.New(), nil

	case "sqlite":
		s, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("Open: sqlite backend: %w", err)
		}
		log.Info().Str("db_path", cfg.SQLiteDBPath).Msg("initialized sqlite store")
		return s, nil

	case "bigquery":
		s, err := bqstore.New(ctx, cfg.BigQueryProject, cfg.BigQueryDataset)
		if err != nil {
			return nil, fmt.Errorf("Open: bigquery backend: %w", err)
		}
		log.Info().
			Str("project", cfg.BigQueryProject).
			Str("dataset", cfg.BigQueryDataset).
			Msg("initialized bigquery store")
		return s, nil

	default:
		return nil, fmt.Errorf("Open: unsupported data backend %q", cfg.DataBackend)
	}
}
