// Command statement renders a monthly PDF statement straight from the
// record store, without going through the chat transport.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dvloznov/budgetbuddy/internal/backend"
	"github.com/dvloznov/budgetbuddy/internal/config"
	"github.com/dvloznov/budgetbuddy/internal/logger"
	"github.com/dvloznov/budgetbuddy/internal/statement"
)

func main() {
	var (
		owner = flag.Int64("owner", 0, "owner id to render the statement for")
		month = flag.String("month", time.Now().Format("2006-01"), "statement month in YYYY-MM form")
		out   = flag.String("out", "", "output path (defaults to statement-<month>.pdf)")
	)
	flag.Parse()

	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	if *owner == 0 {
		log.Fatal().Msg("-owner is required")
	}
	if _, err := time.Parse("2006-01", *month); err != nil {
		log.Fatal().Str("month", *month).Msg("-month must be in YYYY-MM form")
	}

	cfg := config.Load()
	if cfg.DataBackend == "memory" {
		log.Fatal().Msg("the memory backend holds no records between runs; use sqlite or bigquery")
	}

	ctx := logger.WithContext(context.Background(), log)
	st, err := backend.Open(ctx, cfg, logger.WithComponent(log, "store"))
	if err != nil {
		log.Fatal().Err(err).Msg("opening record store failed")
	}
	defer st.Close()

	recs, err := st.List(ctx, *owner, *month)
	if err != nil {
		log.Fatal().Err(err).Msg("listing records failed")
	}
	if len(recs) == 0 {
		log.Fatal().Str("month", *month).Msg("no transactions found")
	}

	data, err := statement.Render(recs, *month, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("rendering statement failed")
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("statement-%s.pdf", *month)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatal().Err(err).Msg("writing statement failed")
	}
	log.Info().Str("path", path).Int("records", len(recs)).Msg("statement written")
}
