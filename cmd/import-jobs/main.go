// Command import-jobs loads crawled job listings from a JSON file
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Daeuning/WSD-Assignment-03/internal/config"
	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/services"
)

func main() {
	file := flag.String("file", "crawled_data.json", "path of crawler output, a JSON array of job records")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to open crawled data")
	}
	defer f.Close()

	cfg := config.Load()
	db, err := database.NewDBInstance(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Database failed to initialize")
	}
	defer db.Close()

	report, err := services.NewImportService(db).ImportJSON(context.Background(), f)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to import jobs")
	}
	log.Info().
		Int("created", report.Created).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("Import finished")
}
