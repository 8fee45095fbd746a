package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

func main() {
	var (
		amount     = flag.Int("amount", 0, "Number of questions to fetch (defaults to IMPORT_AMOUNT)")
		difficulty = flag.String("difficulty", "", "OpenTDB difficulty filter: easy, medium or hard")
		category   = flag.Int("category", 0, "OpenTDB category id filter")
	)
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.Name+"-importer", cfg.Env)

	store, closeStore, err := app.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeStore()

	if *amount <= 0 {
		*amount = cfg.Importer.Amount
	}
	client := external.NewOpenTDBClient(cfg.Importer.OpenTDBURL, &http.Client{Timeout: cfg.Importer.Timeout})
	importer := external.NewImporter(client, store, logger)

	res, err := importer.Run(ctx, external.FetchOptions{
		Amount:     *amount,
		Difficulty: *difficulty,
		Category:   *category,
	})
	logEvent := logger.Info()
	if err != nil {
		logEvent = logger.Error().Err(err)
	}
	logEvent.
		Int("fetched", res.Fetched).
		Int("inserted", res.Inserted).
		Int("skipped_category", res.SkippedCategory).
		Int("skipped_invalid", res.SkippedInvalid).
		Int("rejected", res.Rejected).
		Msg("import finished")
	if err != nil {
		closeStore()
		os.Exit(1)
	}
}
