package main

import (
	"context"

	"github.com/docker/go-units"
	"github.com/rs/zerolog"
	"github.com/skypaper/skypaper/database"
)

func listCommand(ctx context.Context, args Command, logger zerolog.Logger) error {
	dbCli, err := newSQLite(args.List.Database, logger)
	if err != nil {
		return err
	}

	db := &database.Database{Cli: dbCli, Logger: logger}
	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	assets, err := db.ListAssets(ctx)
	if err != nil {
		return err
	}

	var totalBytes int64
	for _, a := range assets {
		logger.Info().Object("asset", a).Msg("cached asset")
		totalBytes += a.Size
	}

	logger.Info().
		Int("assets", len(assets)).
		Str("total_size", units.HumanSize(float64(totalBytes))).
		Msg("cache summary")

	return nil
}
