package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/skypaper/skypaper/apod"
	"github.com/skypaper/skypaper/cache"
	"github.com/skypaper/skypaper/database"
	"github.com/skypaper/skypaper/fileutils"
	"github.com/skypaper/skypaper/wallpaper"
)

const dateLayout = "2006-01-02"

func fetchCommand(ctx context.Context, args Command, logger zerolog.Logger) error {
	if args.Fetch.DryRun {
		logger = logger.With().Bool("dryrun", true).Logger()
	}

	date := args.Fetch.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args.Fetch.Date)
	}

	db, err := newSQLite(args.Fetch.Database, logger)
	if err != nil {
		return fmt.Errorf("could not open database: %w", err)
	}

	client := apod.NewClient(apod.ClientParams{
		APIKey: args.Fetch.APIKey,
		Logger: logger,
	}, apod.WithBaseURL(args.Fetch.APIURL))

	return fetchOnce(ctx, fetchParams{
		imageDir:     args.Fetch.Dir,
		date:         date,
		hd:           args.Fetch.HD,
		nameByHash:   args.Fetch.NameByHash,
		setWallpaper: args.Fetch.SetWallpaper,
		maxBytes:     args.Fetch.MaxSize.Size,
		client:       client,
		db:           &database.Database{Cli: db, Logger: logger, DryRun: args.Fetch.DryRun},
		dryRun:       args.Fetch.DryRun,
		logger:       logger,
	})
}

type fetchParams struct {
	imageDir     string
	date         string
	hd           bool
	nameByHash   bool
	setWallpaper bool
	maxBytes     int64
	client       *apod.Client
	db           *database.Database
	dryRun       bool
	logger       zerolog.Logger
}

func fetchOnce(ctx context.Context, p fetchParams) error {
	startTime := time.Now()
	p.logger.Info().Str("date", p.date).Str("dir", p.imageDir).Msg("starting fetch")
	defer func() {
		tookSeconds := time.Since(startTime).Seconds()
		if ctx.Err() != nil {
			p.logger.Info().Str("date", p.date).Float64("seconds", tookSeconds).Msg("fetch cancelled")
		} else {
			p.logger.Info().Str("date", p.date).Float64("seconds", tookSeconds).Msg("fetch done")
		}
	}()

	info, err := os.Stat(p.imageDir)
	if err != nil {
		return fmt.Errorf("could not open image dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("image dir must be a directory and be writable")
	}
	if err := fileutils.VerifyWritable(p.imageDir); err != nil {
		return fmt.Errorf("image dir must be writable: %w", err)
	}

	if err := p.db.EnsureSchema(ctx); err != nil {
		return err
	}

	meta, err := p.client.GetMetadata(ctx, p.date)
	if err != nil {
		return err
	}

	p.logger.Info().Object("metadata", meta).Msg("got picture of the day")

	if !meta.IsImage() {
		return fmt.Errorf("picture of %s is %q media, nothing to cache", p.date, meta.MediaType)
	}

	imageURL := meta.ImageURL(p.hd)

	var downloadOpts []apod.DownloadOption
	if p.maxBytes > 0 {
		downloadOpts = append(downloadOpts, apod.WithMaxBytes(p.maxBytes))
	}
	data, err := p.client.Download(ctx, imageURL, downloadOpts...)
	if err != nil {
		return err
	}

	if ctx.Err() != nil {
		return nil
	}

	imagePath, err := fileutils.DeriveAssetPath(imageURL, p.imageDir)
	if err != nil {
		return err
	}
	if p.nameByHash {
		imagePath = filepath.Join(p.imageDir, cache.Fingerprint(data)+filepath.Ext(imagePath))
	}

	store := cache.NewCache(cache.CacheParams{
		Store:  p.db,
		Logger: p.logger,
		DryRun: p.dryRun,
	})

	outcome, err := store.PutIfAbsent(ctx, data, imagePath)
	if err != nil {
		return err
	}

	p.logger.Info().
		Object("outcome", outcome).
		Str("title", meta.Title).
		Str("url", imageURL).
		Msg("picture of the day cached")

	if p.setWallpaper && !p.dryRun {
		return applyWallpaper(ctx, outcome, imagePath, p.logger)
	}

	return nil
}

// applyWallpaper points the desktop at the stored bytes. On a cache hit the
// file may live under a different name than this fetch derived, so fall back
// to whatever path the file actually exists at.
func applyWallpaper(ctx context.Context, outcome cache.Outcome, candidatePath string, logger zerolog.Logger) error {
	path := outcome.Path
	if path == "" {
		if !fileutils.Exists(candidatePath) {
			logger.Warn().
				Str("fingerprint", outcome.Fingerprint).
				Msg("asset cached under another name, not changing wallpaper")
			return nil
		}
		path = candidatePath
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	return wallpaper.Set(ctx, abs, logger)
}
