package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/skypaper/skypaper/apod"
	"github.com/skypaper/skypaper/config"
	"github.com/skypaper/skypaper/database"
	"github.com/skypaper/skypaper/fileutils"
	"github.com/skypaper/skypaper/scheduler"
)

func daemonCommand(ctx context.Context, args Command, logger zerolog.Logger) error {
	if args.Daemon.DryRun {
		logger = logger.With().Bool("dryrun", true).Logger()
	}

	if args.Daemon.Database == "" {
		return fmt.Errorf("no database specified")
	}

	cfg, err := config.LoadFromFile(args.Daemon.Config)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	dbCli, err := newSQLite(args.Daemon.Database, logger)
	if err != nil {
		return fmt.Errorf("could not open database: %w", err)
	}

	db := &database.Database{
		Cli:    dbCli,
		Logger: logger,
		DryRun: args.Daemon.DryRun,
	}
	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	sched := scheduler.NewScheduler(scheduler.SchedulerParams{
		Logger: logger,
	})

	err = addFetchJobsFromConfig(ctx, sched, cfg, db, logger, args.Daemon.DryRun)
	if err != nil {
		return fmt.Errorf("could not add fetch jobs: %w", err)
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	startConfigFileWatcher(ctx, args.Daemon.Config, logger, ticker, func(cfg *config.Config) {
		sched.RemoveJobs()
		err := addFetchJobsFromConfig(ctx, sched, cfg, db, logger, args.Daemon.DryRun)
		if err != nil {
			logger.Error().Err(err).Msg("failed to add fetch jobs")
		}
	})

	sched.Start()
	defer sched.Stop()

	<-ctx.Done()

	return nil
}

func addFetchJobsFromConfig(
	ctx context.Context,
	sched *scheduler.Scheduler,
	cfg *config.Config,
	db *database.Database,
	logger zerolog.Logger,
	dryRun bool,
) error {
	apiKey := cfg.APIKey
	if envKey, ok := os.LookupEnv("SKYPAPER_API_KEY"); ok {
		apiKey = envKey
	}
	if apiKey == "" {
		return fmt.Errorf("no API key in config or SKYPAPER_API_KEY")
	}

	clientOpts := []apod.ClientOption{}
	if cfg.APIURL != "" {
		clientOpts = append(clientOpts, apod.WithBaseURL(cfg.APIURL))
	}
	client := apod.NewClient(apod.ClientParams{
		APIKey: apiKey,
		Logger: logger,
	}, clientOpts...)

	for _, job := range cfg.Jobs {
		if !job.Enable {
			logger.Info().Object("job", job).Msg("skipping disabled job")
			continue
		}

		logger.Info().Object("job", job).Msg("scheduling fetch job")

		err := sched.AddFetchJob(job.Schedule, fetchJob{
			ctx:    ctx,
			job:    job,
			client: client,
			db:     db,
			dryRun: dryRun,
			logger: logger,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

type fetchJob struct {
	ctx    context.Context
	job    config.ConfigJob
	client *apod.Client
	db     *database.Database
	dryRun bool
	logger zerolog.Logger
}

// Run implements scheduler.FetchJob. Each tick fetches the picture of the
// day it fires on.
func (f fetchJob) Run() {
	err := fetchOnce(f.ctx, fetchParams{
		imageDir:     f.job.ImageDir,
		date:         time.Now().Format(dateLayout),
		hd:           f.job.HD,
		nameByHash:   f.job.NameByHash,
		setWallpaper: f.job.SetWallpaper,
		maxBytes:     f.job.MaxSize.Size,
		client:       f.client,
		db:           f.db,
		dryRun:       f.dryRun,
		logger:       f.logger,
	})
	if err != nil {
		f.logger.Error().Err(err).Str("dir", f.job.ImageDir).Msg("scheduled fetch failed")
	}
}

func startConfigFileWatcher(
	ctx context.Context,
	path string,
	logger zerolog.Logger,
	ticker *time.Ticker,
	onChange func(cfg *config.Config),
) {
	notify := make(chan struct{})
	watcher, err := fileutils.WatchFile(ctx, path, notify, func(err error) {
		logger.Error().Err(err).Msg("config watch error")
	})
	if err != nil {
		logger.Error().Err(err).Msg("could not watch config file")
		return
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				notify <- struct{}{}
			}
		}
	}()

	go func() {
		for range watcher {
			logger.Info().Str("path", path).Msg("config file changed, reloading")
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				logger.Error().Err(err).Msg("could not reload config")
				continue
			}
			onChange(cfg)
		}
	}()
}
