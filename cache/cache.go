package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/skypaper/skypaper/database"
)

// ErrWriteFailed is returned when the asset bytes could not be written to
// disk. No metadata row is recorded in that case.
var ErrWriteFailed = errors.New("could not write asset file")

// Store is the metadata side of the cache, implemented by *database.Database.
type Store interface {
	ContainsFingerprint(ctx context.Context, fingerprint string) (bool, error)
	InsertAsset(ctx context.Context, path string, size int64, fingerprint string, storedAt time.Time) (uint, error)
}

type Status string

const (
	// StatusStored means the bytes were new: the file was written and a
	// metadata row recorded.
	StatusStored Status = "stored"
	// StatusAlreadyPresent means the fingerprint was already known; nothing
	// was written.
	StatusAlreadyPresent Status = "already_present"
)

// Outcome describes what PutIfAbsent did with the offered bytes. Path is
// empty on StatusAlreadyPresent: the bytes live at whatever path they were
// first recorded under.
type Outcome struct {
	Status      Status
	Path        string
	Fingerprint string
	Size        int64
}

func (o Outcome) MarshalZerologObject(e *zerolog.Event) {
	e.Str("status", string(o.Status))
	e.Str("fingerprint", o.Fingerprint)
	e.Int64("size", o.Size)
	if o.Path != "" {
		e.Str("path", o.Path)
	}
}

type CacheParams struct {
	Store  Store
	Logger zerolog.Logger
	DryRun bool
}

func NewCache(params CacheParams) *Cache {
	return &Cache{
		store:  params.Store,
		logger: params.Logger,
		dryRun: params.DryRun,
	}
}

// Cache stores byte sequences at most once, keyed by content fingerprint.
// It only ever grows: nothing evicts files or metadata rows.
type Cache struct {
	store  Store
	logger zerolog.Logger
	dryRun bool
}

// PutIfAbsent stores data at candidatePath unless its fingerprint is already
// recorded. On a hit neither the filesystem nor the store is touched. On a
// miss the file write happens first; if it fails no row is recorded. A
// duplicate-fingerprint conflict from the store is reported as
// StatusAlreadyPresent rather than an error, so racing callers converge on
// one row per fingerprint.
func (c *Cache) PutIfAbsent(ctx context.Context, data []byte, candidatePath string) (Outcome, error) {
	fingerprint := Fingerprint(data)
	size := int64(len(data))

	logger := c.logger.With().Str("fingerprint", fingerprint).Logger()

	known, err := c.store.ContainsFingerprint(ctx, fingerprint)
	if err != nil {
		return Outcome{}, err
	}
	if known {
		logger.Info().Msg("asset already cached")
		return Outcome{
			Status:      StatusAlreadyPresent,
			Fingerprint: fingerprint,
			Size:        size,
		}, nil
	}

	if c.dryRun {
		logger.Info().Str("path", candidatePath).Msg("would store asset (dry run)")
	} else {
		if err := os.WriteFile(candidatePath, data, 0644); err != nil {
			return Outcome{}, fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
	}

	_, err = c.store.InsertAsset(ctx, candidatePath, size, fingerprint, time.Now().UTC())
	if err != nil {
		if errors.Is(err, database.ErrDuplicateFingerprint) {
			logger.Info().Msg("asset recorded concurrently")
			return Outcome{
				Status:      StatusAlreadyPresent,
				Fingerprint: fingerprint,
				Size:        size,
			}, nil
		}
		// The file was written but the row was not recorded. Left observable:
		// ContainsFingerprint keeps returning false for these bytes.
		logger.Error().Err(err).Str("path", candidatePath).Msg("asset written but not recorded")
		return Outcome{}, err
	}

	logger.Info().Str("path", candidatePath).Int64("size", size).Msg("stored asset")
	return Outcome{
		Status:      StatusStored,
		Path:        candidatePath,
		Fingerprint: fingerprint,
		Size:        size,
	}, nil
}
