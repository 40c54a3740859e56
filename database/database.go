package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	// ErrStoreUnavailable is returned when the metadata store cannot be
	// reached or written.
	ErrStoreUnavailable = errors.New("metadata store unavailable")

	// ErrDuplicateFingerprint is returned by InsertAsset when a row with the
	// same fingerprint already exists. The unique index makes the insert the
	// dedup authority when callers race on the same content.
	ErrDuplicateFingerprint = errors.New("fingerprint already recorded")
)

type Database struct {
	Lock   sync.Mutex
	Cli    *gorm.DB
	Logger zerolog.Logger
	DryRun bool
}

// EnsureSchema creates the asset table if it is absent. Safe to call on every
// startup; existing rows are never dropped or altered.
func (d *Database) EnsureSchema(ctx context.Context) error {
	d.Lock.Lock()
	defer d.Lock.Unlock()

	if err := d.Cli.WithContext(ctx).AutoMigrate(&Asset{}); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// ContainsFingerprint reports whether any asset with the given fingerprint is
// recorded. Point lookup through the unique fingerprint index.
func (d *Database) ContainsFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	d.Lock.Lock()
	defer d.Lock.Unlock()

	d.Logger.Debug().Str("fingerprint", fingerprint).Msg("lookup fingerprint")

	var count int64
	err := d.Cli.WithContext(ctx).
		Model(&Asset{}).
		Where("fingerprint = ?", fingerprint).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return count > 0, nil
}

// InsertAsset appends one asset row and returns its id.
func (d *Database) InsertAsset(ctx context.Context, path string, size int64, fingerprint string, storedAt time.Time) (uint, error) {
	d.Lock.Lock()
	defer d.Lock.Unlock()

	record := Asset{
		Path:        path,
		Size:        size,
		Fingerprint: fingerprint,
		StoredAt:    storedAt,
	}

	if d.DryRun {
		d.Logger.Info().Object("asset", record).Msg("would record asset (dry run)")
		return 0, nil
	}

	err := d.Cli.WithContext(ctx).Create(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateFingerprint, fingerprint)
		}
		return 0, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	d.Logger.Debug().Object("asset", record).Msg("recorded asset")
	return record.ID, nil
}

// ListAssets returns all recorded assets, oldest first.
func (d *Database) ListAssets(ctx context.Context) ([]Asset, error) {
	d.Lock.Lock()
	defer d.Lock.Unlock()

	var assets []Asset
	err := d.Cli.WithContext(ctx).Order("id").Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return assets, nil
}
