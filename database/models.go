package database

import (
	"time"

	"github.com/rs/zerolog"
)

// Asset is one stored image. Rows are append-only: they are created at the
// first store of a fingerprint and never updated or deleted.
type Asset struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Path        string `gorm:"not null"`
	Size        int64  `gorm:"not null"`
	Fingerprint string `gorm:"size:64;not null;uniqueIndex"`
	StoredAt    time.Time
}

func (a Asset) MarshalZerologObject(e *zerolog.Event) {
	e.Uint("id", a.ID)
	e.Str("path", a.Path)
	e.Int64("size", a.Size)
	e.Str("fingerprint", a.Fingerprint)
	e.Time("stored_at", a.StoredAt)
}
