// Package history keeps a local record of finished transfers so past batch
// outcomes survive CLI restarts.
package history

import (
	"context"
	"time"
)

// Entry is one finished transfer, successful or not.
type Entry struct {
	ID         string
	FileName   string
	StorageKey string
	Category   string
	Size       int64
	Status     string
	ErrMessage string
	UploadedAt time.Time
}

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}
