// Package media abstracts the external video host. The production backend
// is S3-compatible object storage; an in-memory backend exists for tests.
package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	sc "github.com/windhans/reels/internal/server/config"
)

// Store holds uploaded video objects and hands back a public locator.
type Store interface {
	// Put stores size bytes from r under key and returns the object URL.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Remove deletes the object a previous Put returned url for.
	Remove(ctx context.Context, url string) error
}

// NewFromConfig builds a Store for the configured backend.
func NewFromConfig(cfg *sc.Config) (Store, error) {
	switch cfg.MediaBackend {
	case "s3":
		return NewS3Store(cfg)
	case "memory":
		return NewMemoryStore("reels"), nil
	default:
		return nil, fmt.Errorf("unknown media backend: %s", cfg.MediaBackend)
	}
}

// StorageKey returns a dated, collision-free object key.
func StorageKey() string {
	d := time.Now()
	return fmt.Sprintf("reels/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}
