package tiles

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
)

// ErrBlobNotFound is returned by BlobStore.Get for missing keys.
var ErrBlobNotFound = errors.New("blob not found")

// ErrSourceUnavailable is returned by a Fetcher that cannot reach any tile,
// e.g. when no map access token is configured.
var ErrSourceUnavailable = errors.New("tile source unavailable")

// Fetcher downloads a single tile image.
type Fetcher interface {
	Fetch(ctx context.Context, c Coord) (data []byte, contentType string, err error)
}

// StoredBlob captures persisted blob metadata.
type StoredBlob struct {
	Key         string
	Size        int64
	ContentType string
	ETag        string
}

// BlobStore persists tile images (R2/S3 or memory).
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (StoredBlob, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// RegionRepository persists region metadata.
type RegionRepository interface {
	Create(ctx context.Context, region Region) error
	Update(ctx context.Context, region Region) error
	Get(ctx context.Context, id uuid.UUID) (Region, bool, error)
	List(ctx context.Context) ([]Region, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListExpired(ctx context.Context, now time.Time) ([]Region, error)
}

// JobQueue enqueues background work.
type JobQueue interface {
	Enqueue(ctx context.Context, name string, payload any) error
}
