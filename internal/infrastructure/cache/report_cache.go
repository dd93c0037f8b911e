package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReportCache stores rendered report payloads per owner. Entries are
// invalidated whenever one of the owner's ledger records changes, so a
// short TTL is only a backstop.
type ReportCache interface {
	// Get returns the cached payload for a key, or false when absent
	Get(ctx context.Context, ownerID uuid.UUID, key string) ([]byte, bool, error)

	// Set stores a payload under a key with the given TTL
	Set(ctx context.Context, ownerID uuid.UUID, key string, payload []byte, ttl time.Duration) error

	// InvalidateOwner drops all cached reports for an owner
	InvalidateOwner(ctx context.Context, ownerID uuid.UUID) error

	// Close releases underlying resources
	Close() error
}
