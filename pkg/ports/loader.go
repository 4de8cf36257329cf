package ports

import (
	"context"

	"github.com/aretw0/switchboard/pkg/domain"
)

// RecordSource defines where toggle definitions come from.
// This allows the storage layer (file, Loam, Redis, memory) to be decoupled
// from the loader.
type RecordSource interface {
	// Records returns the ordered definitions of one batch.
	// An absent source yields an empty batch, not an error.
	Records(ctx context.Context) ([]domain.Record, error)
}

// Watchable defines an interface for sources that can notify about backend changes.
// This is typically used for hot-reload in long running hosts.
type Watchable interface {
	// Watch returns a channel that is signaled when the definitions change.
	// The value identifies what changed when the backend knows it (e.g. a document ID).
	Watch(ctx context.Context) (<-chan string, error)
}
