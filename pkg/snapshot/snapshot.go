// Package snapshot provides server-side storage of shared layouts.
//
// A snapshot is a named, immutable-by-default copy of a layout that can
// be retrieved later by ID, the backing for shareable links. The engine
// itself never persists anything; snapshots exist purely behind the API.
//
// Two backends are provided:
//   - memory: In-memory storage for development and testing
//   - mongo: MongoDB-backed storage for production deployments
//
// # Usage
//
//	store := snapshot.NewMemoryStore()
//
//	snap := snapshot.New("dashboard-v2", l)
//	if err := store.Put(ctx, snap); err != nil {
//	    return err
//	}
//
//	got, err := store.Get(ctx, snap.ID)
//	if got == nil {
//	    // Not found
//	}
package snapshot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tilegrid/pkg/layout"
)

// Snapshot is a stored layout with identity and timestamps.
type Snapshot struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name,omitempty" bson:"name,omitempty"`
	Layout    layout.Layout `json:"layout" bson:"layout"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Get retrieves a snapshot by ID.
	// Returns nil, nil if the snapshot doesn't exist.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Put stores a snapshot, overwriting any existing one with the same ID.
	Put(ctx context.Context, snap *Snapshot) error

	// Delete removes a snapshot. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all snapshots ordered by creation time, newest first.
	List(ctx context.Context) ([]*Snapshot, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// New creates a snapshot of a layout with a freshly generated ID.
func New(name string, l layout.Layout) *Snapshot {
	now := time.Now().UTC()
	return &Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		Layout:    l,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
