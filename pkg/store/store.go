// Package store provides persistent archival of computed layouts.
//
// Layouts are cheap to recompute but sessions want history: a saved layout
// can be reloaded, re-rendered, or compared after the underlying graph
// changed. The Store interface supports:
//   - Save/Get/Delete by record ID
//   - Listing recent records, newest first
//
// Implementations:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for the hosted service
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Record is one archived layout with its identifying metadata.
type Record struct {
	ID        string       `json:"id" bson:"id"`
	Name      string       `json:"name,omitempty" bson:"name,omitempty"`
	GraphHash string       `json:"graph_hash,omitempty" bson:"graph_hash,omitempty"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	Layout    graph.Layout `json:"layout" bson:"layout"`
}

// NewRecord wraps a layout in a Record with a fresh ID and timestamp.
func NewRecord(name, graphHash string, l graph.Layout) Record {
	return Record{
		ID:        uuid.NewString(),
		Name:      name,
		GraphHash: graphHash,
		CreatedAt: time.Now().UTC(),
		Layout:    l,
	}
}

// Store persists layout records.
type Store interface {
	// Save inserts or replaces a record by ID.
	Save(ctx context.Context, rec Record) error

	// Get retrieves a record by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)

	// Delete removes a record by ID. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
