package registry

import (
	"context"
	"errors"
	"time"
)

// Common errors
var (
	ErrNotFound    = errors.New("node record not found")
	ErrInvalidID   = errors.New("invalid node ID")
	ErrStoreClosed = errors.New("registry store is closed")
)

// Record is the per-node state a registry keeps outside the tree itself.
// Records are keyed by node identity and live for exactly as long as the
// node does.
type Record struct {
	NodeID    string    `json:"node_id"`
	Label     string    `json:"label,omitempty"`
	Collapsed bool      `json:"collapsed"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the interface for persisted node-record storage.
type Store interface {
	// Put inserts or replaces the record for a node.
	Put(ctx context.Context, rec Record) error

	// Get retrieves the record for a node ID.
	Get(ctx context.Context, nodeID string) (Record, error)

	// List retrieves all records ordered by creation time.
	List(ctx context.Context) ([]Record, error)

	// SetCollapsed updates the collapsed flag for a node.
	SetCollapsed(ctx context.Context, nodeID string, collapsed bool) error

	// Delete removes the record for a node ID.
	Delete(ctx context.Context, nodeID string) error

	// Clear removes all records.
	Clear(ctx context.Context) error

	// Close closes the store and releases resources.
	Close() error
}
