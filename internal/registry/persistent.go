package registry

import (
	"context"
	"time"

	"github.com/arbortabs/arbor/internal/debug"
)

// Persistent bridges the tree delegate's registry callbacks to a Store,
// so node records survive the process. Callbacks run synchronously inside
// structural mutations and cannot return errors; store failures are logged
// in debug mode and otherwise dropped.
type Persistent struct {
	store Store
}

// NewPersistent wraps a Store as a tree registry.
func NewPersistent(store Store) *Persistent {
	return &Persistent{store: store}
}

// NodeCreated writes a fresh record for the node.
func (p *Persistent) NodeCreated(id string) {
	err := p.store.Put(context.Background(), Record{
		NodeID:    id,
		CreatedAt: time.Now(),
	})
	if err != nil {
		debug.Log("registry: put record for node %s: %v", id, err)
	}
}

// NodeDestroyed removes the node's record.
func (p *Persistent) NodeDestroyed(id string) {
	if err := p.store.Delete(context.Background(), id); err != nil {
		debug.Log("registry: delete record for node %s: %v", id, err)
	}
}
