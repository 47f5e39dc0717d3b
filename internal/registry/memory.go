package registry

import (
	"sort"
	"time"
)

// Memory is an in-process node registry. It tracks the set of live nodes
// and their collapse state, and satisfies the tree delegate's registry
// callbacks. It is not safe for concurrent use; the tree layer it serves
// is single-threaded.
type Memory struct {
	records map[string]*Record
}

// NewMemory creates an empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]*Record)}
}

// NodeCreated registers a live node with default state.
func (m *Memory) NodeCreated(id string) {
	if id == "" {
		return
	}
	m.records[id] = &Record{NodeID: id, CreatedAt: time.Now()}
}

// NodeDestroyed drops the node's record.
func (m *Memory) NodeDestroyed(id string) {
	delete(m.records, id)
}

// IsLive reports whether the node is currently registered.
func (m *Memory) IsLive(id string) bool {
	_, ok := m.records[id]
	return ok
}

// Len returns the number of live nodes.
func (m *Memory) Len() int { return len(m.records) }

// Collapsed reports the collapse state of a node. Unknown nodes are
// expanded.
func (m *Memory) Collapsed(id string) bool {
	rec, ok := m.records[id]
	return ok && rec.Collapsed
}

// SetCollapsed updates the collapse state of a live node. It returns
// ErrNotFound for nodes the registry has not seen.
func (m *Memory) SetCollapsed(id string, collapsed bool) error {
	rec, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.Collapsed = collapsed
	return nil
}

// SetLabel attaches a display label to a live node.
func (m *Memory) SetLabel(id, label string) error {
	rec, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.Label = label
	return nil
}

// Records returns copies of all live records ordered by creation time.
func (m *Memory) Records() []Record {
	out := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].NodeID < out[j].NodeID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
