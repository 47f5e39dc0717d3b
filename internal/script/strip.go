package script

import (
	"context"
	"fmt"

	"github.com/arbortabs/arbor/internal/export"
	"github.com/arbortabs/arbor/internal/tabs"
)

// StripScope exposes a tab strip to JavaScript as the global `strip`
// object. Scripts open, close, pin and inspect tabs by the ID that open
// returns; structural mistakes surface as thrown exceptions rather than
// panics.
type StripScope struct {
	engine   *Engine
	delegate *tabs.Delegate
	byID     map[string]*tabs.Tab
}

// NewStripScope creates a scope over an empty collection. registry may be
// nil.
func NewStripScope(registry tabs.TreeRegistry) *StripScope {
	s := &StripScope{
		engine:   NewEngine(),
		delegate: tabs.NewDelegate(tabs.NewCollection(), registry),
		byID:     make(map[string]*tabs.Tab),
	}
	s.setupStripAPI()
	return s
}

// Engine returns the underlying JavaScript engine.
func (s *StripScope) Engine() *Engine { return s.engine }

// Collection returns the collection the scripts operate on.
func (s *StripScope) Collection() *tabs.Collection { return s.delegate.Collection() }

// Execute runs a script against the strip.
func (s *StripScope) Execute(ctx context.Context, script string) (interface{}, error) {
	return s.engine.Execute(ctx, script)
}

func (s *StripScope) setupStripAPI() {
	s.engine.RegisterObject("strip", map[string]interface{}{
		"open":        s.jsOpen,
		"close":       s.jsClose,
		"closeAt":     s.jsCloseAt,
		"pin":         s.jsPin,
		"unpin":       s.jsUnpin,
		"count":       s.jsCount,
		"pinnedCount": s.jsPinnedCount,
		"titles":      s.jsTitles,
		"indexOf":     s.jsIndexOf,
		"render":      s.jsRender,
		"snapshot":    s.jsSnapshot,
		"teardown":    s.jsTeardown,
	})
}

// jsOpen opens a tab: strip.open(title, {url, index, opener, pinned, group}).
// It returns the new tab's ID.
func (s *StripScope) jsOpen(title string, opts map[string]interface{}) (string, error) {
	coll := s.Collection()

	url, _ := opts["url"].(string)
	group, _ := opts["group"].(string)
	pinned, _ := opts["pinned"].(bool)

	var opener *tabs.Tab
	if openerID, ok := opts["opener"].(string); ok && openerID != "" {
		opener = s.byID[openerID]
		if opener == nil {
			return "", fmt.Errorf("unknown opener tab %q", openerID)
		}
	}

	index := coll.TotalTabCount()
	if pinned {
		index = coll.PinnedCount()
	}
	if raw, ok := opts["index"]; ok {
		i, err := toInt(raw)
		if err != nil {
			return "", err
		}
		index = i
	}
	if pinned {
		if index < 0 || index > coll.PinnedCount() {
			return "", fmt.Errorf("pinned index %d out of range [0,%d]", index, coll.PinnedCount())
		}
	} else if index < coll.PinnedCount() || index > coll.TotalTabCount() {
		return "", fmt.Errorf("index %d out of range [%d,%d]", index, coll.PinnedCount(), coll.TotalTabCount())
	}

	tab := tabs.NewTab(title, url)
	if opener != nil {
		tab.SetOpenerID(opener.ID())
	}
	s.delegate.AddTabRecursive(tab, index, group, pinned, opener)
	s.byID[tab.ID()] = tab
	return tab.ID(), nil
}

func (s *StripScope) jsClose(id string) error {
	tab, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("unknown tab %q", id)
	}
	idx, ok := s.Collection().IndexOfTab(tab)
	if !ok {
		return fmt.Errorf("tab %q is no longer in the collection", id)
	}
	s.delegate.RemoveTabAtIndexRecursive(idx)
	delete(s.byID, id)
	return nil
}

// jsCloseAt closes the tab at a flat index and returns its ID.
func (s *StripScope) jsCloseAt(index int) (string, error) {
	if index < 0 || index >= s.Collection().TotalTabCount() {
		return "", fmt.Errorf("index %d out of range", index)
	}
	tab := s.delegate.RemoveTabAtIndexRecursive(index)
	delete(s.byID, tab.ID())
	return tab.ID(), nil
}

func (s *StripScope) jsPin(id string) error {
	tab, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("unknown tab %q", id)
	}
	s.delegate.PinTab(tab)
	return nil
}

func (s *StripScope) jsUnpin(id string) error {
	tab, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("unknown tab %q", id)
	}
	s.delegate.UnpinTab(tab)
	return nil
}

func (s *StripScope) jsCount() int       { return s.Collection().TotalTabCount() }
func (s *StripScope) jsPinnedCount() int { return s.Collection().PinnedCount() }

func (s *StripScope) jsTitles() []string {
	coll := s.Collection()
	out := make([]string, 0, coll.TotalTabCount())
	for i := 0; i < coll.TotalTabCount(); i++ {
		out = append(out, coll.TabAt(i).Title())
	}
	return out
}

func (s *StripScope) jsIndexOf(id string) (int, error) {
	tab, ok := s.byID[id]
	if !ok {
		return 0, fmt.Errorf("unknown tab %q", id)
	}
	idx, ok := s.Collection().IndexOfTab(tab)
	if !ok {
		return 0, fmt.Errorf("tab %q is no longer in the collection", id)
	}
	return idx, nil
}

func (s *StripScope) jsRender() (string, error) {
	out, err := export.NewTextExporter().Export(context.Background(), s.Collection())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *StripScope) jsSnapshot() export.Snapshot {
	return export.Capture(s.Collection())
}

func (s *StripScope) jsTeardown() {
	s.delegate.Close()
}

// toInt normalizes the numeric types Goja hands to Go callbacks.
func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}
