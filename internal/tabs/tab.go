package tabs

import (
	"github.com/google/uuid"
)

// Tab is a single browser tab. A tab has stable identity, a pinned flag
// maintained by the collection that owns it, and an optional group tag
// (e.g. a tab-group id) that is unrelated to tree nesting.
type Tab struct {
	id       string
	title    string
	url      string
	pinned   bool
	groupTag string
	openerID string
}

// NewTab creates a new tab with a generated ID.
func NewTab(title, url string) *Tab {
	return &Tab{
		id:    uuid.New().String(),
		title: title,
		url:   url,
	}
}

// NewTabWithID creates a tab with a specific ID (for loading from storage).
func NewTabWithID(id, title, url string) *Tab {
	return &Tab{
		id:    id,
		title: title,
		url:   url,
	}
}

func (t *Tab) ID() string       { return t.id }
func (t *Tab) Title() string    { return t.title }
func (t *Tab) URL() string      { return t.url }
func (t *Tab) Pinned() bool     { return t.pinned }
func (t *Tab) GroupTag() string { return t.groupTag }
func (t *Tab) OpenerID() string { return t.openerID }

func (t *Tab) SetTitle(title string) {
	t.title = title
}

func (t *Tab) SetURL(url string) {
	t.url = url
}

// SetGroupTag tags the tab with a tab-group id. The tag is carried along by
// structural operations but never consulted by them.
func (t *Tab) SetGroupTag(tag string) {
	t.groupTag = tag
}

// SetOpenerID records the tab this one was opened from. Only bulk tree
// construction reads it; incremental insertion takes the opener explicitly.
func (t *Tab) SetOpenerID(id string) {
	t.openerID = id
}

func (*Tab) isEntry() {}
