package export

import (
	"github.com/arbortabs/arbor/internal/tabs"
)

// Snapshot is a serializable view of a tab collection: the pinned region
// as a flat list, the unpinned region as a forest.
type Snapshot struct {
	Pinned []TabInfo   `json:"pinned"`
	Roots  []EntryInfo `json:"roots"`
}

// TabInfo carries the externally visible fields of a single tab.
type TabInfo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	GroupTag string `json:"group_tag,omitempty"`
}

// EntryInfo is one entry of the unpinned forest. Kind is "tab" for a
// standalone tab and "node" for a tree node; the node fields are only set
// for the latter.
type EntryInfo struct {
	Kind     string      `json:"kind"`
	Tab      *TabInfo    `json:"tab,omitempty"`
	NodeID   string      `json:"node_id,omitempty"`
	Anchor   *TabInfo    `json:"anchor,omitempty"`
	Children []EntryInfo `json:"children,omitempty"`
}

// Capture builds a snapshot of the collection's current state.
func Capture(coll *tabs.Collection) Snapshot {
	snap := Snapshot{
		Pinned: make([]TabInfo, 0, coll.PinnedCount()),
		Roots:  []EntryInfo{},
	}
	for _, t := range coll.Pinned().Tabs() {
		snap.Pinned = append(snap.Pinned, tabInfo(t))
	}
	for _, e := range coll.Children(coll.Root()) {
		snap.Roots = append(snap.Roots, entryInfo(coll, e))
	}
	return snap
}

func tabInfo(t *tabs.Tab) TabInfo {
	return TabInfo{
		ID:       t.ID(),
		Title:    t.Title(),
		URL:      t.URL(),
		GroupTag: t.GroupTag(),
	}
}

func entryInfo(coll *tabs.Collection, e tabs.Entry) EntryInfo {
	switch e := e.(type) {
	case *tabs.Tab:
		info := tabInfo(e)
		return EntryInfo{Kind: "tab", Tab: &info}
	case *tabs.TreeNode:
		anchor := tabInfo(e.Anchor())
		info := EntryInfo{
			Kind:   "node",
			NodeID: e.ID(),
			Anchor: &anchor,
		}
		for _, ch := range coll.Children(e) {
			info.Children = append(info.Children, entryInfo(coll, ch))
		}
		return info
	}
	return EntryInfo{}
}
