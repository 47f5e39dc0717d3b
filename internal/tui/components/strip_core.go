package components

import (
	"github.com/arbortabs/arbor/internal/tabs"
)

// This file contains pure functions for the tab strip view.
// These functions take values and return values - no mutation, no side effects.

// Row is one visible line of the tab strip: a tab plus its display
// context. NodeID is set when the row is a tree node's anchor.
type Row struct {
	Tab       *tabs.Tab
	NodeID    string
	Depth     int
	Pinned    bool
	IsAnchor  bool
	HasKids   bool
	Collapsed bool
	FlatIndex int
}

// MoveCursor computes new cursor position within bounds.
func MoveCursor(cursor, delta, itemCount int) int {
	if itemCount == 0 {
		return 0
	}
	newCursor := cursor + delta
	if newCursor < 0 {
		return 0
	}
	if newCursor >= itemCount {
		return itemCount - 1
	}
	return newCursor
}

// AdjustOffset ensures cursor is visible within viewport.
func AdjustOffset(cursor, offset, visibleHeight int) int {
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visibleHeight {
		return cursor - visibleHeight + 1
	}
	return offset
}

// BuildRows flattens a collection into display rows: the pinned region
// first, then the unpinned forest in traversal order. Children of
// collapsed nodes are skipped, but every row keeps its true flat index.
func BuildRows(coll *tabs.Collection, collapsed map[string]bool) []Row {
	rows := make([]Row, 0, coll.TotalTabCount())

	for i, t := range coll.Pinned().Tabs() {
		rows = append(rows, Row{
			Tab:       t,
			Pinned:    true,
			FlatIndex: i,
		})
	}

	flat := coll.PinnedCount()
	var walk func(e tabs.Entry, depth int, visible bool)
	walk = func(e tabs.Entry, depth int, visible bool) {
		switch e := e.(type) {
		case *tabs.Tab:
			if visible {
				rows = append(rows, Row{Tab: e, Depth: depth, FlatIndex: flat})
			}
			flat++
		case *tabs.TreeNode:
			folded := collapsed[e.ID()]
			if visible {
				rows = append(rows, Row{
					Tab:       e.Anchor(),
					NodeID:    e.ID(),
					Depth:     depth,
					IsAnchor:  true,
					HasKids:   len(e.Children()) > 0,
					Collapsed: folded,
					FlatIndex: flat,
				})
			}
			flat++
			for _, ch := range coll.Children(e) {
				walk(ch, depth+1, visible && !folded)
			}
		}
	}
	for _, e := range coll.Children(coll.Root()) {
		walk(e, 0, true)
	}

	return rows
}
