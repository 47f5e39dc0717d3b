package tabs

import (
	"github.com/google/uuid"
)

// Entry is a direct child of a group: either a *Tab or a *TreeNode.
// The interface is sealed so traversals can switch exhaustively over the
// two kinds.
type Entry interface {
	isEntry()
}

// Group is a container of entries. There are exactly three implementations:
// PinnedGroup (flat, tabs only), RootGroup (the unpinned root, holding tabs
// and tree nodes), and TreeNode (an anchor tab plus nested children).
// Groups expose no mutators; all structural edits go through a Collection
// so that parent bookkeeping and pinned flags stay consistent.
type Group interface {
	entries() []Entry
	setEntries([]Entry)
}

// PinnedGroup holds the pinned tabs. It never contains tree nodes and is
// excluded from all tree logic.
type PinnedGroup struct {
	children []Entry
}

func (g *PinnedGroup) entries() []Entry      { return g.children }
func (g *PinnedGroup) setEntries(es []Entry) { g.children = es }

// Tabs returns the pinned tabs in order.
func (g *PinnedGroup) Tabs() []*Tab {
	out := make([]*Tab, 0, len(g.children))
	for _, e := range g.children {
		out = append(out, e.(*Tab))
	}
	return out
}

// RootGroup is the unpinned root container. Its children are a mixture of
// standalone tabs and tree nodes.
type RootGroup struct {
	children []Entry
}

func (g *RootGroup) entries() []Entry      { return g.children }
func (g *RootGroup) setEntries(es []Entry) { g.children = es }

// TreeNode is a tree-tab grouping: one distinguished anchor tab plus an
// ordered list of children, each a tab or a nested node. The anchor is not
// part of the children list; in flat order it precedes them. A node's
// anchor is set at construction and never changes. Removing the anchor
// dissolves the node.
type TreeNode struct {
	id       string
	anchor   *Tab
	children []Entry
}

func newTreeNode(anchor *Tab) *TreeNode {
	if anchor == nil {
		panic("tabs: tree node requires an anchor tab")
	}
	return &TreeNode{
		id:     uuid.New().String(),
		anchor: anchor,
	}
}

func (n *TreeNode) ID() string   { return n.id }
func (n *TreeNode) Anchor() *Tab { return n.anchor }

// Children returns the node's children, excluding the anchor.
func (n *TreeNode) Children() []Entry { return n.children }

func (n *TreeNode) entries() []Entry      { return n.children }
func (n *TreeNode) setEntries(es []Entry) { n.children = es }

func (*TreeNode) isEntry() {}
