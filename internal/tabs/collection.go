package tabs

import (
	"fmt"
)

// Collection is the flat tab sequence: the ground-truth ordered view of
// every tab, addressable by a single recursive integer index that spans the
// pinned region first and then the unpinned root. It owns the raw
// structural primitives (insert/remove of tabs and tree nodes at positions
// within a group) and the parent-lookup table; entries themselves carry no
// back-pointers. Tree semantics (when nodes are created, joined, and
// dissolved) live in Delegate.
type Collection struct {
	pinned *PinnedGroup
	root   *RootGroup

	// parent maps every owned entry to the group that directly contains
	// it. A tree node's anchor maps to the node itself.
	parent map[Entry]Group
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{
		pinned: &PinnedGroup{},
		root:   &RootGroup{},
		parent: make(map[Entry]Group),
	}
}

// Pinned returns the pinned-tabs group.
func (c *Collection) Pinned() *PinnedGroup { return c.pinned }

// Root returns the unpinned root group.
func (c *Collection) Root() *RootGroup { return c.root }

// ParentOf returns the group directly containing the entry, or nil if the
// entry is not part of this collection. The pinned and root groups have no
// parent.
func (c *Collection) ParentOf(e Entry) Group {
	return c.parent[e]
}

// Children returns a copy of the group's direct entries. For a TreeNode
// this excludes the anchor.
func (c *Collection) Children(g Group) []Entry {
	es := g.entries()
	out := make([]Entry, len(es))
	copy(out, es)
	return out
}

// PinnedCount returns the number of pinned tabs.
func (c *Collection) PinnedCount() int {
	return len(c.pinned.children)
}

// TotalTabCount returns the number of tabs across both regions.
func (c *Collection) TotalTabCount() int {
	return c.PinnedCount() + c.TabCountRecursive(c.root)
}

// TabCountRecursive returns the number of tabs reachable from the group.
// For a TreeNode this includes its anchor.
func (c *Collection) TabCountRecursive(g Group) int {
	n := 0
	for _, e := range g.entries() {
		n += c.entryTabCount(e)
	}
	if _, ok := g.(*TreeNode); ok {
		n++ // anchor
	}
	return n
}

func (c *Collection) entryTabCount(e Entry) int {
	switch e := e.(type) {
	case *Tab:
		return 1
	case *TreeNode:
		n := 1 // anchor
		for _, ch := range e.children {
			n += c.entryTabCount(ch)
		}
		return n
	default:
		panic(fmt.Sprintf("tabs: unknown entry kind %T", e))
	}
}

// TabAt returns the tab at the given recursive flat index, or nil if the
// index is out of range. Depth-first order visits a node's anchor before
// its children.
func (c *Collection) TabAt(index int) *Tab {
	if index < 0 {
		return nil
	}
	if index < len(c.pinned.children) {
		return c.pinned.children[index].(*Tab)
	}
	rem := index - len(c.pinned.children)
	for _, e := range c.root.children {
		var t *Tab
		t, rem = tabWithin(e, rem)
		if t != nil {
			return t
		}
	}
	return nil
}

// tabWithin walks an entry's span looking for the tab rem positions in.
// Returns the tab if found, otherwise the remaining offset past the entry.
func tabWithin(e Entry, rem int) (*Tab, int) {
	switch e := e.(type) {
	case *Tab:
		if rem == 0 {
			return e, 0
		}
		return nil, rem - 1
	case *TreeNode:
		if rem == 0 {
			return e.anchor, 0
		}
		rem--
		for _, ch := range e.children {
			var t *Tab
			t, rem = tabWithin(ch, rem)
			if t != nil {
				return t, 0
			}
		}
		return nil, rem
	default:
		panic(fmt.Sprintf("tabs: unknown entry kind %T", e))
	}
}

// IndexOfTab returns the tab's recursive flat index.
func (c *Collection) IndexOfTab(tab *Tab) (int, bool) {
	for i, e := range c.pinned.children {
		if e == Entry(tab) {
			return i, true
		}
	}
	idx := len(c.pinned.children)
	for _, e := range c.root.children {
		found, off := indexWithin(e, tab)
		if found {
			return idx + off, true
		}
		idx += off
	}
	return 0, false
}

// indexWithin reports whether tab lives inside the entry; off is either the
// offset of the tab within the entry's span, or the span's tab count when
// the tab is elsewhere.
func indexWithin(e Entry, tab *Tab) (bool, int) {
	switch e := e.(type) {
	case *Tab:
		if e == tab {
			return true, 0
		}
		return false, 1
	case *TreeNode:
		if e.anchor == tab {
			return true, 0
		}
		off := 1
		for _, ch := range e.children {
			found, n := indexWithin(ch, tab)
			if found {
				return true, off + n
			}
			off += n
		}
		return false, off
	default:
		panic(fmt.Sprintf("tabs: unknown entry kind %T", e))
	}
}

// InsertTab inserts a tab as a direct child of the group at the local
// position. Inserting into the pinned group marks the tab pinned;
// everywhere else clears the flag.
func (c *Collection) InsertTab(g Group, pos int, tab *Tab) {
	if tab == nil {
		panic("tabs: insert of nil tab")
	}
	if _, owned := c.parent[tab]; owned {
		panic("tabs: tab already owned by a group")
	}
	es := g.entries()
	if pos < 0 || pos > len(es) {
		panic(fmt.Sprintf("tabs: insert position %d out of range [0,%d]", pos, len(es)))
	}
	es = append(es, nil)
	copy(es[pos+1:], es[pos:])
	es[pos] = tab
	g.setEntries(es)
	c.parent[tab] = g
	_, isPinned := g.(*PinnedGroup)
	tab.pinned = isPinned
}

// RemoveTab removes a tab that is a direct child of the group and returns
// it. The tab's ownership mapping is cleared; its pinned flag is left for
// the next insertion to set.
func (c *Collection) RemoveTab(g Group, tab *Tab) *Tab {
	es := g.entries()
	for i, e := range es {
		if e == Entry(tab) {
			g.setEntries(append(es[:i], es[i+1:]...))
			delete(c.parent, tab)
			return tab
		}
	}
	panic("tabs: tab is not a direct child of the group")
}

// InsertNode inserts a tree node as a direct child of the group at the
// local position. Tree nodes never live in the pinned group.
func (c *Collection) InsertNode(g Group, pos int, node *TreeNode) {
	if node == nil {
		panic("tabs: insert of nil tree node")
	}
	if _, ok := g.(*PinnedGroup); ok {
		panic("tabs: tree node inserted into the pinned group")
	}
	if _, owned := c.parent[node]; owned {
		panic("tabs: tree node already owned by a group")
	}
	es := g.entries()
	if pos < 0 || pos > len(es) {
		panic(fmt.Sprintf("tabs: insert position %d out of range [0,%d]", pos, len(es)))
	}
	es = append(es, nil)
	copy(es[pos+1:], es[pos:])
	es[pos] = node
	g.setEntries(es)
	c.parent[node] = g
}

// RemoveNode removes a tree node that is a direct child of the group and
// returns it. The node's own subtree mappings stay intact so the node can
// be re-inserted elsewhere.
func (c *Collection) RemoveNode(g Group, node *TreeNode) *TreeNode {
	es := g.entries()
	for i, e := range es {
		if e == Entry(node) {
			g.setEntries(append(es[:i], es[i+1:]...))
			delete(c.parent, node)
			return node
		}
	}
	panic("tabs: tree node is not a direct child of the group")
}

// NewNodeWithAnchor creates a tree node owning the given anchor tab. The
// anchor must not currently belong to any group; its parent becomes the
// node itself.
func (c *Collection) NewNodeWithAnchor(anchor *Tab) *TreeNode {
	if _, owned := c.parent[anchor]; owned {
		panic("tabs: anchor tab still owned by a group")
	}
	node := newTreeNode(anchor)
	c.parent[anchor] = node
	anchor.pinned = false
	return node
}

// releaseAnchor drops the anchor's ownership mapping when its node is
// dissolved. The node keeps its anchor field; only the collection's view
// of ownership changes.
func (c *Collection) releaseAnchor(node *TreeNode) {
	delete(c.parent, node.anchor)
}

// locateUnpinnedInsertion finds the deepest (group, local position) pair at
// which a plain tab insertion lands on the given flat index. Boundaries
// between sibling spans resolve to the shallowest group; an index strictly
// inside a node's span descends into it. Panics when the index is not
// reachable; callers validate the range first.
func (c *Collection) locateUnpinnedInsertion(index int) (Group, int) {
	return c.locateInsertion(c.root, c.PinnedCount(), index)
}

func (c *Collection) locateInsertion(g Group, start, index int) (Group, int) {
	cursor := start
	es := g.entries()
	for slot, e := range es {
		if cursor == index {
			return g, slot
		}
		n := c.entryTabCount(e)
		if node, ok := e.(*TreeNode); ok && index < cursor+n {
			// Strictly inside the node's span: its anchor sits at
			// cursor, children begin one past it.
			return c.locateInsertion(node, cursor+1, index)
		}
		cursor += n
	}
	if cursor == index {
		return g, len(es)
	}
	panic(fmt.Sprintf("tabs: flat index %d not reachable in group", index))
}

// rebuildFlatRoot replaces the root's entries with the given tabs in order,
// dropping ownership of the dissolved nodes. Used by delegate teardown.
func (c *Collection) rebuildFlatRoot(order []*Tab, dissolved []*TreeNode) {
	es := make([]Entry, len(order))
	for i, t := range order {
		es[i] = t
		c.parent[t] = c.root
		t.pinned = false
	}
	c.root.children = es
	for _, n := range dissolved {
		delete(c.parent, n)
	}
}
