package tabs

import (
	"errors"
	"fmt"

	"github.com/arbortabs/arbor/internal/debug"
)

// ErrNotImplemented is returned by operations whose contract is declared
// but whose algorithm is deliberately absent.
var ErrNotImplemented = errors.New("tabs: not implemented")

// Delegate layers tree-tab semantics over a Collection. On every tab
// insertion and removal it decides whether to create, extend, or dissolve
// tree nodes so the hierarchical view stays consistent with the flat view,
// and reports node lifecycle events to the registry.
//
// All operations are synchronous and single-threaded; each call completes,
// including registry notification, before the next begins.
type Delegate struct {
	coll     *Collection
	registry TreeRegistry

	// tearingDown short-circuits structural handling while teardown is
	// dissolving nodes, so registry callbacks cannot re-enter.
	tearingDown bool
}

// NewDelegate builds tree structure over an existing collection and returns
// the delegate managing it. The unpinned root must be flat (ordinary tabs
// only); contiguous opener chains are folded into nested tree nodes, and
// the registry is told about every node created. Construction preserves the
// flat tab order exactly.
func NewDelegate(coll *Collection, registry TreeRegistry) *Delegate {
	if registry == nil {
		registry = NopRegistry{}
	}
	d := &Delegate{coll: coll, registry: registry}
	d.buildTrees()
	return d
}

// Collection returns the underlying flat tab sequence.
func (d *Delegate) Collection() *Collection { return d.coll }

// AddTabRecursive inserts tab so that it occupies recursive flat position
// index afterwards. opener, if non-nil, is the tab that caused this one to
// be created and is used as a placement hint: when the insertion point is
// contiguous with the opener's tree, the tab joins that tree as a plain
// child; otherwise it is wrapped in a brand-new single-tab tree node at the
// requested position. Pinned insertions go straight into the pinned region
// and never touch tree structure.
func (d *Delegate) AddTabRecursive(tab *Tab, index int, groupTag string, pinned bool, opener *Tab) {
	if d.tearingDown {
		return
	}
	if groupTag != "" {
		tab.SetGroupTag(groupTag)
	}
	if pinned {
		if index < 0 || index > d.coll.PinnedCount() {
			panic(fmt.Sprintf("tabs: pinned insertion index %d out of range [0,%d]", index, d.coll.PinnedCount()))
		}
		d.coll.InsertTab(d.coll.Pinned(), index, tab)
		d.checkIntegrity()
		return
	}
	if d.joinOpenerTree(tab, index, opener) {
		d.checkIntegrity()
		return
	}
	d.insertAsNewNode(tab, index)
	d.checkIntegrity()
}

// joinOpenerTree attempts to graft tab onto the opener's tree as a plain
// child. It reports false when the join preconditions fail and the caller
// should fall back to the new-node path.
func (d *Delegate) joinOpenerTree(tab *Tab, index int, opener *Tab) bool {
	if opener == nil || index == 0 {
		return false
	}
	og := d.coll.ParentOf(opener)
	if og == nil {
		panic("tabs: opener tab has no owning group")
	}
	openerNode, ok := og.(*TreeNode)
	if !ok {
		// Every unpinned tab lives inside a tree node; anything else
		// is an ownership-shape violation.
		panic("tabs: opener tab is not inside a tree node")
	}

	prev := d.coll.TabAt(index - 1)
	if prev == nil {
		return false
	}
	prevNode, ok := d.coll.ParentOf(prev).(*TreeNode)
	if !ok {
		return false // preceding tab is pinned or standalone
	}

	// A child may only be grafted onto a tree at a position contiguous
	// with that tree's own span: both the opener and the preceding tab
	// must belong to the same top-level tree.
	if d.topLevelNode(openerNode) != d.topLevelNode(prevNode) {
		return false
	}

	// Walk the opener node's children starting right after the opener's
	// own recursive position, accumulating spans until the running flat
	// position reaches the requested index. The number of children
	// walked is the local insertion slot.
	openerIdx, ok := d.coll.IndexOfTab(opener)
	if !ok {
		panic("tabs: opener tab not present in the flat sequence")
	}
	cursor := openerIdx + 1
	slot := 0
	if opener != openerNode.anchor {
		for i, e := range openerNode.children {
			if e == Entry(opener) {
				slot = i + 1
				break
			}
		}
	}
	for slot < len(openerNode.children) && cursor < index {
		cursor += d.coll.entryTabCount(openerNode.children[slot])
		slot++
	}
	if cursor != index {
		return false // no child boundary lands on the requested index
	}

	d.coll.InsertTab(openerNode, slot, tab)
	if debug.Enabled() {
		got, ok := d.coll.IndexOfTab(tab)
		debug.Assert(ok && got == index, "joined tab landed at flat index %d, want %d", got, index)
	}
	return true
}

// insertAsNewNode inserts tab at the flat index as an ordinary tab, then
// immediately re-wraps it in a new single-tab tree node at the same
// position and notifies the registry.
func (d *Delegate) insertAsNewNode(tab *Tab, index int) {
	if index < d.coll.PinnedCount() || index > d.coll.TotalTabCount() {
		panic(fmt.Sprintf("tabs: unpinned insertion index %d out of range [%d,%d]",
			index, d.coll.PinnedCount(), d.coll.TotalTabCount()))
	}
	g, slot := d.coll.locateUnpinnedInsertion(index)
	d.coll.InsertTab(g, slot, tab)
	d.coll.RemoveTab(g, tab)
	node := d.coll.NewNodeWithAnchor(tab)
	d.coll.InsertNode(g, slot, node)
	d.registry.NodeCreated(node.ID())
	if debug.Enabled() {
		got, ok := d.coll.IndexOfTab(tab)
		debug.Assert(ok && got == index, "new node anchor landed at flat index %d, want %d", got, index)
	}
}

// RemoveTabAtIndexRecursive removes and returns the tab at the given
// recursive flat position. Removing a tree node's anchor dissolves the
// node: the registry is notified, then the node's children are promoted,
// in order, into the node's former parent at its former position.
func (d *Delegate) RemoveTabAtIndexRecursive(index int) *Tab {
	if d.tearingDown {
		return nil
	}
	tab := d.coll.TabAt(index)
	if tab == nil {
		panic(fmt.Sprintf("tabs: removal index %d out of range", index))
	}
	g := d.coll.ParentOf(tab)
	if g == nil {
		panic("tabs: tab has no owning group")
	}

	node, inTree := g.(*TreeNode)
	if !inTree || tab != node.anchor {
		// Pinned tab, standalone root tab, or a plain child inside a
		// node: removal needs no tree bookkeeping.
		d.coll.RemoveTab(g, tab)
		d.checkIntegrity()
		return tab
	}

	d.registry.NodeDestroyed(node.ID())

	owner := d.coll.ParentOf(node)
	if owner == nil {
		panic("tabs: tree node has no owning group")
	}
	slot := entrySlot(owner, node)
	d.coll.releaseAnchor(node)

	// Promote children: iterating in reverse and inserting at the fixed
	// slot reproduces their forward order without tracking a moving
	// cursor. The node itself shifts right and is removed last.
	children := d.coll.Children(node)
	for i := len(children) - 1; i >= 0; i-- {
		switch ch := children[i].(type) {
		case *Tab:
			d.coll.RemoveTab(node, ch)
			d.coll.InsertTab(owner, slot, ch)
		case *TreeNode:
			d.coll.RemoveNode(node, ch)
			d.coll.InsertNode(owner, slot, ch)
		}
	}
	d.coll.RemoveNode(owner, node)
	d.checkIntegrity()
	return tab
}

// MoveTabsRecursive is the batch relocation contract: move the tabs at the
// given flat indices to destination, optionally changing pin and group-tag
// state, preserving or dissolving tree relationships per retainTypes. No
// algorithm is implemented; callers get a loud failure rather than a
// partial move.
func (d *Delegate) MoveTabsRecursive(indices []int, destination int, groupTag string, pinned bool, retainTypes bool) error {
	return fmt.Errorf("MoveTabsRecursive: %w", ErrNotImplemented)
}

// PinTab detaches the tab from any tree structure (dissolving its node if
// it is an anchor) and appends it to the pinned region.
func (d *Delegate) PinTab(tab *Tab) {
	if d.tearingDown || tab.Pinned() {
		return
	}
	idx, ok := d.coll.IndexOfTab(tab)
	if !ok {
		panic("tabs: pin of a tab outside the collection")
	}
	removed := d.RemoveTabAtIndexRecursive(idx)
	debug.Assert(removed == tab, "pin removed a different tab")
	d.AddTabRecursive(tab, d.coll.PinnedCount(), tab.GroupTag(), true, nil)
}

// UnpinTab removes the tab from the pinned region and re-inserts it as the
// first unpinned tab through the normal new-node path.
func (d *Delegate) UnpinTab(tab *Tab) {
	if d.tearingDown || !tab.Pinned() {
		return
	}
	idx, ok := d.coll.IndexOfTab(tab)
	if !ok {
		panic("tabs: unpin of a tab outside the collection")
	}
	d.RemoveTabAtIndexRecursive(idx)
	d.AddTabRecursive(tab, d.coll.PinnedCount(), tab.GroupTag(), false, nil)
}

// Close dissolves every tree node back into a flat sequence of tabs in the
// unpinned root, in traversal order, leaving the collection in its
// baseline, tree-free shape. The registry is notified for every dissolved
// node. Order is preserved exactly.
func (d *Delegate) Close() {
	if d.tearingDown {
		return
	}
	d.tearingDown = true
	defer func() { d.tearingDown = false }()

	var order []*Tab
	var dissolved []*TreeNode
	var collect func(e Entry)
	collect = func(e Entry) {
		switch e := e.(type) {
		case *Tab:
			order = append(order, e)
		case *TreeNode:
			dissolved = append(dissolved, e)
			order = append(order, e.anchor)
			for _, ch := range e.children {
				collect(ch)
			}
		}
	}
	for _, e := range d.coll.Root().children {
		collect(e)
	}

	d.coll.rebuildFlatRoot(order, dissolved)
	for _, n := range dissolved {
		d.registry.NodeDestroyed(n.ID())
	}
}

// buildTrees folds a flat unpinned root into tree nodes by contiguous
// opener-chain inference: every tab becomes a node, nested under its
// opener's node when that node's span ends exactly where the tab sits.
func (d *Delegate) buildTrees() {
	root := d.coll.Root()
	snapshot := d.coll.Children(root)
	order := make([]*Tab, 0, len(snapshot))
	for _, e := range snapshot {
		t, ok := e.(*Tab)
		if !ok {
			panic("tabs: tree construction requires a flat unpinned root")
		}
		order = append(order, t)
	}
	for _, t := range order {
		d.coll.RemoveTab(root, t)
	}

	nodeByTab := make(map[string]*TreeNode, len(order))
	for _, t := range order {
		node := d.coll.NewNodeWithAnchor(t)
		if parent := d.openerAttachPoint(nodeByTab, t); parent != nil {
			d.coll.InsertNode(parent, len(parent.children), node)
		} else {
			d.coll.InsertNode(root, len(root.children), node)
		}
		nodeByTab[t.ID()] = node
		d.registry.NodeCreated(node.ID())
	}
	d.checkIntegrity()
}

// openerAttachPoint returns the opener's node when appending under it keeps
// the flat order intact, which holds exactly when the node lies on the
// rightmost spine of the last top-level tree built so far.
func (d *Delegate) openerAttachPoint(nodeByTab map[string]*TreeNode, t *Tab) *TreeNode {
	if t.OpenerID() == "" {
		return nil
	}
	target := nodeByTab[t.OpenerID()]
	if target == nil {
		return nil
	}
	rootEntries := d.coll.Root().children
	if len(rootEntries) == 0 {
		return nil
	}
	cur, ok := rootEntries[len(rootEntries)-1].(*TreeNode)
	for ok {
		if cur == target {
			return target
		}
		if len(cur.children) == 0 {
			return nil
		}
		cur, ok = cur.children[len(cur.children)-1].(*TreeNode)
	}
	return nil
}

// topLevelNode walks parent links to the outermost tree node containing n.
func (d *Delegate) topLevelNode(n *TreeNode) *TreeNode {
	for {
		parent, ok := d.coll.ParentOf(n).(*TreeNode)
		if !ok {
			return n
		}
		n = parent
	}
}

// entrySlot returns the local position of an entry within its group.
func entrySlot(g Group, e Entry) int {
	for i, it := range g.entries() {
		if it == e {
			return i
		}
	}
	panic("tabs: entry is not a direct child of the group")
}

// checkIntegrity runs the full structural verification when debug mode is
// on. It walks both views of the collection and asserts they agree.
func (d *Delegate) checkIntegrity() {
	if !debug.Enabled() {
		return
	}
	c := d.coll

	for _, e := range c.Pinned().children {
		t, ok := e.(*Tab)
		debug.Assert(ok, "pinned group contains a non-tab entry")
		debug.Assert(t.Pinned(), "tab %q in pinned group is not flagged pinned", t.Title())
		debug.Assert(c.ParentOf(t) == Group(c.Pinned()), "pinned tab %q has wrong parent", t.Title())
	}

	var walk func(e Entry, g Group)
	walk = func(e Entry, g Group) {
		debug.Assert(c.ParentOf(e) == g, "entry has stale parent mapping")
		if node, ok := e.(*TreeNode); ok {
			debug.Assert(node.anchor != nil, "tree node %s has no anchor", node.ID())
			debug.Assert(!node.anchor.Pinned(), "tree node %s anchors a pinned tab", node.ID())
			debug.Assert(c.ParentOf(node.anchor) == Group(node), "anchor of node %s has wrong parent", node.ID())
			for _, ch := range node.children {
				walk(ch, node)
			}
		}
	}
	for _, e := range c.Root().children {
		walk(e, c.Root())
	}

	// The flat index of every tab must agree with a sequential scan.
	total := c.TotalTabCount()
	for i := 0; i < total; i++ {
		t := c.TabAt(i)
		debug.Assert(t != nil, "no tab at flat index %d of %d", i, total)
		got, ok := c.IndexOfTab(t)
		debug.Assert(ok && got == i, "tab %q scans at index %d but reports %d", t.Title(), i, got)
	}
}
