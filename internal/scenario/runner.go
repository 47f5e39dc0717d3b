package scenario

import (
	"fmt"

	"github.com/arbortabs/arbor/internal/debug"
	"github.com/arbortabs/arbor/internal/tabs"
)

// Runner drives a delegate through scenario steps, mapping scenario
// handles to live tabs.
type Runner struct {
	delegate *tabs.Delegate
	byHandle map[string]*tabs.Tab
}

// NewRunner creates a runner over an empty collection. registry may be nil.
func NewRunner(registry tabs.TreeRegistry) *Runner {
	return &Runner{
		delegate: tabs.NewDelegate(tabs.NewCollection(), registry),
		byHandle: make(map[string]*tabs.Tab),
	}
}

// Delegate returns the delegate being driven.
func (r *Runner) Delegate() *tabs.Delegate { return r.delegate }

// Collection returns the collection being built.
func (r *Runner) Collection() *tabs.Collection { return r.delegate.Collection() }

// Run executes every step of the scenario in order. It stops at the first
// failing step and reports it by position.
func (r *Runner) Run(sc *Scenario) error {
	for i, step := range sc.Steps {
		if err := r.runStep(step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		debug.Log("scenario %q: step %d done, %d tabs", sc.Name, i+1, r.Collection().TotalTabCount())
	}
	return nil
}

func (r *Runner) runStep(step Step) error {
	switch {
	case step.Open != nil:
		return r.open(step.Open)
	case step.Close != nil:
		return r.close(step.Close)
	case step.Pin != nil:
		return r.pin(step.Pin, true)
	case step.Unpin != nil:
		return r.pin(step.Unpin, false)
	case step.Move != nil:
		return r.move(step.Move)
	}
	return fmt.Errorf("%w: empty step", ErrInvalidScenario)
}

func (r *Runner) open(st *OpenStep) error {
	coll := r.Collection()

	var opener *tabs.Tab
	if st.Opener != "" {
		var ok bool
		opener, ok = r.byHandle[st.Opener]
		if !ok {
			return fmt.Errorf("%w: opener %q", ErrUnknownTab, st.Opener)
		}
	}

	index := coll.TotalTabCount()
	if st.Pinned {
		index = coll.PinnedCount()
	}
	if st.Index != nil {
		index = *st.Index
	}
	if st.Pinned {
		if index < 0 || index > coll.PinnedCount() {
			return fmt.Errorf("%w: pinned index %d out of range [0,%d]", ErrInvalidScenario, index, coll.PinnedCount())
		}
	} else if index < coll.PinnedCount() || index > coll.TotalTabCount() {
		return fmt.Errorf("%w: index %d out of range [%d,%d]", ErrInvalidScenario, index, coll.PinnedCount(), coll.TotalTabCount())
	}

	title := st.Title
	if title == "" {
		title = st.Tab
	}
	tab := tabs.NewTab(title, st.URL)
	if opener != nil {
		tab.SetOpenerID(opener.ID())
	}
	r.delegate.AddTabRecursive(tab, index, st.Group, st.Pinned, opener)
	r.byHandle[st.Tab] = tab
	return nil
}

func (r *Runner) close(st *CloseStep) error {
	coll := r.Collection()

	index := -1
	if st.Index != nil {
		index = *st.Index
	} else {
		tab, ok := r.byHandle[st.Tab]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTab, st.Tab)
		}
		idx, ok := coll.IndexOfTab(tab)
		if !ok {
			return fmt.Errorf("%w: %q is no longer in the collection", ErrUnknownTab, st.Tab)
		}
		index = idx
	}
	if index < 0 || index >= coll.TotalTabCount() {
		return fmt.Errorf("%w: close index %d out of range", ErrInvalidScenario, index)
	}

	removed := r.delegate.RemoveTabAtIndexRecursive(index)
	if st.Tab != "" {
		delete(r.byHandle, st.Tab)
	} else {
		for handle, tab := range r.byHandle {
			if tab == removed {
				delete(r.byHandle, handle)
				break
			}
		}
	}
	return nil
}

func (r *Runner) pin(st *RefStep, pinned bool) error {
	tab, ok := r.byHandle[st.Tab]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTab, st.Tab)
	}
	if pinned {
		r.delegate.PinTab(tab)
	} else {
		r.delegate.UnpinTab(tab)
	}
	return nil
}

func (r *Runner) move(st *MoveStep) error {
	return r.delegate.MoveTabsRecursive(st.Indices, st.Destination, st.Group, st.Pinned, st.RetainTypes)
}
