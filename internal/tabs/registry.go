package tabs

// TreeRegistry is notified whenever a tree node is created or destroyed.
// It owns whatever external bookkeeping is keyed by node identity (for
// example UI collapse state). Both callbacks run synchronously inside a
// structural mutation; implementations must not call back into the
// delegate.
type TreeRegistry interface {
	NodeCreated(id string)
	NodeDestroyed(id string)
}

// NopRegistry is a TreeRegistry that ignores all notifications.
type NopRegistry struct{}

func (NopRegistry) NodeCreated(string)   {}
func (NopRegistry) NodeDestroyed(string) {}

// MultiRegistry fans out notifications to several registries in order.
func MultiRegistry(regs ...TreeRegistry) TreeRegistry {
	return multiRegistry(regs)
}

type multiRegistry []TreeRegistry

func (m multiRegistry) NodeCreated(id string) {
	for _, r := range m {
		r.NodeCreated(id)
	}
}

func (m multiRegistry) NodeDestroyed(id string) {
	for _, r := range m {
		r.NodeDestroyed(id)
	}
}
