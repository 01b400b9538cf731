package ecs

// Registry tracks all component stores and supports bulk cleanup on entity destroy.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 16),
	}
}

// Register adds a component store to the registry and assigns its StoreID.
// Registering the same store twice keeps the first ID.
func (r *Registry) Register(store Removable) StoreID {
	if id := store.ID(); id >= 0 && int(id) < len(r.stores) && r.stores[id] == store {
		return id
	}
	id := StoreID(len(r.stores))
	store.bind(id)
	r.stores = append(r.stores, store)
	return id
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}

// Name returns the component name behind a StoreID, for diagnostics.
func (r *Registry) Name(id StoreID) string {
	if id < 0 || int(id) >= len(r.stores) {
		return "?"
	}
	return r.stores[id].Name()
}

// Len returns the number of registered stores.
func (r *Registry) Len() int { return len(r.stores) }
