// Package registry tracks the live set of subscriber connections.
package registry

import "sync"

// Member is anything the registry can hold. IDs must be unique per member.
type Member interface {
	ID() string
}

type Registry[M Member] struct {
	mu      sync.Mutex
	members map[string]M
}

func New[M Member]() *Registry[M] {
	return &Registry[M]{
		members: make(map[string]M),
	}
}

func (r *Registry[M]) Register(m M) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.ID()] = m
}

// Unregister removes m. Removing an absent member is a no-op. It reports
// whether m was present.
func (r *Registry[M]) Unregister(m M) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[m.ID()]; !ok {
		return false
	}
	delete(r.members, m.ID())
	return true
}

// Snapshot copies the current members. Callers iterate the copy without
// holding the registry lock, so concurrent Register/Unregister are safe.
func (r *Registry[M]) Snapshot() []M {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]M, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	return out
}

func (r *Registry[M]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}
