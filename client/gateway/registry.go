package gateway

import "sync"

// Registry collects cancel handles for the subscriptions of one room visit.
// CancelAll fires each handle exactly once even under concurrent calls, so a
// rapid leave/rejoin cannot double-cancel or leak a subscription.
type Registry struct {
	mu      sync.Mutex
	cancels []CancelFunc
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Add(cancel CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancels = append(r.cancels, cancel)
}

// CancelAll drains the registry and fires every collected handle. The
// registry is empty afterwards and ready for the next room.
func (r *Registry) CancelAll() {
	r.mu.Lock()
	cancels := r.cancels
	r.cancels = nil
	r.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}
