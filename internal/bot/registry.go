package bot

import "sync"

// Registry is a concurrency-safe map of PID to live worker. It is a passive
// store: sequences that must be atomic (scan, terminate, spawn, register)
// are serialized by the Manager, not here.
type Registry struct {
	mu      sync.RWMutex
	workers map[int]*Worker
}

func NewRegistry() *Registry {
	return &Registry{workers: make(map[int]*Worker)}
}

func (r *Registry) Insert(w *Worker) {
	r.mu.Lock()
	r.workers[w.PID] = w
	r.mu.Unlock()
}

// Remove deletes the entry for pid and reports whether it was present.
func (r *Registry) Remove(pid int) bool {
	r.mu.Lock()
	_, ok := r.workers[pid]
	delete(r.workers, pid)
	r.mu.Unlock()
	return ok
}

func (r *Registry) Get(pid int) (*Worker, bool) {
	r.mu.RLock()
	w, ok := r.workers[pid]
	r.mu.RUnlock()
	return w, ok
}

// ByRoom returns every registered worker bound to room. Outside of racing
// starts there is at most one.
func (r *Registry) ByRoom(room string) []*Worker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Worker
	for _, w := range r.workers {
		if w.Room == room {
			out = append(out, w)
		}
	}
	return out
}

func (r *Registry) All() []*Worker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Worker, 0, len(r.workers))
	for _, w := range r.workers {
		out = append(out, w)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workers)
}
