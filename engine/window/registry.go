package window

import "github.com/Carmen-Shannon/oxy-look/engine/capture"

// registry is an ordered set of listeners of one kind.
// Removal while dispatching only marks the entry dead; dead entries are dropped
// once no dispatch is running, so iteration never sees a shifted slice.
type registry[T any] struct {
	entries     []registryEntry[T]
	nextID      uint64
	dispatching int
	dirty       bool
}

type registryEntry[T any] struct {
	id   uint64
	fn   T
	live bool
}

// add registers fn and returns a handle that removes it.
func (r *registry[T]) add(fn T) capture.Subscription {
	r.nextID++
	r.entries = append(r.entries, registryEntry[T]{id: r.nextID, fn: fn, live: true})
	return &registryHandle[T]{r: r, id: r.nextID}
}

func (r *registry[T]) remove(id uint64) {
	for i := range r.entries {
		if r.entries[i].id != id {
			continue
		}
		if r.dispatching > 0 {
			r.entries[i].live = false
			r.dirty = true
			return
		}
		r.entries = append(r.entries[:i], r.entries[i+1:]...)
		return
	}
}

// begin marks the start of a dispatch and returns the number of entries to visit.
// Entries added during the dispatch are not visited.
func (r *registry[T]) begin() int {
	r.dispatching++
	return len(r.entries)
}

// end closes a dispatch opened by begin.
func (r *registry[T]) end() {
	r.dispatching--
	if r.dispatching == 0 && r.dirty {
		kept := r.entries[:0]
		for _, e := range r.entries {
			if e.live {
				kept = append(kept, e)
			}
		}
		clear(r.entries[len(kept):])
		r.entries = kept
		r.dirty = false
	}
}

// len returns the number of live listeners.
func (r *registry[T]) len() int {
	n := 0
	for _, e := range r.entries {
		if e.live {
			n++
		}
	}
	return n
}

type registryHandle[T any] struct {
	r    *registry[T]
	id   uint64
	done bool
}

func (h *registryHandle[T]) Unsubscribe() {
	if h.done {
		return
	}
	h.done = true
	h.r.remove(h.id)
}
