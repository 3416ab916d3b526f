package webui

import (
	"errors"
	"fmt"
	"sync"
)

// Default registry capacities. A bridge built from Config may raise them.
const (
	DefaultMaxWindows  = 64
	DefaultMaxElements = 64
)

// ErrRegistryFull is returned when a binding would exceed the registry's
// window or per-window element capacity. It is a configuration error:
// raise the limits in Config.Registry rather than retrying.
var ErrRegistryFull = errors.New("webui: callback registry full")

// Registry maps (window, element) pairs to handlers.
//
// Each window owns a row of slots. An element name gets a dense slot index
// the first time it is registered on that window and keeps it for the
// window's lifetime, so re-registering overwrites in place. Lookups hold a
// read lock only long enough to copy the handler out; handlers therefore run
// without any registry lock held and may register further bindings.
type Registry[H any] struct {
	mu          sync.RWMutex
	maxWindows  int
	maxElements int
	rows        map[WindowID]*registryRow[H]
}

type registryRow[H any] struct {
	index map[string]int
	slots []registrySlot[H]
}

type registrySlot[H any] struct {
	handler H
	ok      bool
}

// NewRegistry creates a registry holding at most maxWindows rows of
// maxElements slots. Non-positive limits fall back to the defaults.
func NewRegistry[H any](maxWindows, maxElements int) *Registry[H] {
	if maxWindows <= 0 {
		maxWindows = DefaultMaxWindows
	}
	if maxElements <= 0 {
		maxElements = DefaultMaxElements
	}
	return &Registry[H]{
		maxWindows:  maxWindows,
		maxElements: maxElements,
		rows:        make(map[WindowID]*registryRow[H]),
	}
}

// Register stores h for (win, element) and returns the element's slot.
// A previous handler in the same slot is replaced. On overflow the table is
// left unchanged and the error wraps ErrRegistryFull.
func (r *Registry[H]) Register(win WindowID, element string, h H) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[win]
	if !ok {
		if len(r.rows) >= r.maxWindows {
			return -1, fmt.Errorf("%w: window %d exceeds %d windows", ErrRegistryFull, win, r.maxWindows)
		}
		row = &registryRow[H]{index: make(map[string]int)}
		r.rows[win] = row
	}

	slot, ok := row.index[element]
	if !ok {
		if len(row.slots) >= r.maxElements {
			if len(row.slots) == 0 {
				delete(r.rows, win)
			}
			return -1, fmt.Errorf("%w: element %q exceeds %d elements on window %d", ErrRegistryFull, element, r.maxElements, win)
		}
		slot = len(row.slots)
		row.index[element] = slot
		row.slots = append(row.slots, registrySlot[H]{})
	}
	row.slots[slot] = registrySlot[H]{handler: h, ok: true}
	return slot, nil
}

// Lookup returns the handler bound to (win, element). A miss is the normal
// outcome for elements nobody bound and does not allocate.
func (r *Registry[H]) Lookup(win WindowID, element string) (H, bool) {
	h, ok, _ := r.find(win, element)
	return h, ok
}

// find is Lookup that also reports whether element holds a slot on win,
// which stays true after Unregister.
func (r *Registry[H]) find(win WindowID, element string) (h H, ok, reserved bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, found := r.rows[win]
	if !found {
		return h, false, false
	}
	slot, found := row.index[element]
	if !found {
		return h, false, false
	}
	s := row.slots[slot]
	return s.handler, s.ok, true
}

// Slot returns the dense index assigned to element on win.
func (r *Registry[H]) Slot(win WindowID, element string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[win]
	if !ok {
		return -1, false
	}
	slot, ok := row.index[element]
	return slot, ok
}

// Unregister empties the slot for (win, element). The slot index stays
// reserved for the element.
func (r *Registry[H]) Unregister(win WindowID, element string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[win]
	if !ok {
		return false
	}
	slot, ok := row.index[element]
	if !ok || !row.slots[slot].ok {
		return false
	}
	row.slots[slot] = registrySlot[H]{}
	return true
}

// Forget drops every binding of win and frees its row.
func (r *Registry[H]) Forget(win WindowID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, win)
}

// Len returns the number of occupied slots.
func (r *Registry[H]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, row := range r.rows {
		for _, s := range row.slots {
			if s.ok {
				n++
			}
		}
	}
	return n
}

// Reset drops every row.
func (r *Registry[H]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = make(map[WindowID]*registryRow[H])
}
