// Package order keeps the list of imported panels with their quantities.
package order

import (
	"fmt"
	"sync"

	"door-import/panel"
)

// Entry is a panel with the number of pieces ordered.
type Entry struct {
	Panel    *panel.Panel
	Quantity int
}

// Removed remembers the last entry dropped by a quantity change so it can be
// restored. Entry.Quantity is the quantity before the change.
type Removed struct {
	Entry Entry
	Index int
}

// Order is the in-memory panel list. It is safe for concurrent use so the
// watch folder can add panels while the UI reads it.
type Order struct {
	mu              sync.RWMutex
	entries         []Entry
	recentlyDeleted *Removed
}

// New creates an empty order.
func New() *Order {
	return &Order{}
}

// Add appends panels with quantity 1.
func (o *Order) Add(panels ...*panel.Panel) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, p := range panels {
		if p == nil {
			continue
		}
		o.entries = append(o.entries, Entry{Panel: p, Quantity: 1})
	}
}

// Len returns the number of entries.
func (o *Order) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.entries)
}

// Entries returns a copy of the entries in order.
func (o *Order) Entries() []Entry {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Entry, len(o.entries))
	copy(out, o.entries)
	return out
}

// Entry returns the entry at index i.
func (o *Order) Entry(i int) (Entry, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if i < 0 || i >= len(o.entries) {
		return Entry{}, false
	}
	return o.entries[i], true
}

// ChangeQuantity adds delta to the quantity of entry i. When the quantity
// drops to zero or below the entry is removed and becomes the recently
// deleted entry, replacing any earlier one. It reports whether the entry was
// removed.
func (o *Order) ChangeQuantity(i, delta int) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if i < 0 || i >= len(o.entries) {
		return false, fmt.Errorf("no panel at index %d", i)
	}

	if o.entries[i].Quantity+delta > 0 {
		o.entries[i].Quantity += delta
		return false, nil
	}

	o.recentlyDeleted = &Removed{Entry: o.entries[i], Index: i}
	o.entries = append(o.entries[:i], o.entries[i+1:]...)
	return true, nil
}

// RecentlyDeleted returns the entry that Undo would restore.
func (o *Order) RecentlyDeleted() (Removed, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.recentlyDeleted == nil {
		return Removed{}, false
	}
	return *o.recentlyDeleted, true
}

// Undo re-inserts the recently deleted entry at its original index, or at
// the end when the list has since shrunk. It reports whether anything was
// restored.
func (o *Order) Undo() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.recentlyDeleted == nil {
		return false
	}
	r := o.recentlyDeleted
	o.recentlyDeleted = nil

	idx := min(max(r.Index, 0), len(o.entries))
	o.entries = append(o.entries, Entry{})
	copy(o.entries[idx+1:], o.entries[idx:])
	o.entries[idx] = r.Entry
	return true
}

// Dismiss forgets the recently deleted entry.
func (o *Order) Dismiss() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recentlyDeleted = nil
}

// RemoveAll clears every entry. The recently deleted entry is kept.
func (o *Order) RemoveAll() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = nil
}

// Total sums the quantities of all entries.
func (o *Order) Total() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	total := 0
	for _, e := range o.entries {
		total += e.Quantity
	}
	return total
}

// Summary describes the current order.
func (o *Order) Summary() Summary {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return summarize(o.entries)
}

// Complete returns the summary of the order and clears it.
func (o *Order) Complete() Summary {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := summarize(o.entries)
	o.entries = nil
	o.recentlyDeleted = nil
	return s
}
