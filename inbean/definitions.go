package inbean

import (
	"iter"
	"slices"
)

// Definitions is an immutable mapping of definitions to their injection
// targets.
//
// Keys are unique under ==, iterate in first-insertion order, and every key
// has at least one target. Target lists keep scan order; identical targets
// are not collapsed. Accessors hand out copies, so a *Definitions can be read
// from several goroutines.
type Definitions struct {
	order   []Definition
	targets map[Definition][]Target
}

// Len returns the number of distinct definitions.
func (d *Definitions) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Keys returns the definitions in first-insertion order.
func (d *Definitions) Keys() []Definition {
	if d == nil {
		return nil
	}
	return slices.Clone(d.order)
}

// Targets returns the targets of def in scan order.
func (d *Definitions) Targets(def Definition) ([]Target, bool) {
	if d == nil {
		return nil, false
	}
	ts, ok := d.targets[def]
	if !ok {
		return nil, false
	}
	return slices.Clone(ts), true
}

// All iterates definitions with their targets in first-insertion order.
func (d *Definitions) All() iter.Seq2[Definition, []Target] {
	return func(yield func(Definition, []Target) bool) {
		if d == nil {
			return
		}
		for _, def := range d.order {
			if !yield(def, slices.Clone(d.targets[def])) {
				return
			}
		}
	}
}

// Map returns a copy of the mapping.
func (d *Definitions) Map() map[Definition][]Target {
	out := make(map[Definition][]Target, d.Len())
	for def, ts := range d.All() {
		out[def] = ts
	}
	return out
}

// Mocks returns the subset of mock definitions.
func (d *Definitions) Mocks() *Definitions { return d.filter(KindMock) }

// Spies returns the subset of spy definitions.
func (d *Definitions) Spies() *Definitions { return d.filter(KindSpy) }

func (d *Definitions) filter(kind Kind) *Definitions {
	out := &Definitions{targets: make(map[Definition][]Target)}
	for def, ts := range d.All() {
		if def.Kind != kind {
			continue
		}
		out.order = append(out.order, def)
		out.targets[def] = ts
	}
	return out
}
