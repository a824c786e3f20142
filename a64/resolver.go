// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

import (
	"errors"
	"iter"
	"slices"
)

// labelSlot is the state of one label.
type labelSlot struct {
	name   string
	offset int
	bound  bool
}

// Resolver owns the labels of one code buffer and the relocations that
// refer to them. Relocations are patched at Finalize.
//
// A Resolver is not safe for concurrent use.
type Resolver struct {
	labels  []labelSlot
	pending []Relocation
}

// NewLabel allocates an unbound label. The name is only used in errors
// and listings, and may be empty.
func (r *Resolver) NewLabel(name string) Label {
	r.labels = append(r.labels, labelSlot{name: name})
	return Label(len(r.labels))
}

func (r *Resolver) slot(label Label) (slot *labelSlot, err error) {
	if label <= 0 || int(label) > len(r.labels) {
		err = ErrLabelInvalid
		return
	}

	slot = &r.labels[label-1]
	return
}

// Bind fixes the label at a byte offset. A label binds once; many labels
// may share an offset.
func (r *Resolver) Bind(label Label, offset int) (err error) {
	slot, err := r.slot(label)
	if err != nil {
		return
	}

	if slot.bound {
		err = ErrDoubleBind
		return
	}

	slot.offset = offset
	slot.bound = true
	return
}

// Offset returns the bound offset of a label.
func (r *Resolver) Offset(label Label) (offset int, bound bool, err error) {
	slot, err := r.slot(label)
	if err != nil {
		return
	}

	offset = slot.offset
	bound = slot.bound
	return
}

// Name returns the name given to a label.
func (r *Resolver) Name(label Label) string {
	slot, err := r.slot(label)
	if err != nil {
		return ""
	}
	return slot.name
}

// Labels iterates over the bound labels and their offsets.
func (r *Resolver) Labels() iter.Seq2[Label, int] {
	return func(yield func(Label, int) bool) {
		for n, slot := range r.labels {
			if !slot.bound {
				continue
			}
			if !yield(Label(n+1), slot.offset) {
				return
			}
		}
	}
}

// Add records a relocation to be patched at Finalize.
func (r *Resolver) Add(rel Relocation) (err error) {
	_, err = r.slot(rel.Label)
	if err != nil {
		return
	}

	r.pending = append(r.pending, rel)
	return
}

// Pending returns the relocations not yet patched.
func (r *Resolver) Pending() []Relocation {
	return slices.Clone(r.pending)
}

// Finalize patches every pending relocation into buf. Relocations of
// labels still unbound stay pending, and are reported together.
func (r *Resolver) Finalize(buf Buffer) error {
	var errs []error
	var remain []Relocation

	for _, rel := range r.pending {
		slot, err := r.slot(rel.Label)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if !slot.bound {
			errs = append(errs, ErrLabelUnbound{Label: rel.Label, Name: slot.name, Offset: rel.Offset})
			remain = append(remain, rel)
			continue
		}

		word, err := rel.Patch(slot.offset)
		if err != nil {
			errs = append(errs, ErrOperand{Index: 0, Err: err})
			continue
		}

		buf.Set(rel.Offset, word)
	}

	r.pending = remain

	return errors.Join(errs...)
}
