// Package directory holds the contacts of one run, keyed by name and kept in
// insertion order.
package directory

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/smileynet/phonebook/internal/contact"
)

var (
	// ErrDuplicateContact indicates a record with the same name already exists.
	ErrDuplicateContact = errors.New("directory: duplicate contact")

	// ErrContactNotFound indicates no record is stored under the given name.
	ErrContactNotFound = errors.New("directory: contact not found")
)

// Directory maps case-sensitive names to records. Every key equals the
// Name() of the record stored under it. Lookups trim surrounding whitespace
// from the name, as record names are stored trimmed.
// It is not safe for concurrent use; callers confine it to one goroutine.
type Directory struct {
	records map[string]*contact.Record
	order   []string
}

// New creates an empty Directory.
func New() *Directory {
	return &Directory{records: make(map[string]*contact.Record)}
}

// Add inserts rec under rec.Name(). Existing names are rejected with
// ErrDuplicateContact; phone lists are never merged.
func (d *Directory) Add(rec *contact.Record) error {
	if rec == nil {
		return errors.New("directory: nil record")
	}
	name := rec.Name()
	if _, ok := d.records[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateContact, name)
	}
	d.records[name] = rec
	d.order = append(d.order, name)
	return nil
}

// Get returns the stored record for name. The record is returned by
// reference, so mutations through it are visible to later lookups.
func (d *Directory) Get(name string) (*contact.Record, error) {
	name = strings.TrimSpace(name)
	rec, ok := d.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrContactNotFound, name)
	}
	return rec, nil
}

// Remove deletes the record stored under name.
func (d *Directory) Remove(name string) error {
	name = strings.TrimSpace(name)
	if _, ok := d.records[name]; !ok {
		return fmt.Errorf("%w: %q", ErrContactNotFound, name)
	}
	delete(d.records, name)
	if i := slices.Index(d.order, name); i >= 0 {
		d.order = slices.Delete(d.order, i, i+1)
	}
	return nil
}

// Len returns the number of records.
func (d *Directory) Len() int {
	return len(d.order)
}

// All yields records in insertion order. The sequence is lazy and may be
// ranged over repeatedly; it reflects the directory at iteration time.
func (d *Directory) All() iter.Seq[*contact.Record] {
	return func(yield func(*contact.Record) bool) {
		for _, name := range d.order {
			if !yield(d.records[name]) {
				return
			}
		}
	}
}
