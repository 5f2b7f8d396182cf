// Package contact implements a named contact with an ordered list of
// phone numbers addressed by position.
package contact

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/smileynet/phonebook/internal/phone"
)

var (
	// ErrInvalidName indicates a contact name that is empty after trimming.
	ErrInvalidName = errors.New("contact: invalid name")

	// ErrDuplicatePhone indicates the record already holds an equal number.
	ErrDuplicatePhone = errors.New("contact: duplicate phone")

	// ErrIndexOutOfRange indicates a phone position outside [0, Len()).
	ErrIndexOutOfRange = errors.New("contact: index out of range")
)

// Record is one named contact and its phone numbers in insertion order.
// Numbers within a record are unique by value.
// It is not safe for concurrent use.
type Record struct {
	name   string
	phones []phone.Number
}

// New creates a record named name (surrounding whitespace is trimmed) holding
// the given phones in order. Zero-value phones are skipped.
func New(name string, phones ...phone.Number) (*Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	r := &Record{name: name}
	for _, p := range phones {
		if p.IsZero() {
			continue
		}
		if err := r.AddPhone(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Name returns the trimmed contact name.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the record's numbers in order.
func (r *Record) Phones() []phone.Number {
	return slices.Clone(r.phones)
}

// Len returns the number of phones.
func (r *Record) Len() int {
	return len(r.phones)
}

// IndexOf returns the position of p, or -1 if absent.
func (r *Record) IndexOf(p phone.Number) int {
	return slices.Index(r.phones, p)
}

// AddPhone appends p. It fails with ErrDuplicatePhone if p is already present.
func (r *Record) AddPhone(p phone.Number) error {
	if r.IndexOf(p) >= 0 {
		return fmt.Errorf("%w: %s already listed for %s", ErrDuplicatePhone, p, r.name)
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhoneAt removes and returns the phone at position i.
func (r *Record) RemovePhoneAt(i int) (phone.Number, error) {
	if err := r.checkIndex(i); err != nil {
		return phone.Number{}, err
	}
	removed := r.phones[i]
	r.phones = slices.Delete(r.phones, i, i+1)
	return removed, nil
}

// RemovePhone removes the first phone equal to p. It reports false and
// leaves the record unchanged when p is not present.
func (r *Record) RemovePhone(p phone.Number) (phone.Number, bool) {
	i := r.IndexOf(p)
	if i < 0 {
		return phone.Number{}, false
	}
	removed := r.phones[i]
	r.phones = slices.Delete(r.phones, i, i+1)
	return removed, true
}

// ReplacePhoneAt overwrites the phone at position i with p, keeping its
// position. Replacing a number with itself is a no-op.
func (r *Record) ReplacePhoneAt(i int, p phone.Number) error {
	if err := r.checkIndex(i); err != nil {
		return err
	}
	if j := r.IndexOf(p); j >= 0 && j != i {
		return fmt.Errorf("%w: %s already listed for %s at position %d", ErrDuplicatePhone, p, r.name, j)
	}
	r.phones[i] = p
	return nil
}

// String renders "<name>: <phone1>, <phone2>, ...". A record without
// phones renders as "<name>: ".
func (r *Record) String() string {
	parts := make([]string, len(r.phones))
	for i, p := range r.phones {
		parts[i] = p.String()
	}
	return r.name + ": " + strings.Join(parts, ", ")
}

func (r *Record) checkIndex(i int) error {
	if i < 0 || i >= len(r.phones) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(r.phones))
	}
	return nil
}
