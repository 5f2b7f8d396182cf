package contact

import (
	"errors"
	"testing"

	"github.com/smileynet/phonebook/internal/phone"
)

var (
	p1 = phone.MustParse("0731404451")
	p2 = phone.MustParse("0930030322")
	p3 = phone.MustParse("0501234567")
)

func mustNew(t *testing.T, name string, phones ...phone.Number) *Record {
	t.Helper()
	r, err := New(name, phones...)
	if err != nil {
		t.Fatalf("New(%q) error = %v", name, err)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Run("name only", func(t *testing.T) {
		r := mustNew(t, "Vladik")
		if r.Name() != "Vladik" {
			t.Errorf("Name() = %q, want %q", r.Name(), "Vladik")
		}
		if r.Len() != 0 {
			t.Errorf("Len() = %d, want 0", r.Len())
		}
	})

	t.Run("initial phone becomes first", func(t *testing.T) {
		r := mustNew(t, "Vladik", p1)
		phones := r.Phones()
		if len(phones) != 1 || phones[0] != p1 {
			t.Errorf("Phones() = %v, want [%s]", phones, p1)
		}
	})

	t.Run("name is trimmed", func(t *testing.T) {
		r := mustNew(t, "  Vladik \t")
		if r.Name() != "Vladik" {
			t.Errorf("Name() = %q, want %q", r.Name(), "Vladik")
		}
	})

	t.Run("zero phone is skipped", func(t *testing.T) {
		r := mustNew(t, "Vladik", phone.Number{})
		if r.Len() != 0 {
			t.Errorf("Len() = %d, want 0", r.Len())
		}
	})

	t.Run("blank names rejected", func(t *testing.T) {
		for _, name := range []string{"", "   ", "\t\n"} {
			_, err := New(name)
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("New(%q) error = %v, want ErrInvalidName", name, err)
			}
		}
	})

	t.Run("repeated initial phones rejected", func(t *testing.T) {
		_, err := New("Vladik", p1, p1)
		if !errors.Is(err, ErrDuplicatePhone) {
			t.Errorf("New() error = %v, want ErrDuplicatePhone", err)
		}
	})
}

func TestRecord_AddPhone(t *testing.T) {
	t.Run("preserves order after three adds", func(t *testing.T) {
		r := mustNew(t, "Vladik")
		for _, p := range []phone.Number{p1, p2, p3} {
			if err := r.AddPhone(p); err != nil {
				t.Fatalf("AddPhone(%s) error = %v", p, err)
			}
		}
		got := r.Phones()
		want := []phone.Number{p1, p2, p3}
		if len(got) != len(want) {
			t.Fatalf("Phones() len = %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Phones()[%d] = %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("duplicate value fails second time", func(t *testing.T) {
		r := mustNew(t, "Vladik")
		if err := r.AddPhone(p1); err != nil {
			t.Fatalf("first AddPhone() error = %v", err)
		}
		err := r.AddPhone(phone.MustParse("+380731404451"))
		if !errors.Is(err, ErrDuplicatePhone) {
			t.Errorf("second AddPhone() error = %v, want ErrDuplicatePhone", err)
		}
		if r.Len() != 1 {
			t.Errorf("Len() = %d, want 1", r.Len())
		}
	})
}

func TestRecord_Phones_ReturnsCopy(t *testing.T) {
	r := mustNew(t, "Vladik", p1)
	phones := r.Phones()
	phones[0] = p2

	if got := r.Phones()[0]; got != p1 {
		t.Errorf("internal phone changed via copy: got %s, want %s", got, p1)
	}
}

func TestRecord_RemovePhoneAt(t *testing.T) {
	t.Run("removes and returns value", func(t *testing.T) {
		r := mustNew(t, "Vladik", p1, p2, p3)

		removed, err := r.RemovePhoneAt(1)
		if err != nil {
			t.Fatalf("RemovePhoneAt(1) error = %v", err)
		}
		if removed != p2 {
			t.Errorf("removed = %s, want %s", removed, p2)
		}
		if got := r.String(); got != "Vladik: +380731404451, +380501234567" {
			t.Errorf("String() = %q", got)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		r := mustNew(t, "Vladik", p1)
		for _, i := range []int{-1, 1, 5} {
			_, err := r.RemovePhoneAt(i)
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("RemovePhoneAt(%d) error = %v, want ErrIndexOutOfRange", i, err)
			}
		}
		if r.Len() != 1 {
			t.Errorf("Len() = %d, want 1 (unchanged)", r.Len())
		}
	})

	t.Run("replace at removed index fails", func(t *testing.T) {
		// Given a record with two phones
		r := mustNew(t, "Vladik", p1, p2)

		// When the last phone is removed
		if _, err := r.RemovePhoneAt(1); err != nil {
			t.Fatalf("RemovePhoneAt(1) error = %v", err)
		}

		// Then replacing at that position is out of range
		err := r.ReplacePhoneAt(1, p3)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("ReplacePhoneAt(1) error = %v, want ErrIndexOutOfRange", err)
		}
	})
}

func TestRecord_RemovePhone(t *testing.T) {
	r := mustNew(t, "Vladik", p1, p2)

	removed, ok := r.RemovePhone(phone.MustParse("+380930030322"))
	if !ok {
		t.Fatal("RemovePhone() ok = false, want true")
	}
	if removed != p2 {
		t.Errorf("removed = %s, want %s", removed, p2)
	}

	_, ok = r.RemovePhone(p3)
	if ok {
		t.Error("RemovePhone(absent) ok = true, want false")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRecord_ReplacePhoneAt(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		replace phone.Number
		wantErr error
		want    string
	}{
		{name: "overwrites in place", index: 0, replace: p3, want: "Vladik: +380501234567, +380930030322"},
		{name: "same value same index", index: 1, replace: p2, want: "Vladik: +380731404451, +380930030322"},
		{name: "duplicate at other index", index: 0, replace: p2, wantErr: ErrDuplicatePhone},
		{name: "negative index", index: -1, replace: p3, wantErr: ErrIndexOutOfRange},
		{name: "index past end", index: 2, replace: p3, wantErr: ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustNew(t, "Vladik", p1, p2)

			err := r.ReplacePhoneAt(tt.index, tt.replace)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReplacePhoneAt() error = %v, want %v", err, tt.wantErr)
				}
				if got := r.String(); got != "Vladik: +380731404451, +380930030322" {
					t.Errorf("record changed on failure: %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReplacePhoneAt() error = %v", err)
			}
			if got := r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecord_String(t *testing.T) {
	if got := mustNew(t, "Vladik").String(); got != "Vladik: " {
		t.Errorf("empty String() = %q, want %q", got, "Vladik: ")
	}
	if got := mustNew(t, "Vladik", p1, p2).String(); got != "Vladik: +380731404451, +380930030322" {
		t.Errorf("String() = %q", got)
	}
}
