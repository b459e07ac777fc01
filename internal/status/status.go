// Package status persists the visitation status of each country, keyed by
// its two-letter lowercase ISO code.
package status

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Status is stored by ordinal in the binary file. The ordering is
// None, Been, Lived, Want; exports use the names instead.
type Status int32

const (
	None Status = iota
	Been
	Lived
	Want
)

var (
	ErrCorrupt       = errors.New("status: corrupt file")
	ErrInvalidCode   = errors.New("status: invalid country code")
	ErrInvalidStatus = errors.New("status: invalid status")
)

var names = [...]string{"none", "been", "lived", "want"}

// All lists the statuses in ordinal order.
func All() []Status { return []Status{None, Been, Lived, Want} }

func (s Status) Valid() bool { return s >= None && s <= Want }

func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", int32(s))
	}
	return names[s]
}

// Next cycles None → Been → Lived → Want → None.
func (s Status) Next() Status {
	return (s + 1) % Status(len(names))
}

// Parse accepts a status name (case-insensitive) or its ordinal digit.
func Parse(v string) (Status, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, n := range names {
		if v == n || v == fmt.Sprint(i) {
			return Status(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidStatus, v)
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int32(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ValidCode reports whether code is two lowercase ASCII letters.
func ValidCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if code[i] < 'a' || code[i] > 'z' {
			return false
		}
	}
	return true
}

// Entry is one code/status pair.
type Entry struct {
	Code   string
	Status Status
}

// table is the in-memory mapping, kept in insertion order.
type table struct {
	entries []Entry
	index   map[string]int
}

func newTable() table {
	return table{index: make(map[string]int)}
}

func (t *table) get(code string) Status {
	if i, ok := t.index[code]; ok {
		return t.entries[i].Status
	}
	return None
}

func (t *table) set(code string, s Status) {
	if i, ok := t.index[code]; ok {
		t.entries[i].Status = s
		return
	}
	t.index[code] = len(t.entries)
	t.entries = append(t.entries, Entry{Code: code, Status: s})
}

func (t *table) clone() table {
	c := table{
		entries: append([]Entry(nil), t.entries...),
		index:   make(map[string]int, len(t.index)),
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	return c
}

func (t *table) sorted() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
