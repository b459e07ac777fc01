package status

import (
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
)

// document is the TOML export layout. Statuses are written by name so the
// file reads the same whatever ordinal a build assigns them.
type document struct {
	Countries map[string]Status `toml:"countries"`
}

// Export writes every entry as TOML.
func (s *Store) Export(w io.Writer) error {
	doc := document{Countries: make(map[string]Status, s.Len())}
	for _, e := range s.t.entries {
		doc.Countries[e.Code] = e.Status
	}
	return toml.NewEncoder(w).Encode(doc)
}

// Import merges a TOML export into the store and saves once. It returns
// the number of entries applied. Nothing is applied if any entry is invalid
// or the save fails.
func (s *Store) Import(r io.Reader) (int, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decoding status export: %w", err)
	}
	for code := range doc.Countries {
		if !ValidCode(code) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCode, code)
		}
	}
	codes := make([]string, 0, len(doc.Countries))
	for code := range doc.Countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	prev := s.t.clone()
	for _, code := range codes {
		s.t.set(code, doc.Countries[code])
	}
	if err := s.Save(); err != nil {
		s.t = prev
		return 0, err
	}
	return len(codes), nil
}
