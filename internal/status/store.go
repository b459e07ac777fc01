package status

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// recordSize is code[3] (two letters and a NUL), one pad byte, int32 status.
const recordSize = 8

// Store is the persisted code → status table. Every Set is written through
// to disk before it returns. It is not safe for concurrent use; the frame
// loop is its only writer.
type Store struct {
	path string
	t    table
	log  *zap.Logger
}

// NewMemory returns a store that is never written to disk.
func NewMemory() *Store {
	return &Store{t: newTable(), log: zap.NewNop()}
}

// Open loads the store at path. A missing file is an empty store. A corrupt
// file also yields an empty store, together with an error wrapping
// ErrCorrupt that callers may log and continue past.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{path: path, t: newTable(), log: log}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("no status file, starting empty", zap.String("path", path))
		return s, nil
	}
	if err != nil {
		return s, err
	}
	defer f.Close()
	t, err := decode(f)
	if err != nil {
		log.Warn("discarding status file", zap.String("path", path), zap.Error(err))
		return s, fmt.Errorf("%s: %w", path, err)
	}
	s.t = t
	log.Debug("loaded status file", zap.String("path", path), zap.Int("entries", len(t.entries)))
	return s, nil
}

func (s *Store) Path() string { return s.path }
func (s *Store) Len() int     { return len(s.t.entries) }

// Get returns None for codes that were never set.
func (s *Store) Get(code string) Status {
	return s.t.get(code)
}

// Set updates or appends code and saves the whole table. If the save
// fails the table is left as it was, so memory never runs ahead of disk.
func (s *Store) Set(code string, st Status) error {
	if !ValidCode(code) {
		return fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	if !st.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, int32(st))
	}
	prev := s.t.clone()
	s.t.set(code, st)
	if err := s.Save(); err != nil {
		s.t = prev
		return err
	}
	s.log.Debug("status set", zap.String("code", code), zap.Stringer("status", st))
	return nil
}

// Entries returns a copy of the table sorted by code.
func (s *Store) Entries() []Entry {
	return s.t.sorted()
}

// Counts tallies entries per status.
func (s *Store) Counts() map[Status]int {
	out := make(map[Status]int, len(names))
	for _, e := range s.t.entries {
		out[e.Status]++
	}
	return out
}

// Save writes the table to a temporary file beside path and renames it
// into place. In-memory stores do nothing.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := encode(&buf, s.t.entries); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating status dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp status file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing status file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing status file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing status file: %w", err)
	}
	return nil
}

// Close saves one final time.
func (s *Store) Close() error {
	return s.Save()
}

func encode(w io.Writer, entries []Entry) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(entries))); err != nil {
		return err
	}
	var rec [recordSize]byte
	for _, e := range entries {
		rec = [recordSize]byte{}
		copy(rec[:2], e.Code)
		binary.LittleEndian.PutUint32(rec[4:], uint32(int32(e.Status)))
		if _, err := w.Write(rec[:]); err != nil {
			return err
		}
	}
	return nil
}

func decode(r io.Reader) (table, error) {
	t := newTable()
	data, err := io.ReadAll(r)
	if err != nil {
		return t, err
	}
	if len(data) < 4 {
		return t, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	n := int32(binary.LittleEndian.Uint32(data[:4]))
	if n < 0 {
		return t, fmt.Errorf("%w: negative record count %d", ErrCorrupt, n)
	}
	body := data[4:]
	if int64(len(body)) != int64(n)*recordSize {
		return t, fmt.Errorf("%w: %d records declared, %d bytes present", ErrCorrupt, n, len(body))
	}
	for i := 0; i < int(n); i++ {
		rec := body[i*recordSize : (i+1)*recordSize]
		code := string(rec[:2])
		st := Status(int32(binary.LittleEndian.Uint32(rec[4:])))
		if !ValidCode(code) || rec[2] != 0 {
			return newTable(), fmt.Errorf("%w: record %d has code %q", ErrCorrupt, i, code)
		}
		if !st.Valid() {
			return newTable(), fmt.Errorf("%w: record %d has status %d", ErrCorrupt, i, int32(st))
		}
		t.set(code, st)
	}
	return t, nil
}
