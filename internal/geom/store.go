package geom

import (
	"strings"

	"github.com/paulmach/orb"
)

// Store is the immutable result of ingestion. Countries own contiguous
// slices of the polygon sequence.
type Store struct {
	polygons  []Polygon
	countries []Country
	owner     []CountryID
	byName    map[string]CountryID
	byCode    map[string]CountryID
	bound     orb.Bound
}

func (s *Store) Polygons() []Polygon  { return s.polygons }
func (s *Store) Countries() []Country { return s.countries }
func (s *Store) NumPolygons() int     { return len(s.polygons) }
func (s *Store) NumCountries() int    { return len(s.countries) }

// Bound is the union of every polygon bound.
func (s *Store) Bound() orb.Bound { return s.bound }

func (s *Store) Polygon(id PolygonID) Polygon { return s.polygons[id] }

// Country returns the country with the given handle.
func (s *Store) Country(id CountryID) (Country, bool) {
	if id < 0 || int(id) >= len(s.countries) {
		return Country{}, false
	}
	return s.countries[id], true
}

// Owner returns the country a polygon belongs to.
func (s *Store) Owner(id PolygonID) CountryID { return s.owner[id] }

// CountryPolygons returns the country's polygons as a sub-slice of the
// shared sequence. The slice must not be modified.
func (s *Store) CountryPolygons(id CountryID) []Polygon {
	c, ok := s.Country(id)
	if !ok {
		return nil
	}
	return s.polygons[c.PolygonStart : c.PolygonStart+c.PolygonCount : c.PolygonStart+c.PolygonCount]
}

// CountryBound is the union of the bounds of a country's polygons.
func (s *Store) CountryBound(id CountryID) (orb.Bound, bool) {
	polys := s.CountryPolygons(id)
	if len(polys) == 0 {
		return orb.Bound{}, false
	}
	b := polys[0].Bound
	for _, p := range polys[1:] {
		b = b.Union(p.Bound)
	}
	return b, true
}

// LookupName finds a country by its display name (exact match).
func (s *Store) LookupName(name string) (Country, bool) {
	id, ok := s.byName[name]
	if !ok {
		return Country{}, false
	}
	return s.countries[id], true
}

// LookupCode finds a country by ISO code, case-insensitively.
func (s *Store) LookupCode(code string) (Country, bool) {
	id, ok := s.byCode[strings.ToLower(code)]
	if !ok {
		return Country{}, false
	}
	return s.countries[id], true
}

type pendingCountry struct {
	name  string
	code  string
	rings []orb.Ring
}

// Builder accumulates polygons per country in first-seen order. Build lays
// each country's polygons out contiguously, so a country that reappears in a
// later feature is merged into its own region instead of interleaving.
type Builder struct {
	pending []*pendingCountry
	index   map[string]int
}

func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

// AddPolygon appends an outer ring under the named country. A trailing point
// equal to the first is dropped. Rings with no points are ignored and
// reported as false.
func (b *Builder) AddPolygon(name, code string, ring orb.Ring) bool {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		ring = ring[:n-1]
	}
	if len(ring) == 0 {
		return false
	}
	i, ok := b.index[name]
	if !ok {
		if code == "" {
			code = UnknownCode
		}
		i = len(b.pending)
		b.index[name] = i
		b.pending = append(b.pending, &pendingCountry{name: name, code: code})
	}
	pc := b.pending[i]
	pc.rings = append(pc.rings, ring)
	return true
}

// Build freezes the builder into a Store.
func (b *Builder) Build() *Store {
	s := &Store{
		byName: make(map[string]CountryID, len(b.pending)),
		byCode: make(map[string]CountryID, len(b.pending)),
	}
	first := true
	for _, pc := range b.pending {
		id := CountryID(len(s.countries))
		c := Country{
			ID:           id,
			Name:         pc.name,
			Code:         pc.code,
			PolygonStart: len(s.polygons),
			PolygonCount: len(pc.rings),
		}
		for _, ring := range pc.rings {
			bound := ring.Bound()
			s.polygons = append(s.polygons, Polygon{Ring: ring, Bound: bound})
			s.owner = append(s.owner, id)
			if first {
				s.bound = bound
				first = false
			} else {
				s.bound = s.bound.Union(bound)
			}
		}
		s.countries = append(s.countries, c)
		s.byName[pc.name] = id
		if _, dup := s.byCode[pc.code]; !dup && pc.code != UnknownCode {
			s.byCode[pc.code] = id
		}
	}
	return s
}
