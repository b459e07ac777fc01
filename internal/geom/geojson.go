package geom

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// NoCodeSentinel is the value Natural Earth uses for "no ISO code".
const NoCodeSentinel = "-99"

var ErrNoFeatures = errors.New("geojson: missing features array")

// IngestStats counts what happened to each feature of a collection.
type IngestStats struct {
	Features int
	Skipped  int
	Polygons int
}

type rawCollection struct {
	Features *[]json.RawMessage `json:"features"`
}

type rawFeature struct {
	Properties geojson.Properties `json:"properties"`
	Geometry   json.RawMessage    `json:"geometry"`
}

// Load reads a GeoJSON FeatureCollection of country features from path.
func Load(path string, log *zap.Logger) (*Store, IngestStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, IngestStats{}, err
	}
	defer f.Close()
	s, st, err := Decode(f, log)
	if err != nil {
		return nil, st, fmt.Errorf("%s: %w", path, err)
	}
	return s, st, nil
}

// Decode reads a FeatureCollection from r.
func Decode(r io.Reader, log *zap.Logger) (*Store, IngestStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, IngestStats{}, err
	}
	return Parse(data, log)
}

// Parse builds a Store from an encoded FeatureCollection. Features without a
// name, a resolvable ISO code or polygonal geometry are skipped; only a
// document that is not JSON or has no features array is an error.
func Parse(data []byte, log *zap.Logger) (*Store, IngestStats, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var raw rawCollection
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, IngestStats{}, err
	}
	if raw.Features == nil {
		return nil, IngestStats{}, ErrNoFeatures
	}
	var st IngestStats
	b := NewBuilder()
	skip := func(i int, reason string) {
		st.Skipped++
		log.Debug("skipping feature", zap.Int("index", i), zap.String("reason", reason))
	}
	for i, fr := range *raw.Features {
		st.Features++
		var f rawFeature
		if err := json.Unmarshal(fr, &f); err != nil {
			skip(i, "not a feature object")
			continue
		}
		name, _ := f.Properties["name"].(string)
		if name == "" {
			skip(i, "missing name")
			continue
		}
		code, ok := ResolveCode(f.Properties)
		if !ok {
			skip(i, "no iso code")
			continue
		}
		rings, reason := outerRings(f.Geometry)
		if reason != "" {
			skip(i, reason)
			continue
		}
		added := 0
		for _, ring := range rings {
			if b.AddPolygon(name, code, ring) {
				added++
			}
		}
		if added == 0 {
			skip(i, "empty rings")
			continue
		}
		st.Polygons += added
	}
	s := b.Build()
	log.Info("ingested countries",
		zap.Int("features", st.Features),
		zap.Int("skipped", st.Skipped),
		zap.Int("countries", s.NumCountries()),
		zap.Int("polygons", s.NumPolygons()),
	)
	return s, st, nil
}

// ResolveCode reads iso_a2, falling back to iso_a2_eh only when iso_a2 is
// absent or the sentinel, and normalizes it to two lowercase letters. A
// present but malformed iso_a2 resolves to nothing.
func ResolveCode(p geojson.Properties) (string, bool) {
	v, ok := p["iso_a2"]
	if !ok || v == NoCodeSentinel {
		if v, ok = p["iso_a2_eh"]; !ok {
			return "", false
		}
	}
	code, isString := v.(string)
	code = strings.TrimSpace(code)
	if !isString || code == NoCodeSentinel {
		return "", false
	}
	return NormalizeCode(code)
}

// NormalizeCode lowercases and truncates to two ASCII letters.
func NormalizeCode(v string) (string, bool) {
	v = strings.ToLower(v)
	if len(v) < 2 {
		return "", false
	}
	v = v[:2]
	for i := 0; i < 2; i++ {
		if v[i] < 'a' || v[i] > 'z' {
			return "", false
		}
	}
	return v, true
}

// outerRings returns the outer ring of a Polygon or of every member of a
// MultiPolygon. A non-empty reason means the geometry is unusable.
func outerRings(raw json.RawMessage) ([]orb.Ring, string) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, "missing geometry"
	}
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, "bad geometry: " + err.Error()
	}
	switch c := g.Coordinates.(type) {
	case orb.Polygon:
		if len(c) == 0 {
			return nil, "missing coordinates"
		}
		return []orb.Ring{c[0]}, ""
	case orb.MultiPolygon:
		var rings []orb.Ring
		for _, poly := range c {
			if len(poly) > 0 {
				rings = append(rings, poly[0])
			}
		}
		if len(rings) == 0 {
			return nil, "missing coordinates"
		}
		return rings, ""
	default:
		return nil, "unsupported geometry " + g.Type
	}
}
