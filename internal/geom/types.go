package geom

import "github.com/paulmach/orb"

// UnknownCode marks a country whose ISO code could not be resolved.
const UnknownCode = "unknown"

type (
	CountryID int
	PolygonID int
)

// Polygon is a single outer ring (first point not repeated at the end) and
// its cached geographic bounds. Holes are not kept.
type Polygon struct {
	Ring  orb.Ring
	Bound orb.Bound
}

// Country owns the half-open range [PolygonStart, PolygonStart+PolygonCount)
// of the store's polygon sequence.
type Country struct {
	ID           CountryID
	Name         string
	Code         string
	PolygonStart int
	PolygonCount int
}

// PolygonIDs lists the ids in the country's range.
func (c Country) PolygonIDs() []PolygonID {
	ids := make([]PolygonID, c.PolygonCount)
	for i := range ids {
		ids[i] = PolygonID(c.PolygonStart + i)
	}
	return ids
}
