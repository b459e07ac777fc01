package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"worldmap/internal/status"
)

func TestFillsAreDistinct(t *testing.T) {
	p := Default()
	seen := map[string]status.Status{}
	for _, st := range status.All() {
		hex := p.Fill(st, false).Hex()
		prev, dup := seen[hex]
		assert.False(t, dup, "%v and %v share %s", st, prev, hex)
		seen[hex] = st
	}
}

func TestSelectionLightens(t *testing.T) {
	p := Default()
	for _, st := range status.All() {
		_, _, plain := p.Fill(st, false).Hsl()
		_, _, sel := p.Fill(st, true).Hsl()
		assert.Greater(t, sel, plain, st.String())
	}
}

func TestUnknownStatusFallsBack(t *testing.T) {
	p := Default()
	assert.Equal(t, p.Fill(status.None, false), p.Fill(status.Status(42), false))
}

func TestRGBAOpaque(t *testing.T) {
	c := RGBA(Default().Ocean)
	assert.Equal(t, uint8(255), c.A)
	assert.Equal(t, uint8(0x69), c.G)
}
