package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldmap/internal/status"
)

const mapDoc = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {"name": "Testland", "iso_a2": "TL"},
   "geometry": {"type": "Polygon", "coordinates": [[[0,0],[0,10],[10,10],[10,0]]]}},
  {"type": "Feature", "properties": {"name": "Otherland", "iso_a2": "OL"},
   "geometry": {"type": "Polygon", "coordinates": [[[-60,-30],[-40,-30],[-40,-10],[-60,-10]]]}}
]}`

type fixture struct {
	dir        string
	mapPath    string
	statusPath string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:        dir,
		mapPath:    filepath.Join(dir, "world.geojson"),
		statusPath: filepath.Join(dir, "country_status.dat"),
	}
	require.NoError(t, os.WriteFile(f.mapPath, []byte(mapDoc), 0o644))
	return f
}

func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--map", f.mapPath, "--status-file", f.statusPath, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCountriesCommand(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "countries")
	require.NoError(t, err)
	assert.Contains(t, out, "Testland")
	assert.Contains(t, out, "ol")
	assert.Contains(t, out, "2 countries, 2 polygons")
}

func TestStatusSetListExportImport(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "status", "set", "TL", "lived")
	require.NoError(t, err)
	assert.Equal(t, "tl: lived\n", out)

	_, err = f.run(t, "status", "set", "ol", "3")
	require.NoError(t, err)

	s, err := status.Open(f.statusPath, nil)
	require.NoError(t, err)
	assert.Equal(t, status.Lived, s.Get("tl"))
	assert.Equal(t, status.Want, s.Get("ol"))

	out, err = f.run(t, "status", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Testland")
	assert.Contains(t, out, "been 0, lived 1, want 1")

	export := filepath.Join(f.dir, "statuses.toml")
	_, err = f.run(t, "status", "export", "-o", export)
	require.NoError(t, err)
	data, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tl = "lived"`)

	other := newFixture(t)
	out, err = other.run(t, "status", "import", export)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 statuses")
	s, err = status.Open(other.statusPath, nil)
	require.NoError(t, err)
	assert.Equal(t, status.Want, s.Get("ol"))
}

func TestStatusSetRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "status", "set", "T1", "been")
	assert.ErrorIs(t, err, status.ErrInvalidCode)
	_, err = f.run(t, "status", "set", "tl", "visited")
	assert.ErrorIs(t, err, status.ErrInvalidStatus)
	assert.NoFileExists(t, f.statusPath)
}

func TestRenderCommand(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "status", "set", "tl", "been")
	require.NoError(t, err)

	png1 := filepath.Join(f.dir, "map.png")
	out, err := f.run(t, "render", "-o", png1, "--width", "360", "--height", "180", "--select", "TL", "--zoom", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	file, err := os.Open(png1)
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 360, img.Bounds().Dx())
	assert.Equal(t, 180, img.Bounds().Dy())

	_, err = f.run(t, "render", "-o", png1, "--select", "zz")
	assert.Error(t, err)
}

func TestMissingMapFails(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.mapPath))
	_, err := f.run(t, "countries")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCorruptStatusFileStartsEmpty(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.statusPath, []byte{9, 0}, 0o644))
	out, err := f.run(t, "status", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "been 0, lived 0, want 0")
}
