package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Image is a Canvas backed by an RGBA buffer, used for PNG snapshots.
type Image struct {
	*image.RGBA
}

func NewImage(w, h int, background color.Color) *Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return &Image{RGBA: img}
}

func (m *Image) Size() (int, int) {
	b := m.Bounds()
	return b.Dx(), b.Dy()
}

func (m *Image) Span(y, x0, x1 int, c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	for x := x0; x <= x1; x++ {
		m.SetRGBA(x, y, rgba)
	}
}

func (m *Image) Plot(x, y int, c color.Color) {
	m.Set(x, y, c)
}

// Label draws text with its baseline at (x, y) using the built-in 7x13 face.
func (m *Image) Label(x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  m.RGBA,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// LabelWidth is the advance of text in the label face.
func LabelWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}

func (m *Image) EncodePNG(w io.Writer) error {
	return png.Encode(w, m.RGBA)
}

// SavePNG writes the image to path.
func (m *Image) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
