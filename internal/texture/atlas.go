// Package texture loads the shell texture atlas.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"

	"github.com/Faultbox/fairingkit/pkg/fairing"
)

// Load reads an atlas image. TGA is decoded here; PNG, JPEG and BMP go
// through image.Decode.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return DecodeTGA(data)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image to *image.RGBA with its origin at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Region tints for the generated atlas.
var (
	OutsideTint = color.RGBA{R: 220, G: 222, B: 228, A: 255}
	InsideTint  = color.RGBA{R: 150, G: 120, B: 90, A: 255}
	EdgesTint   = color.RGBA{R: 90, G: 90, B: 96, A: 255}
)

// Checker builds a size x size atlas that paints each UV region of m with
// its own tinted checkerboard, so mapping errors are visible in the viewer.
// Image rows run top-down while V runs bottom-up.
func Checker(size, cells int, m fairing.UVMap) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{A: 255}}, image.Point{}, draw.Src)

	fill := func(a fairing.UVArea, tint color.RGBA) {
		rect := image.Rect(
			int(a.U1*float32(size)), size-int(a.V2*float32(size)),
			int(a.U2*float32(size)), size-int(a.V1*float32(size)),
		).Canon()
		cell := size / cells
		if cell < 1 {
			cell = 1
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				c := tint
				if ((x/cell)+(y/cell))%2 == 1 {
					c = color.RGBA{R: tint.R / 2, G: tint.G / 2, B: tint.B / 2, A: 255}
				}
				img.SetRGBA(x, y, c)
			}
		}
	}

	// later regions win where they overlap; edges are the smallest surfaces
	fill(m.Outside, OutsideTint)
	fill(m.Inside, InsideTint)
	fill(m.Edges, EdgesTint)
	return img
}
