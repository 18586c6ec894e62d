package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

var ErrTGA = errors.New("tga")

// DecodeTGA decodes uncompressed or RLE true-color TGA data, 24 or 32 bpp.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("%w: header too short", ErrTGA)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	switch {
	case colorMapType != 0:
		return nil, fmt.Errorf("%w: color-mapped images not supported", ErrTGA)
	case imageType != TGATypeUncompressed && imageType != TGATypeRLE:
		return nil, fmt.Errorf("%w: unsupported type %d", ErrTGA, imageType)
	case bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrTGA, bpp)
	case 18+idLength > len(data):
		return nil, fmt.Errorf("%w: truncated", ErrTGA)
	}

	r := tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[18+idLength:],
		bpp:         bpp / 8,
		width:       width,
		height:      height,
		topToBottom: topToBottom,
	}

	if imageType == TGATypeUncompressed {
		if len(r.data) < width*height*r.bpp {
			return nil, fmt.Errorf("%w: pixel data truncated", ErrTGA)
		}
		for r.pixel < width*height {
			r.put(r.next())
		}
		return r.img, nil
	}

	for r.pixel < width*height && r.pos < len(r.data) {
		packet := r.data[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if !r.has() {
				break
			}
			c := r.next()
			for i := 0; i < count && r.pixel < width*height; i++ {
				r.put(c)
			}
			continue
		}
		for i := 0; i < count && r.pixel < width*height && r.has(); i++ {
			r.put(r.next())
		}
	}
	return r.img, nil
}

// tgaReader walks BGR(A) pixels in file order.
type tgaReader struct {
	img           *image.RGBA
	data          []byte
	pos           int
	pixel         int
	bpp           int
	width, height int
	topToBottom   bool
}

func (r *tgaReader) has() bool {
	return r.pos+r.bpp <= len(r.data)
}

func (r *tgaReader) next() color.RGBA {
	p := r.data[r.pos : r.pos+r.bpp]
	r.pos += r.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c
}

func (r *tgaReader) put(c color.RGBA) {
	x := r.pixel % r.width
	y := r.pixel / r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.pixel++
}
