// Package decode turns encoded images into tightly packed RGBA pixel data
// that a bitmap.BitMap can be built from.
//
// Decoders are registered for PNG, JPEG and GIF from the standard library
// and for BMP, TIFF and WebP from golang.org/x/image.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Decoding errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("decode: empty data")

	// ErrInvalidSize is returned when a requested size is not positive.
	ErrInvalidSize = errors.New("decode: invalid size")
)

const bytesPerPixel = 4

// Image is a decoded picture: non-premultiplied RGBA, row-major, with
// rows exactly Width()*4 bytes long.
type Image struct {
	width  int
	height int
	pix    []byte
}

// Width returns the image width in pixels.
func (m *Image) Width() int {
	return m.width
}

// Height returns the image height in pixels.
func (m *Image) Height() int {
	return m.height
}

// Bytes returns the pixel data.
func (m *Image) Bytes() []byte {
	return m.pix
}

// NRGBA returns the pixels as an *image.NRGBA sharing the same memory.
func (m *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.pix,
		Stride: m.width * bytesPerPixel,
		Rect:   image.Rect(0, 0, m.width, m.height),
	}
}

// FromStdImage converts any image.Image into a packed RGBA Image.
func FromStdImage(img image.Image) *Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	rowBytes := width * bytesPerPixel

	out := &Image{
		width:  width,
		height: height,
		pix:    make([]byte, rowBytes*height),
	}

	// Fast path: already non-premultiplied RGBA.
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			src := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out.pix[y*rowBytes:(y+1)*rowBytes], nrgba.Pix[src:src+rowBytes])
		}
		return out
	}

	dst := out.NRGBA()
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return out
}

// Decode decodes an image from r, auto-detecting the format.
// It returns the format name reported by the registered decoder.
func Decode(r io.Reader) (*Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	return FromStdImage(img), format, nil
}

// LoadBytes decodes an image held in memory.
func LoadBytes(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, _, err := Decode(bytes.NewReader(data))
	return img, err
}

// Load decodes the image file at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("decode: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := Decode(f)
	return img, err
}

// Scale resamples img to width x height with bilinear filtering.
func Scale(img *Image, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == img.width && height == img.height {
		return &Image{width: width, height: height, pix: bytes.Clone(img.pix)}, nil
	}

	out := &Image{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*bytesPerPixel),
	}
	src, dst := img.NRGBA(), out.NRGBA()
	draw.ApproxBiLinear.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return out, nil
}
