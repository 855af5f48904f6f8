package bitmap

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/bitmap/internal/rawbuf"
)

// Export errors.
var (
	// ErrInvalidPitch is returned when pitch is smaller than width*3.
	ErrInvalidPitch = errors.New("bitmap: pitch too small for width")

	// ErrSourceTooSmall is returned when the content is shorter than
	// width*height RGBA pixels.
	ErrSourceTooSmall = errors.New("bitmap: content too small for dimensions")

	// ErrDestinationTooSmall is returned when the destination cannot hold
	// height rows at the given pitch.
	ErrDestinationTooSmall = errors.New("bitmap: destination buffer too small")
)

const (
	srcBytesPerPixel = 4 // R, G, B, A
	dstBytesPerPixel = 3 // R, G, B
)

// Target is a destination texture that exposes its pixel memory while
// locked. Lock returns the writable buffer and its pitch in bytes.
type Target interface {
	Lock() ([]byte, int, error)
	Unlock()
}

// ExportRGB copies the content, read as RGBA rows of width*4 bytes, into
// dst as RGB rows that start pitch bytes apart. Alpha is dropped and bytes
// between the end of a row and the next pitch boundary are left untouched.
//
// ExportRGB does not validate its arguments. If dst or the content is too
// short it panics with an index out of range; use ExportRGBChecked to get
// an error instead.
func (b *BitMap) ExportRGB(dst []byte, pitch int) {
	for y := range b.height {
		row := y * pitch
		for x := range b.width {
			offset := row + x*dstBytesPerPixel
			i := (y*b.width + x) * srcBytesPerPixel
			dst[offset] = b.body[i]
			dst[offset+1] = b.body[i+1]
			dst[offset+2] = b.body[i+2]
		}
	}
}

// ExportRGBChecked is ExportRGB with its preconditions checked up front.
// Nothing is written when an error is returned.
func (b *BitMap) ExportRGBChecked(dst []byte, pitch int) error {
	if b.width < 0 || b.height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, b.width, b.height)
	}
	if b.width == 0 || b.height == 0 {
		return nil
	}

	rowBytes, err := rawbuf.Size(b.width, 1, dstBytesPerPixel)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDimensionsOverflow, err)
	}
	if pitch < rowBytes {
		return fmt.Errorf("%w: pitch %d, need %d", ErrInvalidPitch, pitch, rowBytes)
	}

	need, err := rawbuf.Size(b.width, b.height, srcBytesPerPixel)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDimensionsOverflow, err)
	}
	if len(b.body) < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrSourceTooSmall, len(b.body), need)
	}

	// The last row needs no padding.
	last, err := rawbuf.Size(b.height-1, pitch, 1)
	if err != nil || last > math.MaxInt-rowBytes {
		return fmt.Errorf("%w: %d rows at pitch %d", ErrDestinationTooSmall, b.height, pitch)
	}
	if len(dst) < last+rowBytes {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrDestinationTooSmall, len(dst), last+rowBytes)
	}

	b.ExportRGB(dst, pitch)
	return nil
}

// Upload locks t, exports the content into it with the checked export and
// unlocks t again.
func (b *BitMap) Upload(t Target) error {
	buf, pitch, err := t.Lock()
	if err != nil {
		return fmt.Errorf("bitmap: lock target: %w", err)
	}
	defer t.Unlock()

	return b.ExportRGBChecked(buf, pitch)
}
