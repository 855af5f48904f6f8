package bitmap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/gogpu/bitmap/internal/rawbuf"
)

// Common errors for bitmap operations.
var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("bitmap: invalid dimensions")

	// ErrDimensionsOverflow is returned when width*height does not fit in int.
	ErrDimensionsOverflow = errors.New("bitmap: dimensions overflow")

	// ErrDimensionMismatch is returned by CheckGeometry when the buffer
	// length does not equal width*height*channels.
	ErrDimensionMismatch = errors.New("bitmap: buffer length does not match dimensions")
)

// Decoded is the decoded image a BitMap can be built from.
// Bytes returns the pixel data, typically RGBA in row-major order.
type Decoded interface {
	Width() int
	Height() int
	Bytes() []byte
}

// BitMap is a pixel buffer paired with its dimensions and a fingerprint
// of its content.
//
// A BitMap always owns its bytes: Write copies the caller's data and never
// retains the slice it was given. The fingerprint is refreshed on every
// mutation, so two BitMaps can be compared with SameFingerprint without
// touching their content.
//
// The zero value is an empty 0x0 BitMap with a zero fingerprint and is
// ready to use.
//
// Thread safety: BitMap is not safe for concurrent mutation. Wrap it in a
// Shared when it is accessed from more than one goroutine.
type BitMap struct {
	width  int
	height int
	hash   Fingerprint
	body   []byte
	off    int // read cursor
}

// New creates a BitMap holding width*height zero bytes.
func New(width, height int) (*BitMap, error) {
	n, err := size(width, height)
	if err != nil {
		return nil, err
	}

	body, err := rawbuf.Get(n)
	if err != nil {
		return nil, fmt.Errorf("bitmap: new %dx%d: %w", width, height, err)
	}

	Logger().Debug("bitmap: allocated", "width", width, "height", height, "bytes", n)

	b := &BitMap{
		width:  width,
		height: height,
		body:   body,
	}
	b.RecomputeHash()
	return b, nil
}

// FromDecoded creates a BitMap from a decoded image.
// The decoded bytes are copied; img may be reused once FromDecoded returns.
func FromDecoded(img Decoded) (*BitMap, error) {
	width, height := img.Width(), img.Height()
	if _, err := size(width, height); err != nil {
		return nil, err
	}

	b := &BitMap{width: width, height: height}
	if _, err := b.Write(img.Bytes()); err != nil {
		return nil, err
	}

	if err := b.CheckGeometry(4); err != nil {
		Logger().Warn("bitmap: decoded data does not match RGBA geometry",
			"width", width, "height", height, "bytes", b.Len())
	}
	return b, nil
}

func size(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	n, err := rawbuf.Size(width, height, 1)
	if err != nil {
		return 0, fmt.Errorf("%w: %dx%d", ErrDimensionsOverflow, width, height)
	}
	return n, nil
}

// Width returns the width in pixels.
func (b *BitMap) Width() int {
	return b.width
}

// Height returns the height in pixels.
func (b *BitMap) Height() int {
	return b.height
}

// SetWidth changes the recorded width. The content and fingerprint are
// left untouched.
func (b *BitMap) SetWidth(width int) {
	b.width = width
}

// SetHeight changes the recorded height. The content and fingerprint are
// left untouched.
func (b *BitMap) SetHeight(height int) {
	b.height = height
}

// Len returns the number of bytes held.
func (b *BitMap) Len() int {
	return len(b.body)
}

// Bytes returns the underlying storage.
// The slice is only valid until the next Write or Release, and must not be
// modified; changes would not be reflected in the fingerprint.
func (b *BitMap) Bytes() []byte {
	return b.body
}

// CheckGeometry reports ErrDimensionMismatch when the buffer does not hold
// exactly width*height pixels of the given channel count.
// Write never enforces this; callers that need the guarantee check it.
func (b *BitMap) CheckGeometry(channels int) error {
	want, err := rawbuf.Size(b.width, b.height, channels)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDimensionMismatch, err)
	}
	if len(b.body) != want {
		return fmt.Errorf("%w: %dx%dx%d needs %d bytes, have %d",
			ErrDimensionMismatch, b.width, b.height, channels, want, len(b.body))
	}
	return nil
}

// Write replaces the whole content with a copy of p and refreshes the
// fingerprint. It implements io.Writer and always accepts all of p.
//
// No check is made that len(p) matches the dimensions. The read cursor is
// rewound.
func (b *BitMap) Write(p []byte) (int, error) {
	if cap(b.body) >= len(p) && b.body != nil {
		b.body = b.body[:len(p)]
	} else {
		body, err := rawbuf.Alloc(len(p))
		if err != nil {
			return 0, fmt.Errorf("bitmap: write %d bytes: %w", len(p), err)
		}
		b.body = body
	}
	copy(b.body, p)

	b.off = 0
	b.RecomputeHash()
	return len(p), nil
}

// At returns the byte at index i. It panics if i is out of range.
func (b *BitMap) At(i int) byte {
	return b.body[i]
}

// All returns an iterator over the raw bytes in storage order.
// Each call starts a fresh pass and leaves the read cursor untouched.
func (b *BitMap) All() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for _, v := range b.body {
			if !yield(v) {
				return
			}
		}
	}
}

// Read reads up to len(p) bytes from the current read position.
// It implements io.Reader and returns io.EOF once the content is drained.
func (b *BitMap) Read(p []byte) (int, error) {
	if b.off >= len(b.body) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.body[b.off:])
	b.off += n
	return n, nil
}

// Rewind resets the read position to the first byte.
func (b *BitMap) Rewind() {
	b.off = 0
}

// ContentEqual reports whether both BitMaps hold byte-identical content.
// Unlike SameFingerprint it cannot report a false positive.
func (b *BitMap) ContentEqual(other *BitMap) bool {
	return bytes.Equal(b.body, other.body)
}

// Clone returns a deep copy with the read position reset.
func (b *BitMap) Clone() *BitMap {
	body := make([]byte, len(b.body))
	copy(body, b.body)
	return &BitMap{
		width:  b.width,
		height: b.height,
		hash:   b.hash,
		body:   body,
	}
}

// Release hands the storage back for reuse and resets b to the zero value.
// Slices obtained from Bytes must not be used afterwards.
func (b *BitMap) Release() {
	if len(b.body) > 0 {
		Logger().Debug("bitmap: released", "bytes", len(b.body))
		rawbuf.Put(b.body)
	}
	*b = BitMap{}
}
