// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texture provides an in-memory RGB24 streaming texture.
//
// Memory mirrors the lock/unlock protocol of hardware streaming textures:
// Lock hands out the pixel memory together with its pitch, Unlock returns
// it. Rows may be padded to an alignment, so the pitch can exceed
// Width()*3.
//
// Example:
//
//	tex, err := texture.New(640, 480, 4)
//	if err != nil {
//	    return err
//	}
//	defer tex.Close()
//
//	if err := bm.Upload(tex); err != nil {
//	    return err
//	}
//	err = tex.SavePNG("frame.png")
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
)

// Texture errors.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")

	// ErrLocked is returned when Lock is called on a texture that is
	// already locked.
	ErrLocked = errors.New("texture: already locked")

	// ErrClosed is returned when a closed texture is used.
	ErrClosed = errors.New("texture: closed")
)

// BytesPerPixel is the size of one RGB24 pixel.
const BytesPerPixel = 3

// Memory is an RGB24 texture held in main memory.
//
// Memory is safe for concurrent use; Lock grants exclusive access to the
// pixels until Unlock.
type Memory struct {
	width  int
	height int
	pitch  int

	mu     sync.Mutex
	pix    []byte
	locked bool
	closed bool
}

// New creates a zeroed width x height texture whose rows are padded to a
// multiple of align bytes. An align of 0 or 1 packs rows tightly.
func New(width, height, align int) (*Memory, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	pitch := width * BytesPerPixel
	if align > 1 {
		pitch = (pitch + align - 1) / align * align
	}

	return &Memory{
		width:  width,
		height: height,
		pitch:  pitch,
		pix:    make([]byte, pitch*height),
	}, nil
}

// Width returns the texture width in pixels.
func (m *Memory) Width() int {
	return m.width
}

// Height returns the texture height in pixels.
func (m *Memory) Height() int {
	return m.height
}

// Pitch returns the number of bytes between the starts of adjacent rows.
func (m *Memory) Pitch() int {
	return m.pitch
}

// Lock returns the pixel memory and its pitch for writing.
// The caller must call Unlock when done.
func (m *Memory) Lock() ([]byte, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, 0, ErrClosed
	}
	if m.locked {
		return nil, 0, ErrLocked
	}
	m.locked = true
	return m.pix, m.pitch, nil
}

// Unlock releases a previous Lock. Unlocking an unlocked texture is a no-op.
func (m *Memory) Unlock() {
	m.mu.Lock()
	m.locked = false
	m.mu.Unlock()
}

// Snapshot returns the current contents as an opaque RGBA image.
// It returns nil if the texture is closed or locked.
func (m *Memory) Snapshot() *image.RGBA {
	img, _ := m.snapshot()
	return img
}

func (m *Memory) snapshot() (*image.RGBA, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.locked {
		return nil, ErrLocked
	}

	img := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	for y := range m.height {
		src := m.pix[y*m.pitch:]
		dst := img.Pix[y*img.Stride:]
		for x := range m.width {
			s, d := x*BytesPerPixel, x*4
			dst[d] = src[s]
			dst[d+1] = src[s+1]
			dst[d+2] = src[s+2]
			dst[d+3] = 0xFF
		}
	}
	return img, nil
}

// SavePNG writes the current contents to a PNG file.
func (m *Memory) SavePNG(path string) error {
	img, err := m.snapshot()
	if err != nil {
		return fmt.Errorf("texture: save %s: %w", path, err)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("texture: create file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("texture: encode PNG: %w", err)
	}
	return f.Close()
}

// Close releases the pixel memory. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.locked = false
	m.pix = nil
	return nil
}
