// Package rawbuf provides zero-initialized byte storage for pixel buffers.
//
// Every buffer handed out by this package is fully initialized: fresh
// allocations come from make, reused buffers are cleared before they are
// returned. Allocation failures that the runtime reports as panics are
// converted into errors so callers can recover from them.
package rawbuf

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// Common errors for buffer allocation.
var (
	// ErrNegativeSize is returned when a size or dimension is negative.
	ErrNegativeSize = errors.New("rawbuf: negative size")

	// ErrOverflow is returned when a size computation overflows int.
	ErrOverflow = errors.New("rawbuf: size overflows int")

	// ErrAllocation is returned when the runtime refuses the allocation.
	ErrAllocation = errors.New("rawbuf: allocation failed")
)

// Alloc returns n zero bytes.
// A zero n yields an empty, non-nil slice.
func Alloc(n int) (buf []byte, err error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, n)
	}
	if n == 0 {
		return []byte{}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("%w: %d bytes: %v", ErrAllocation, n, r)
		}
	}()

	return make([]byte, n), nil
}

// Size returns width*height*bytesPerPixel, reporting ErrOverflow instead
// of wrapping around.
func Size(width, height, bytesPerPixel int) (int, error) {
	if width < 0 || height < 0 || bytesPerPixel < 0 {
		return 0, fmt.Errorf("%w: %dx%dx%d", ErrNegativeSize, width, height, bytesPerPixel)
	}

	hi, n := bits.Mul64(uint64(width), uint64(height))
	if hi != 0 || n > math.MaxInt {
		return 0, fmt.Errorf("%w: %dx%d", ErrOverflow, width, height)
	}
	hi, n = bits.Mul64(n, uint64(bytesPerPixel))
	if hi != 0 || n > math.MaxInt {
		return 0, fmt.Errorf("%w: %dx%dx%d", ErrOverflow, width, height, bytesPerPixel)
	}
	return int(n), nil
}
