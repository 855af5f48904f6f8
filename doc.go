// Package bitmap provides an in-memory pixel buffer for decoded images.
//
// # Overview
//
// A BitMap couples a width and height with a byte buffer it owns, and keeps
// a 64-bit fingerprint of that buffer up to date. Comparing fingerprints is
// the cheap way to tell whether two BitMaps hold the same picture; comparing
// content is the exact way.
//
// # Quick Start
//
//	img, err := decode.Load("photo.png")
//	if err != nil {
//	    return err
//	}
//	bm, err := bitmap.FromDecoded(img)
//	if err != nil {
//	    return err
//	}
//
//	tex, err := texture.New(bm.Width(), bm.Height(), 4)
//	if err != nil {
//	    return err
//	}
//	defer tex.Close()
//
//	if err := bm.Upload(tex); err != nil {
//	    return err
//	}
//
// # Export
//
// ExportRGB copies RGBA content into an RGB destination whose rows are
// pitch bytes apart, dropping alpha. It trusts its caller: an undersized
// destination panics. ExportRGBChecked and Upload validate pitch and sizes
// first and return ErrInvalidPitch, ErrSourceTooSmall or
// ErrDestinationTooSmall without writing anything.
//
// # Equality
//
// SameFingerprint compares digests only and may report a collision as a
// match. ContentEqual compares bytes.
//
// # Logging
//
// The package is silent by default. Install a *slog.Logger with SetLogger
// to see allocation and geometry diagnostics.
package bitmap
