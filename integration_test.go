package bitmap_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/decode"
	"github.com/gogpu/bitmap/texture"
)

func TestDecodeUploadSnapshot(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := range 2 {
		for x := range 3 {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x*50 + 1), G: uint8(y*50 + 2), B: 3, A: 128})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := decode.LoadBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	bm, err := bitmap.FromDecoded(img)
	if err != nil {
		t.Fatalf("FromDecoded: %v", err)
	}
	defer bm.Release()

	tex, err := texture.New(bm.Width(), bm.Height(), 16)
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Close()

	if err := bm.Upload(tex); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	snap := tex.Snapshot()
	for y := range 2 {
		for x := range 3 {
			want := src.NRGBAAt(x, y)
			got := snap.RGBAAt(x, y)
			if got.R != want.R || got.G != want.G || got.B != want.B || got.A != 255 {
				t.Errorf("pixel (%d,%d) = %v, want RGB of %v with opaque alpha", x, y, got, want)
			}
		}
	}
}

func TestSameImageSameFingerprint(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(1, 2, color.NRGBA{R: 9, A: 255})

	a, _ := bitmap.FromDecoded(decode.FromStdImage(src))
	b, _ := bitmap.FromDecoded(decode.FromStdImage(src))
	if !a.SameFingerprint(b) || !a.ContentEqual(b) {
		t.Error("independently built BitMaps of one image should be equal")
	}

	src.SetNRGBA(3, 3, color.NRGBA{G: 1, A: 255})
	c, _ := bitmap.FromDecoded(decode.FromStdImage(src))
	if a.SameFingerprint(c) {
		t.Error("changed image should change the fingerprint")
	}
}
