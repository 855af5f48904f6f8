package bitmap

import (
	"bytes"
	"errors"
	"testing"
)

func newRGBA2x2(t *testing.T) *BitMap {
	t.Helper()
	bm, err := FromDecoded(fakeDecoded{w: 2, h: 2, pix: []byte{
		10, 20, 30, 255, 40, 50, 60, 255,
		70, 80, 90, 255, 100, 110, 120, 255,
	}})
	if err != nil {
		t.Fatal(err)
	}
	return bm
}

func TestExportRGBPitch(t *testing.T) {
	bm := newRGBA2x2(t)

	dst := bytes.Repeat([]byte{0xEE}, 18)
	bm.ExportRGB(dst, 9)

	want := []byte{
		10, 20, 30, 40, 50, 60, 0xEE, 0xEE, 0xEE,
		70, 80, 90, 100, 110, 120, 0xEE, 0xEE, 0xEE,
	}
	if !bytes.Equal(dst, want) {
		t.Errorf("ExportRGB() =\n%v\nwant\n%v", dst, want)
	}
}

func TestExportRGBPacked(t *testing.T) {
	bm := newRGBA2x2(t)

	dst := make([]byte, 12)
	if err := bm.ExportRGBChecked(dst, 6); err != nil {
		t.Fatalf("ExportRGBChecked: %v", err)
	}
	want := []byte{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120}
	if !bytes.Equal(dst, want) {
		t.Errorf("ExportRGBChecked() = %v, want %v", dst, want)
	}
}

func TestExportRGBDropsAlpha(t *testing.T) {
	bm, _ := FromDecoded(fakeDecoded{w: 1, h: 1, pix: []byte{1, 2, 3, 0}})
	dst := []byte{9, 9, 9, 9}
	bm.ExportRGB(dst, 4)
	if want := []byte{1, 2, 3, 9}; !bytes.Equal(dst, want) {
		t.Errorf("ExportRGB() = %v, want %v", dst, want)
	}
}

func TestExportRGBUndersizedPanics(t *testing.T) {
	bm := newRGBA2x2(t)
	defer func() {
		if recover() == nil {
			t.Error("ExportRGB into a short buffer should panic")
		}
	}()
	bm.ExportRGB(make([]byte, 10), 9)
}

func TestExportRGBChecked(t *testing.T) {
	tests := []struct {
		name    string
		dstLen  int
		pitch   int
		wantErr error
	}{
		{"exact packed", 12, 6, nil},
		{"padded rows", 18, 9, nil},
		{"last row unpadded", 15, 9, nil},
		{"pitch too small", 18, 5, ErrInvalidPitch},
		{"negative pitch", 18, -1, ErrInvalidPitch},
		{"destination short", 14, 9, ErrDestinationTooSmall},
		{"destination empty", 0, 6, ErrDestinationTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bm := newRGBA2x2(t)
			dst := bytes.Repeat([]byte{0xEE}, tt.dstLen)
			err := bm.ExportRGBChecked(dst, tt.pitch)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExportRGBChecked() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				for i, v := range dst {
					if v != 0xEE {
						t.Fatalf("byte %d written despite error", i)
					}
				}
			}
		})
	}
}

func TestExportRGBCheckedSourceTooSmall(t *testing.T) {
	bm, _ := New(2, 2) // 4 bytes, but 2x2 RGBA needs 16
	err := bm.ExportRGBChecked(make([]byte, 12), 6)
	if !errors.Is(err, ErrSourceTooSmall) {
		t.Errorf("ExportRGBChecked() error = %v, want ErrSourceTooSmall", err)
	}
}

func TestExportRGBCheckedNegativeDimensions(t *testing.T) {
	bm := newRGBA2x2(t)
	bm.SetWidth(-1)
	if err := bm.ExportRGBChecked(make([]byte, 18), 9); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("ExportRGBChecked() error = %v, want ErrInvalidDimensions", err)
	}
}

type fakeTarget struct {
	buf      []byte
	pitch    int
	lockErr  error
	locked   bool
	unlocked int
}

func (f *fakeTarget) Lock() ([]byte, int, error) {
	if f.lockErr != nil {
		return nil, 0, f.lockErr
	}
	f.locked = true
	return f.buf, f.pitch, nil
}

func (f *fakeTarget) Unlock() {
	f.locked = false
	f.unlocked++
}

func TestUpload(t *testing.T) {
	bm := newRGBA2x2(t)
	tgt := &fakeTarget{buf: make([]byte, 16), pitch: 8}

	if err := bm.Upload(tgt); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if tgt.locked || tgt.unlocked != 1 {
		t.Errorf("target left locked=%v, unlocked %d times", tgt.locked, tgt.unlocked)
	}
	want := []byte{10, 20, 30, 40, 50, 60, 0, 0, 70, 80, 90, 100, 110, 120, 0, 0}
	if !bytes.Equal(tgt.buf, want) {
		t.Errorf("uploaded = %v, want %v", tgt.buf, want)
	}
}

func TestUploadUnlocksOnError(t *testing.T) {
	bm := newRGBA2x2(t)
	tgt := &fakeTarget{buf: make([]byte, 4), pitch: 8}

	if err := bm.Upload(tgt); !errors.Is(err, ErrDestinationTooSmall) {
		t.Fatalf("Upload() error = %v, want ErrDestinationTooSmall", err)
	}
	if tgt.unlocked != 1 {
		t.Errorf("Unlock called %d times, want 1", tgt.unlocked)
	}
}

func TestUploadLockError(t *testing.T) {
	bm := newRGBA2x2(t)
	lockErr := errors.New("busy")
	tgt := &fakeTarget{lockErr: lockErr}

	if err := bm.Upload(tgt); !errors.Is(err, lockErr) {
		t.Fatalf("Upload() error = %v, want %v", err, lockErr)
	}
	if tgt.unlocked != 0 {
		t.Error("Unlock must not be called when Lock fails")
	}
}

func BenchmarkExportRGB(b *testing.B) {
	const w, h = 1280, 720
	bm, _ := New(0, 0)
	_, _ = bm.Write(make([]byte, w*h*4))
	bm.SetWidth(w)
	bm.SetHeight(h)
	pitch := (w*3 + 3) &^ 3
	dst := make([]byte, pitch*h)

	b.SetBytes(int64(w * h * 4))
	b.ReportAllocs()
	for b.Loop() {
		bm.ExportRGB(dst, pitch)
	}
}
