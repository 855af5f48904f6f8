package bitmap

import "sync"

// Shared guards a BitMap for use from multiple goroutines.
//
// Writes, fingerprint recomputation and cursor reads take the lock
// exclusively. Fingerprint queries, exports and snapshots share it, so any
// number of readers can export the same content while no write is in
// progress.
type Shared struct {
	mu sync.RWMutex
	bm *BitMap
}

// NewShared wraps b. The caller must not use b directly afterwards.
// A nil b is replaced by an empty BitMap.
func NewShared(b *BitMap) *Shared {
	if b == nil {
		b = &BitMap{}
	}
	return &Shared{bm: b}
}

// Write replaces the content. See BitMap.Write.
func (s *Shared) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bm.Write(p)
}

// Read reads from the shared read position. See BitMap.Read.
func (s *Shared) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bm.Read(p)
}

// Rewind resets the shared read position.
func (s *Shared) Rewind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bm.Rewind()
}

// RecomputeHash recomputes the fingerprint.
func (s *Shared) RecomputeHash() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bm.RecomputeHash()
}

// Release releases the storage and leaves an empty BitMap behind.
func (s *Shared) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bm.Release()
}

// Fingerprint returns the current fingerprint.
func (s *Shared) Fingerprint() Fingerprint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bm.Fingerprint()
}

// SameFingerprint compares the current fingerprint against other's.
func (s *Shared) SameFingerprint(other *BitMap) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bm.SameFingerprint(other)
}

// ExportRGBChecked exports under a shared lock. See BitMap.ExportRGBChecked.
func (s *Shared) ExportRGBChecked(dst []byte, pitch int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bm.ExportRGBChecked(dst, pitch)
}

// Upload uploads under a shared lock. See BitMap.Upload.
func (s *Shared) Upload(t Target) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bm.Upload(t)
}

// Snapshot returns an independent copy of the current BitMap.
func (s *Shared) Snapshot() *BitMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bm.Clone()
}
