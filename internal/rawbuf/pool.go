package rawbuf

import "sync"

// Pool is a thread-safe pool for reusing byte buffers.
//
// Pool groups buffers by length so a BitMap of a given size can pick up
// storage released by another BitMap of the same size. Buffers are always
// cleared before they are handed out again.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket
}

// NewPool creates a new buffer pool with the given maximum buffers per bucket.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get retrieves an n-byte zeroed buffer from the pool or allocates one.
func (p *Pool) Get(n int) ([]byte, error) {
	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		bucket[len(bucket)-1] = nil
		p.buckets[n] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		clear(buf)
		return buf, nil
	}
	p.mu.Unlock()

	return Alloc(n)
}

// Put returns a buffer to the pool for reuse.
// Empty buffers and buffers that would overflow their bucket are discarded.
func (p *Pool) Put(buf []byte) {
	n := len(buf)
	if n == 0 {
		return
	}

	clear(buf)

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[n]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[n] = append(bucket, buf[:n:n])
}

// Len reports how many buffers of length n are currently pooled.
func (p *Pool) Len(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[n])
}

// defaultPool is the package-level pool for convenient usage.
var defaultPool = NewPool(8)

// Get retrieves a zeroed buffer from the default pool.
func Get(n int) ([]byte, error) {
	return defaultPool.Get(n)
}

// Put returns a buffer to the default pool.
func Put(buf []byte) {
	defaultPool.Put(buf)
}
