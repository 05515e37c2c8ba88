package buffer

import "sync"

// Pool provides sync.Pool-based reuse of mono work slices, such as the gain
// curve computed for each output buffer.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				s := make([]float64, 0)
				return &s
			},
		},
	}
}

// Get returns a zeroed slice with the requested length.
// Callers must return it via Put when done.
func (p *Pool) Get(length int) []float64 {
	sp := p.pool.Get().(*[]float64)
	s := *sp
	if cap(s) < length {
		s = make([]float64, length)
	} else {
		s = s[:length]
		for i := range s {
			s[i] = 0
		}
	}
	return s
}

// Put returns a slice to the pool for reuse.
// The caller must not use the slice after calling Put.
func (p *Pool) Put(s []float64) {
	if s == nil {
		return
	}
	s = s[:0]
	p.pool.Put(&s)
}
