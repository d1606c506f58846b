package stream

import (
	"fmt"
	"sync"
)

// Borrow a batch buffer from the pool.
//
// Usage convention:
//   - Do not change capacity (do not move the start of the slice)
//   - Do not assume length (always redefine the end of the slice)
//   - Use putBuffer() only to return borrowed slices
func getBuffer() []byte {
	return pool.Get()
}

func putBuffer(buf []byte) {
	pool.Put(buf)
}

var pool = bufferPool{
	pool: sync.Pool{
		New: func() any {
			buf := make([]byte, 0, BatchBytes)
			return &buf
		},
	},
}

type bufferPool struct {
	pool sync.Pool
}

func (p *bufferPool) Get() (buf []byte) {
	buf = *(p.pool.Get().(*[]byte))
	return buf[:0]
}

func (p *bufferPool) Put(buf []byte) {
	if cap(buf) != BatchBytes {
		panic(fmt.Sprintf("attempted to poison the pool: cap=%d, want=%d", cap(buf), BatchBytes))
	}
	p.pool.Put(&buf)
}
