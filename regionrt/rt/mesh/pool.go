package mesh

import (
	"sync"
	"sync/atomic"
)

// DefaultBufferSize is the initial scratch capacity of a layer without its own size.
const DefaultBufferSize = 786432

// BytePool hands out scratch byte buffers and takes them back on release.
type BytePool struct {
	pool        sync.Pool
	outstanding atomic.Int64
}

func NewBytePool() *BytePool {
	return &BytePool{}
}

func (p *BytePool) Get(capacity int) []byte {
	p.outstanding.Add(1)
	if v := p.pool.Get(); v != nil {
		buf := *(v.(*[]byte))
		if cap(buf) >= capacity {
			return buf[:0]
		}
	}
	return make([]byte, 0, capacity)
}

func (p *BytePool) Put(buf []byte) {
	if buf == nil {
		return
	}
	p.outstanding.Add(-1)
	buf = buf[:0]
	p.pool.Put(&buf)
}

var sharedPool = NewBytePool()

// Outstanding counts buffers handed out and not yet returned.
func (p *BytePool) Outstanding() int64 {
	return p.outstanding.Load()
}
