package sim

import (
	"sync"

	"github.com/san-kum/orbisim/internal/universe"
)

// UniversePool recycles scratch universes of one capacity.
type UniversePool struct {
	pool     sync.Pool
	capacity int
}

func NewUniversePool(capacity int) *UniversePool {
	return &UniversePool{
		capacity: capacity,
		pool: sync.Pool{
			New: func() interface{} {
				return universe.New(capacity)
			},
		},
	}
}

func (p *UniversePool) Get() *universe.Universe {
	return p.pool.Get().(*universe.Universe)
}

func (p *UniversePool) Put(u *universe.Universe) {
	if u.Cap() == p.capacity {
		u.Clear()
		p.pool.Put(u)
	}
}

// GetAndCopy returns a pooled universe holding a copy of src.
func (p *UniversePool) GetAndCopy(src *universe.Universe) *universe.Universe {
	dst := p.Get()
	dst.CopyFrom(src)
	return dst
}
