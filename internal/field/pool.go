package field

import (
	"sync"

	"github.com/san-kum/orbisim/internal/quadtree"
)

// sourcePool recycles per-worker source lists between rasters.
var sourcePool = sync.Pool{
	New: func() interface{} {
		s := make([]quadtree.Source, 0, 64)
		return &s
	},
}

func getSources(n int) *[]quadtree.Source {
	s := sourcePool.Get().(*[]quadtree.Source)
	if cap(*s) < n {
		*s = make([]quadtree.Source, 0, n)
	}
	*s = (*s)[:0]
	return s
}

func putSources(s *[]quadtree.Source) {
	sourcePool.Put(s)
}
