//go:build debug

package universe

import (
	"fmt"

	"github.com/san-kum/orbisim/internal/dynamo"
)

func indexFault(k, n int) {
	panic(fmt.Errorf("%w: %d (len %d)", dynamo.ErrIndexOutOfRange, k, n))
}
