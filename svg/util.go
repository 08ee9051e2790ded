package svg

import (
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/minify/v2"
)

// dec formats a coordinate with a fixed number of decimals and strips redundant zeros.
type dec struct {
	f    float64
	prec int
}

func (d dec) String() string {
	s := fmt.Sprintf("%.*f", d.prec, d.f)
	s = string(minify.Decimal([]byte(s), d.prec))
	if float64(math.MaxInt32) < d.f || d.f < float64(math.MinInt32) {
		if i := strings.IndexByte(s, '.'); i == -1 {
			s += ".0"
		}
	}
	return s
}
