package compound

import (
	"github.com/facebookgo/clock"
)

// timestampMask reserve timestamps are stored in 40 bits
const timestampMask = 1<<40 - 1

// CurrentTimestamp current time unit, unix seconds truncated to 40 bits
func CurrentTimestamp(clk clock.Clock) uint64 {
	return uint64(clk.Now().UTC().Unix()) & timestampMask
}
