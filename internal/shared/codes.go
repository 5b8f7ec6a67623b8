package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// NextCode derives the next document code in a prefixed sequence from the
// highest existing code. A last code that is empty or whose numeric suffix
// fails to parse restarts the sequence at 1. The counter is zero-padded to
// two digits; sequences past 99 simply grow wider.
func NextCode(prefix, last string) string {
	n := 0
	if suffix := strings.TrimPrefix(last, prefix); suffix != last {
		if parsed, err := strconv.Atoi(suffix); err == nil && parsed > 0 {
			n = parsed
		}
	}
	return fmt.Sprintf("%s%02d", prefix, n+1)
}
