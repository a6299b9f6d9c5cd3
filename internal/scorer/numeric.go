package scorer

import (
	"math"
	"regexp"
	"strconv"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// parseAmount extracts the leading numeric quantity from a free-text answer
// like "$1000", "100-200 USD" or "1-2 weeks". Range answers take the first
// bound, matching how budget brackets were classified upstream. Returns
// false when no number is present.
func parseAmount(s string) (float64, bool) {
	match := numberPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// numericCloseness maps two quantities to a similarity in [0,1]:
// 1 when equal, falling linearly with the relative gap.
func numericCloseness(a, b float64) float64 {
	if a == b {
		return 1
	}
	max := math.Max(math.Abs(a), math.Abs(b))
	if max == 0 {
		return 1
	}
	c := 1 - math.Abs(a-b)/max
	if c < 0 {
		return 0
	}
	return c
}
