package proc

import (
	"math"
	"strconv"
	"strings"
)

// DecodeUint parses a decimal counter and returns 0 when the text is not a
// valid unsigned number. One corrupt field must not fail a whole snapshot.
func DecodeUint(s string) uint64 {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// DecodeSeconds parses a seconds value such as "35278.61" and truncates it to
// whole seconds. Invalid, negative or non-finite input yields 0.
func DecodeSeconds(s string) int64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return int64(v)
}
