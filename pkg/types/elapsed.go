package types

import "fmt"

// Elapsed is a duration in whole seconds, as reported by /proc/uptime.
type Elapsed int64

// String formats the duration as HH:MM:SS. Hours are not wrapped at 24, and
// negative values render as 00:00:00.
func (e Elapsed) String() string {
	s := int64(e)
	if s < 0 {
		s = 0
	}
	h := s / 3600
	s -= h * 3600
	m := s / 60
	s -= m * 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
