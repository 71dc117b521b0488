package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElapsed_String(t *testing.T) {
	cases := []struct {
		in   Elapsed
		want string
	}{
		{0, "00:00:00"},
		{9, "00:00:09"},
		{61, "00:01:01"},
		{3600, "01:00:00"},
		{86399, "23:59:59"},
		{100 * 3600, "100:00:00"},
		{-5, "00:00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.in.String(), "in=%d", int64(tc.in))
	}
}
