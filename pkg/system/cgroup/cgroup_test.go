package cgroup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lineRoot   = "22 1 259:2 / / rw,relatime shared:1 - ext4 /dev/nvme0n1p2 rw"
	lineCg2    = "35 24 0:30 / /sys/fs/cgroup rw,nosuid,nodev,noexec,relatime shared:9 - cgroup2 cgroup2 rw,nsdelegate"
	lineCg1CPU = "40 35 0:35 / /sys/fs/cgroup/cpu,cpuacct rw,nosuid shared:15 - cgroup cgroup rw,cpu,cpuacct"
	lineCg1Mem = "41 35 0:36 / /sys/fs/cgroup/memory rw,nosuid shared:16 - cgroup cgroup rw,memory"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name   string
		lines  []string
		want   Version
		detail string
	}{
		{"v2", []string{lineRoot, lineCg2}, V2, "cgroup2 on /sys/fs/cgroup"},
		{"v1", []string{lineRoot, lineCg1CPU, lineCg1Mem}, V1, "cgroup v1 on /sys/fs/cgroup/cpu,cpuacct,/sys/fs/cgroup/memory"},
		{"hybrid", []string{lineCg2, lineCg1Mem}, Hybrid, "cgroup2 on /sys/fs/cgroup; cgroup v1 on /sys/fs/cgroup/memory"},
		{"none", []string{lineRoot}, Unsupported, "no cgroup mounts found"},
		{"garbage", []string{"not a mountinfo line", "1 2 - cgroup2"}, Unsupported, "no cgroup mounts found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ver, detail, err := Parse(strings.NewReader(strings.Join(tc.lines, "\n")))
			require.NoError(t, err)
			assert.Equal(t, tc.want, ver)
			assert.Equal(t, tc.detail, detail)
		})
	}
}

func TestDetectFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mountinfo")
	require.NoError(t, os.WriteFile(path, []byte(lineRoot+"\n"+lineCg2+"\n"), 0o644))

	ver, _, err := DetectFrom(path)
	require.NoError(t, err)
	assert.Equal(t, V2, ver)

	_, _, err = DetectFrom(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestVersion_String(t *testing.T) {
	assert.Equal(t, "cgroup v1", V1.String())
	assert.Equal(t, "cgroup v2", V2.String())
	assert.Equal(t, "cgroup hybrid", Hybrid.String())
	assert.Equal(t, "unsupported", Unsupported.String())
}
