//go:build linux

package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeProc builds a minimal procfs tree under t.TempDir().
type fakeProc struct {
	t    *testing.T
	root string
	etc  string
}

func newFakeProc(t *testing.T) *fakeProc {
	t.Helper()
	dir := t.TempDir()
	fp := &fakeProc{t: t, root: filepath.Join(dir, "proc"), etc: filepath.Join(dir, "etc")}
	require.NoError(t, os.MkdirAll(fp.root, 0o755))
	require.NoError(t, os.MkdirAll(fp.etc, 0o755))
	return fp
}

func (fp *fakeProc) fs() *FS {
	return &FS{
		Root:      fp.root,
		Passwd:    filepath.Join(fp.etc, "passwd"),
		OSRelease: filepath.Join(fp.etc, "os-release"),
	}
}

func (fp *fakeProc) write(rel, content string) {
	fp.t.Helper()
	path := filepath.Join(fp.root, rel)
	require.NoError(fp.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(fp.t, os.WriteFile(path, []byte(content), 0o644))
}

func (fp *fakeProc) writeEtc(name, content string) {
	fp.t.Helper()
	require.NoError(fp.t, os.WriteFile(filepath.Join(fp.etc, name), []byte(content), 0o644))
}

// statLine renders a 52-field /proc/<pid>/stat line.
func statLine(pid int, comm string, state byte, utime, stime, start uint64) string {
	return fmt.Sprintf("%d (%s) %c 1 %d %d 0 -1 4194560 1200 0 3 0 %d %d 0 0 20 0 1 0 %d "+
		"12345678 512 18446744073709551615 1 1 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0\n",
		pid, comm, state, pid, pid, utime, stime, start)
}

func (fp *fakeProc) addProcess(pid int, comm string, state byte, uid string, utime, stime, start, vmKB, rssKB uint64, cmdline string) {
	fp.t.Helper()
	dir := fmt.Sprint(pid)
	fp.write(dir+"/stat", statLine(pid, comm, state, utime, stime, start))
	status := fmt.Sprintf("Name:\t%s\nState:\t%c\nUid:\t%s\t%s\t%s\t%s\n", comm, state, uid, uid, uid, uid)
	if vmKB > 0 {
		status += fmt.Sprintf("VmSize:\t%8d kB\nVmRSS:\t%8d kB\n", vmKB, rssKB)
	}
	fp.write(dir+"/status", status)
	fp.write(dir+"/cmdline", cmdline)
}
