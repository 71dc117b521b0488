package proc

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Passwd maps uid to user name, built from an /etc/passwd style file.
type Passwd map[string]string

// Lookup returns the name for uid, or "" when unknown.
func (p Passwd) Lookup(uid string) string { return p[uid] }

// LoadPasswd reads a passwd file.
func LoadPasswd(path string) (Passwd, error) {
	f, err := os.Open(path)
	if err != nil {
		return Passwd{}, err
	}
	defer f.Close()
	return ParsePasswd(f)
}

// ParsePasswd parses name:password:uid:... lines. Comments, blank lines and
// lines with fewer than three fields are skipped. The first entry for a uid
// wins, matching getpwuid(3).
func ParsePasswd(r io.Reader) (Passwd, error) {
	out := Passwd{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) < 3 || parts[0] == "" {
			continue
		}
		if _, ok := out[parts[2]]; !ok {
			out[parts[2]] = parts[0]
		}
	}
	return out, sc.Err()
}
