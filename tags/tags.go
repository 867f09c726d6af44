// Package tags reads the commands.tag file spec.md §6 names: a plain
// text file, one tag per line, exposed to external callers as a
// read-only list. Used exclusively by the collaborator UI this system
// does not itself implement.
package tags

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Load reads path into a slice of non-blank, trimmed lines, preserving
// file order. A missing file yields an empty list rather than an
// error — the tags file is optional ambient metadata, not a required
// input.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "opening tags file %s", path)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading tags file %s", path)
	}
	return out, nil
}
