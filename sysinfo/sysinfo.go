// Package sysinfo scrapes values out of the text pseudo-files exposed under /proc and /sys.
package sysinfo

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// ErrNoMatch is returned when no line of a file matches the requested pattern.
var ErrNoMatch = errors.New("no_match")

// RegexLine returns the first capture group of the first line in the file at path that matches
// pattern. When the pattern has no capture group the whole match is returned.
func RegexLine(path string, pattern *regexp.Regexp) (string, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := pattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		if len(m) > 1 {
			return m[1], nil
		}
		return m[0], nil
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return "", errors.Wrapf(ErrNoMatch, "%s: %s", path, pattern)
}

// Root resolves absolute system paths against a filesystem root, so tests and chroots can
// substitute a fake /proc and /sys tree.
type Root string

// Path joins p onto the root. An empty root is "/".
func (r Root) Path(p string) string {
	if r == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(string(r), p)
}

// Readable reports whether the file at p can be opened for reading.
func (r Root) Readable(p string) bool {
	f, err := os.Open(r.Path(p))
	if err != nil {
		return false
	}
	goutils.UncheckedError(f.Close())
	return true
}

// RegexLine is RegexLine with p resolved against the root.
func (r Root) RegexLine(p string, pattern *regexp.Regexp) (string, error) {
	return RegexLine(r.Path(p), pattern)
}
