// Package testutils contains helpers shared by tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

// FakeRoot writes files, keyed by slash-separated path relative to the root, under a fresh
// temporary directory and returns that directory. It stands in for "/" when tests need /proc or
// /sys contents.
func FakeRoot(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	WriteFiles(t, root, files)
	return root
}

// WriteFiles writes files under root, creating parent directories as needed.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for p, contents := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		test.That(t, os.MkdirAll(filepath.Dir(full), 0o755), test.ShouldBeNil)
		test.That(t, os.WriteFile(full, []byte(contents), 0o600), test.ShouldBeNil)
	}
}
