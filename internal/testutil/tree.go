// Package testutil builds on-disk file trees for tests from txtar archives.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// WriteTree writes every file of the txtar archive below dir and returns dir.
func WriteTree(t testing.TB, dir, archive string) string {
	t.Helper()

	for _, f := range txtar.Parse([]byte(archive)).Files {
		p := filepath.Join(dir, filepath.FromSlash(f.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, f.Data, 0o644))
	}

	return dir
}

// TempTree writes the archive into a fresh temporary directory.
func TempTree(t testing.TB, archive string) string {
	t.Helper()

	return WriteTree(t, t.TempDir(), archive)
}
