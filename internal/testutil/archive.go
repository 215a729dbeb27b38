package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// TarGz packs the txtar archive into a gzip-compressed tarball whose entries
// live under the top-level directory prefix, as in GitHub source archives.
func TarGz(t testing.TB, prefix, archive string) []byte {
	t.Helper()

	var buf bytes.Buffer

	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{Typeflag: tar.TypeDir, Name: prefix + "/", Mode: 0o755}))

	for _, f := range txtar.Parse([]byte(archive)).Files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Typeflag: tar.TypeReg,
			Name:     prefix + "/" + f.Name,
			Mode:     0o644,
			Size:     int64(len(f.Data)),
		}))

		_, err := tw.Write(f.Data)
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())

	return buf.Bytes()
}
