package fetch

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// untarGz extracts a gzip-compressed tar stream into root. When the first
// directory entry is a top-level directory, as in GitHub source archives, it
// is stripped from every entry beneath it.
func untarGz(r io.Reader, root string) error {
	gr, err := gzip.NewReader(bufio.NewReader(r))
	if err != nil {
		return err
	}
	defer gr.Close()

	var prefix string

	first := true

	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if first && strings.Count(strings.TrimSuffix(hdr.Name, "/"), "/") == 0 {
				prefix = strings.TrimSuffix(hdr.Name, "/") + "/"
			}

			first = false
		case tar.TypeReg:
			first = false

			if err := writeEntry(root, strings.TrimPrefix(hdr.Name, prefix), os.FileMode(hdr.Mode), tr); err != nil {
				return err
			}
		default:
			// symlinks and pax headers are skipped
		}
	}
}

// unzip extracts a zip archive into root, stripping a shared top-level
// directory.
func unzip(r io.ReaderAt, size int64, root string) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return err
	}

	prefix := commonRoot(zr.File)
	for _, f := range zr.File {
		name := strings.TrimPrefix(f.Name, prefix)
		if name == "" || f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return err
		}

		err = writeEntry(root, name, f.Mode(), rc)
		rc.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

// commonRoot returns "dir/" when every zip entry lives under a single
// top-level directory.
func commonRoot(files []*zip.File) string {
	var root string

	for _, f := range files {
		top, _, ok := strings.Cut(f.Name, "/")
		if !ok {
			return ""
		}

		if root == "" {
			root = top
		} else if root != top {
			return ""
		}
	}

	if root == "" {
		return ""
	}

	return root + "/"
}

func writeEntry(root, name string, mode os.FileMode, r io.Reader) error {
	if name == "" {
		return nil
	}

	if strings.Contains("/"+name+"/", "/../") || path.IsAbs(name) {
		return fmt.Errorf("archive entry %q escapes destination", name)
	}

	dst := filepath.Join(root, filepath.FromSlash(path.Clean(name)))
	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return err
	}

	if mode.Perm() == 0 {
		mode = 0o644
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if _, err := io.Copy(w, r); err != nil {
		f.Close()
		return err
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
