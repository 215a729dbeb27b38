// Package fetch places a tagged revision of a repository into a working
// directory, either by shallow git clone or by downloading a release archive.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const dirPerm = 0o755

// Clone shallow-clones ref of url into dir, replacing any previous contents.
func Clone(ctx context.Context, url, ref, dir string) error {
	if err := reset(dir); err != nil {
		return err
	}

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", "--branch", ref, url, dir)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clone %s@%s: %w: %s", url, ref, err, strings.TrimSpace(stderr.String()))
	}

	return nil
}

// Download fetches the archive at url and extracts it into dir, replacing any
// previous contents. A single top-level directory in the archive, as GitHub
// source archives have, is stripped.
func Download(ctx context.Context, client *http.Client, url, dir string) error {
	if client == nil {
		client = http.DefaultClient
	}

	if err := reset(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "godot-cpp-wrap-*"+archiveExt(url))
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: %s", url, resp.Status)
	}

	size, err := io.Copy(tmp, resp.Body)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return err
	}

	switch ext := archiveExt(url); ext {
	case ".tar.gz", ".tgz":
		err = untarGz(tmp, dir)
	case ".zip":
		err = unzip(tmp, size, dir)
	default:
		err = fmt.Errorf("unsupported archive type %q", ext)
	}

	if err != nil {
		return fmt.Errorf("extracting %s: %w", url, err)
	}

	return nil
}

func archiveExt(url string) string {
	base := strings.ToLower(url[strings.LastIndex(url, "/")+1:])
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}

	for _, ext := range []string{".tar.gz", ".tgz", ".zip"} {
		if strings.HasSuffix(base, ext) {
			return ext
		}
	}

	return filepath.Ext(base)
}

// reset removes dir and recreates it empty.
func reset(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}

	return os.MkdirAll(dir, dirPerm)
}
