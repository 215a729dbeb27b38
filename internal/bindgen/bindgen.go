// Package bindgen runs the external godot-cpp bindings generator and lists
// the sources the build descriptor compiles.
package bindgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// ErrGeneratorFailed is returned when the generator exits unsuccessfully.
var ErrGeneratorFailed = errors.New("bindings generator failed")

// Options describe one generator invocation.
type Options struct {
	// RepoDir is the godot-cpp checkout; the generator runs inside it.
	RepoDir string
	// Script is copied into RepoDir before running. Optional.
	Script string
	// Command is the interpreter or executable; the script name, if any, is
	// appended to it.
	Command []string
	// Schemas are the schema files, relative to RepoDir.
	Schemas []string
	// OutputDir is the output root, relative to RepoDir.
	OutputDir string
	// Precision is "single" or "double".
	Precision string
}

// Args returns the full argument vector, program first.
func (o Options) Args() []string {
	args := slices.Clone(o.Command)
	if o.Script != "" {
		args = append(args, filepath.Base(o.Script))
	}

	args = append(args, o.Schemas...)

	return append(args, o.OutputDir, o.Precision)
}

// Run copies the generator script into the checkout and runs it. A non-zero
// exit is reported as ErrGeneratorFailed with the captured stderr.
func Run(ctx context.Context, o Options) error {
	if len(o.Command) == 0 {
		return fmt.Errorf("%w: no command configured", ErrGeneratorFailed)
	}

	if o.Script != "" {
		if err := copyFile(o.Script, filepath.Join(o.RepoDir, filepath.Base(o.Script))); err != nil {
			return fmt.Errorf("copying generator script: %w", err)
		}
	}

	args := o.Args()

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = o.RepoDir
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %w: %s", ErrGeneratorFailed, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return nil
}

// Sources lists the generated (gen/src) and hand-written (src) C++ sources
// of a checkout as sorted "./"-prefixed slash paths.
func Sources(repoDir string) (generated, core []string, err error) {
	generated, err = cppFiles(repoDir, "gen/src")
	if err != nil {
		return nil, nil, err
	}

	core, err = cppFiles(repoDir, "src")
	if err != nil {
		return nil, nil, err
	}

	return generated, core, nil
}

func cppFiles(repoDir, dir string) ([]string, error) {
	var files []string

	root := filepath.Join(repoDir, filepath.FromSlash(dir))

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || filepath.Ext(p) != ".cpp" {
			return nil
		}

		rel, err := filepath.Rel(repoDir, p)
		if err != nil {
			return err
		}

		files = append(files, "./"+path.Clean(filepath.ToSlash(rel)))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing sources in %s: %w", root, err)
	}

	slices.Sort(files)

	return files, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, 0o755)
}
