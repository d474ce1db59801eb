// Package fsio implements spec.md §6.2's filesystem contract: existence
// checks, byte/UTF-8 reads, change-aware writes, directory creation and a
// directory walk that skips common scratch directories. Grounded on the
// teacher's internal/discovery.Walker (os/filepath.WalkDir plus a
// skip-directory set and go-gitignore filtering).
package fsio

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// WriteResult reports what writeBytesIfChanged actually did.
type WriteResult int

const (
	Unchanged WriteResult = iota
	Changed
	New
)

// commonSkip lists directory names excluded from Walk, per spec.md §6.2.
var commonSkip = map[string]bool{
	".idea":  true,
	"target": true,
	".git":   true,
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func ReadBytes(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func ReadUtf8(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteBytesIfChanged writes data to path, skipping the write when the
// file already holds identical bytes.
func WriteBytesIfChanged(path string, data []byte) (WriteResult, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(existing, data) {
			return Unchanged, nil
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return Unchanged, err
		}
		return Changed, nil
	case os.IsNotExist(err):
		if err := Mkdirs(filepath.Dir(path)); err != nil {
			return Unchanged, err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return Unchanged, err
		}
		return New, nil
	default:
		return Unchanged, err
	}
}

func Mkdirs(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Walk yields every regular file under dir, skipping hidden directories
// and commonSkip's scratch directories; when dir carries a .gitignore,
// matched paths are skipped too.
func Walk(dir string) ([]string, error) {
	var gi *ignore.GitIgnore
	if Exists(filepath.Join(dir, ".gitignore")) {
		g, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
		if err == nil {
			gi = g
		}
	}

	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if name != "." && (commonSkip[name] || (len(name) > 0 && name[0] == '.')) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr == nil && gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
