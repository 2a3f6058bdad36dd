package orchestrator

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteJSON writes v pretty-printed the way the downstream importer expects:
// four-space indent, HTML left unescaped.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// UniqueDestination picks the output path for name inside dir. An existing
// file of the same size is assumed to be a rerun of the same input and gets
// overwritten; otherwise the smallest free _N suffix is appended before the
// extension.
func UniqueDestination(dir, name string, sourceSize int64) string {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return path
	}
	if err == nil && info.Size() == sourceSize {
		return path
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		info, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate
		}
		if err == nil && info.Size() == sourceSize {
			return candidate
		}
	}
}

// CopyToDir copies src into dir, reusing UniqueDestination semantics, and
// returns the destination path.
func CopyToDir(src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	info, err := os.Stat(src)
	if err != nil {
		return "", err
	}
	dst := UniqueDestination(dir, filepath.Base(src), info.Size())

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return dst, out.Close()
}
