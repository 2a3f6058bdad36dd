package watch

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Unpacker extracts an archive into destDir and returns the extracted file
// paths. Implementations exist per archive format; zip ships built in, other
// formats can be plugged into the watcher the same way.
type Unpacker interface {
	Unpack(src, destDir string) ([]string, error)
}

// ZipUnpacker extracts zip archives. Directory entries are skipped; nested
// paths are flattened into destDir so the watcher can hand every file to a
// format handler directly.
type ZipUnpacker struct{}

func (ZipUnpacker) Unpack(src, destDir string) ([]string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", src, err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, err
	}

	var extracted []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(f.Name)
		if name == "" || strings.HasPrefix(name, ".") {
			continue
		}
		dst := filepath.Join(destDir, name)

		in, err := f.Open()
		if err != nil {
			return extracted, fmt.Errorf("open %s in %s: %w", f.Name, src, err)
		}
		out, err := os.Create(dst)
		if err != nil {
			in.Close()
			return extracted, err
		}
		_, copyErr := io.Copy(out, in)
		in.Close()
		if closeErr := out.Close(); copyErr == nil {
			copyErr = closeErr
		}
		if copyErr != nil {
			return extracted, fmt.Errorf("extract %s from %s: %w", f.Name, src, copyErr)
		}
		extracted = append(extracted, dst)
	}
	return extracted, nil
}
