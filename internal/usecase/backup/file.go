package backup

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format names a snapshot encoding.
type Format string

const (
	FormatNDJSON Format = "ndjson"
	FormatTOML   Format = "toml"
)

// DetectFormat derives the encoding from a file name. A trailing ".gz" marks
// a gzip stream and is stripped before the format extension is inspected.
func DetectFormat(path string) (format Format, gzipped bool) {
	name := strings.ToLower(strings.TrimSpace(path))
	if strings.HasSuffix(name, ".gz") {
		gzipped = true
		name = strings.TrimSuffix(name, ".gz")
	}
	if filepath.Ext(name) == ".toml" {
		return FormatTOML, gzipped
	}
	return FormatNDJSON, gzipped
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser) Close() error { return closeAll(rc.closers) }

type writeCloser struct {
	io.Writer
	closers []func() error
}

func (wc *writeCloser) Close() error { return closeAll(wc.closers) }

func closeAll(closers []func() error) error {
	var first error
	for _, closer := range closers {
		if err := closer(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens a snapshot for reading. A missing file yields an error matching fs.ErrNotExist.
func Open(path string) (io.ReadCloser, Format, error) {
	format, gzipped := DetectFormat(path)

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, format, err
	}
	rc := &readCloser{Reader: file, closers: []func() error{file.Close}}

	if gzipped {
		gzr, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, format, fmt.Errorf("create gzip reader: %w", err)
		}
		rc.Reader = gzr
		rc.closers = append([]func() error{gzr.Close}, rc.closers...)
	}
	return rc, format, nil
}

// Create truncates or creates a snapshot file. Close must be called to flush gzip output.
func Create(path string) (io.WriteCloser, Format, error) {
	format, gzipped := DetectFormat(path)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, format, fmt.Errorf("create output directory: %w", err)
		}
	}
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return nil, format, fmt.Errorf("create snapshot file: %w", err)
	}
	wc := &writeCloser{Writer: file, closers: []func() error{file.Close}}

	if gzipped {
		gz := gzip.NewWriter(file)
		wc.Writer = gz
		wc.closers = append([]func() error{gz.Close}, wc.closers...)
	}
	return wc, format, nil
}
