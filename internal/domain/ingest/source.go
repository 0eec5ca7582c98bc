package ingest

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
)

// Source is one input file.
type Source interface {
	// Name is the provenance attached to every record read from the source.
	Name() string
	// Open returns the raw payload.
	Open(ctx context.Context) (io.ReadCloser, error)
}

type fileSource struct {
	path string
}

// FileSource reads a file from disk. Its name is the file's base name.
func FileSource(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Name() string { return filepath.Base(s.path) }

func (s fileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.path)
}

type bytesSource struct {
	name string
	data []byte
}

// BytesSource serves an in-memory payload.
func BytesSource(name string, data []byte) Source {
	return bytesSource{name: name, data: data}
}

func (s bytesSource) Name() string { return s.name }

func (s bytesSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(s.data)), nil
}
