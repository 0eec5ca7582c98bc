package ingest

import (
	"errors"
	"fmt"
)

// Sentinel kinds for ingestion errors.
var (
	ErrParse          = errors.New("malformed JSON")
	ErrSchema         = errors.New("unexpected shape")
	ErrRead           = errors.New("read failed")
	ErrNoValidRecords = errors.New("no valid records found in uploaded files")
)

// FileError reports why one input file was dropped.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
