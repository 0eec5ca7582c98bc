package app

import "errors"

// Session errors.
var (
	ErrRender          = errors.New("failed to render view")
	ErrNothingToExport = errors.New("no data to export")
)
