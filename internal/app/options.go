package app

import (
	"github.com/okian/perfdash/internal/domain/ingest"
	"github.com/okian/perfdash/pkg/logger"
)

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithPageSize sets the number of table rows per page.
func WithPageSize(size int) Option {
	return func(s *Session) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithIngestor sets the ingestor used by Load.
func WithIngestor(in *ingest.Ingestor) Option {
	return func(s *Session) {
		if in != nil {
			s.ingestor = in
		}
	}
}

// WithLogger sets a custom logger for the session.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}
