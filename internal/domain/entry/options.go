package entry

import (
	"github.com/okian/perfdash/internal/domain/scoring"
	"github.com/okian/perfdash/pkg/logger"
)

// Option applies a configuration option to the Book.
type Option func(*Book)

// WithCalculator sets the calculator used to recompute daily scores.
func WithCalculator(c *scoring.Calculator) Option {
	return func(b *Book) {
		if c != nil {
			b.calc = c
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(b *Book) {
		if l != nil {
			b.logger = l
		}
	}
}
