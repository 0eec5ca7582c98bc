// Package scoring computes the normalized daily score, the composite ranking
// score and the performance status of a record.
package scoring

import "math"

// Default weights of the daily score.
const (
	defaultBaseWeight    = 0.4
	defaultQualityWeight = 0.5
	defaultErrorWeight   = 0.1
	defaultMaxQuality    = 10
	maxScoreValue        = 100
)

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithWeights sets the base, quality and error weights.
func WithWeights(base, quality, errors float64) Option {
	return func(c *Calculator) {
		if base >= 0 && quality >= 0 && errors >= 0 && base+quality > 0 {
			c.baseWeight = base
			c.qualityWeight = quality
			c.errorWeight = errors
		}
	}
}

// WithMaxQuality sets the quality rating that counts as perfect.
func WithMaxQuality(maxQuality int) Option {
	return func(c *Calculator) {
		if maxQuality > 0 {
			c.maxQuality = float64(maxQuality)
		}
	}
}

// Calculator maps a record's raw counters to a daily score in [0,100].
// It is immutable after construction and safe for concurrent use.
type Calculator struct {
	baseWeight    float64
	qualityWeight float64
	errorWeight   float64
	maxQuality    float64
}

// NewCalculator creates a calculator with the default weights.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		baseWeight:    defaultBaseWeight,
		qualityWeight: defaultQualityWeight,
		errorWeight:   defaultErrorWeight,
		maxQuality:    defaultMaxQuality,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Score computes the daily score. A member with no output scores 0.
func (c *Calculator) Score(products, quality, errors int) int {
	if products <= 0 {
		return 0
	}

	units := float64(products)
	qualityFactor := float64(quality) / c.maxQuality
	errorFactor := float64(errors) / units

	perUnit := c.baseWeight + qualityFactor*c.qualityWeight - errorFactor*c.errorWeight
	raw := perUnit * units

	// Best case per unit: perfect quality and no errors.
	maxPerUnit := c.baseWeight + c.qualityWeight
	maxPossible := maxPerUnit * units

	percentage := raw / maxPossible * maxScoreValue
	return int(math.Round(math.Max(0, math.Min(maxScoreValue, percentage))))
}

var defaultCalculator = NewCalculator()

// Score computes the daily score with the default weights.
func Score(products, quality, errors int) int {
	return defaultCalculator.Score(products, quality, errors)
}

// Composite is the ranking score used for table sorting and summary
// averages: output times quality, divided by errors (at least 1).
func Composite(products, quality, errors int) float64 {
	divisor := errors
	if divisor < 1 {
		divisor = 1
	}
	return float64(products*quality) / float64(divisor)
}
