// Package testrecords provides record fixtures for tests: the five-record
// sample set used throughout the docs and a seeded synthetic generator.
package testrecords

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/internal/domain/scoring"
)

// SampleFile is the source file name attached to Sample records.
const SampleFile = "Employee-Performance-2025-03-01.json"

// Sample returns the five reference records with daily scores attached.
func Sample() []model.Record {
	recs := []model.Record{
		{Date: "2025-03-01", Member: "Gohary", Products: 34, Quality: 9, Errors: 1},
		{Date: "2025-03-01", Member: "Lamees", Products: 28, Quality: 9, Errors: 2, ErrorCategory: model.Tags{"Packaging"}},
		{Date: "2025-03-02", Member: "Ahmed", Products: 30, Quality: 9, Errors: 9, ErrorCategory: model.Tags{"Assembly", "Paint"}, ErrorDescription: model.Tags{"loose screws"}},
		{Date: "2025-03-02", Member: "Sara", Products: 30, Quality: 10, Errors: 0},
		{Date: "2025-03-03", Member: "Omar", Products: 0, Quality: 5, Errors: 2},
	}
	for i := range recs {
		recs[i].DailyScore = scoring.Score(recs[i].Products, recs[i].Quality, recs[i].Errors)
		recs[i].SourceFile = SampleFile
	}
	return recs
}

// SampleJSON is Sample as it appears in an input file.
const SampleJSON = `[
  {"date": "2025-03-01", "member": "Gohary", "products": 34, "quality": 9, "errors": 1},
  {"date": "2025-03-01", "member": "Lamees", "products": 28, "quality": 9, "errors": 2, "errorCategory": "Packaging"},
  {"date": "2025-03-02", "member": "Ahmed", "products": 30, "quality": 9, "errors": 9, "errorCategory": ["Assembly", "Paint"], "errorDescription": ["loose screws"]},
  {"date": "2025-03-02", "member": "Sara", "products": 30, "quality": 10, "errors": 0, "dailyScore": 12},
  {"date": "2025-03-03", "member": "Omar", "products": 0, "quality": 5, "errors": 2, "errorCategory": null}
]`

// Performer profiles used by Generate.
const (
	profileAverage = iota
	profileHigh
	profileLow
	profileElite
	profileCount
)

var members = []string{"Gohary", "Lamees", "Ahmed", "Sara", "Omar", "nadia", "Youssef", "Mona"}

// Generate returns n synthetic records spread over consecutive days starting
// at start. The same seed always yields the same records.
func Generate(n int, seed uint64, start time.Time) []model.Record {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // deterministic fixtures
	recs := make([]model.Record, n)
	for i := range recs {
		products, quality, errors := generateCounters(rng)
		recs[i] = model.Record{
			Date:       start.AddDate(0, 0, i/len(members)).Format(model.DateLayout),
			Member:     members[i%len(members)],
			Products:   products,
			Quality:    quality,
			Errors:     errors,
			DailyScore: scoring.Score(products, quality, errors),
			SourceFile: fmt.Sprintf("generated-%d.json", seed),
		}
	}
	return recs
}

// generateCounters draws counters from one of the performer profiles.
func generateCounters(rng *rand.Rand) (products, quality, errors int) {
	switch rng.IntN(profileCount) {
	case profileHigh:
		return 25 + rng.IntN(15), 7 + rng.IntN(3), rng.IntN(3)
	case profileLow:
		return rng.IntN(15), 1 + rng.IntN(5), 2 + rng.IntN(10)
	case profileElite:
		return 35 + rng.IntN(10), 9 + rng.IntN(2), rng.IntN(2)
	default:
		return 15 + rng.IntN(20), 4 + rng.IntN(4), rng.IntN(6)
	}
}
