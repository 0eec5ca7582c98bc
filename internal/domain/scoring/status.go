package scoring

// Status classifies a record for tables and exports.
type Status int

// Performance statuses, best first.
const (
	StatusExcellent Status = iota
	StatusGood
	StatusNeedsImprovement
)

// Classify derives the status from quality and errors.
func Classify(quality, errors int) Status {
	switch {
	case quality >= 8 && errors <= 1:
		return StatusExcellent
	case quality >= 6 && errors <= 3:
		return StatusGood
	default:
		return StatusNeedsImprovement
	}
}

func (s Status) String() string {
	switch s {
	case StatusExcellent:
		return "Excellent"
	case StatusGood:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

// Badge is the presentation class of the status.
func (s Status) Badge() string {
	switch s {
	case StatusExcellent:
		return "badge-success"
	case StatusGood:
		return "badge-warning"
	default:
		return "badge-danger"
	}
}
