package entry

import (
	"errors"

	"github.com/okian/perfdash/internal/domain/model"
)

// Entry errors.
var (
	ErrDuplicate     = errors.New("a record for this date and member already exists")
	ErrEmptyBook     = errors.New("no records to save")
	ErrIndexNotFound = errors.New("record index out of range")
	ErrSchema        = errors.New("performance file must be a JSON array of records")
)

// ErrValidation and ValidationError are shared with file ingestion so both
// entry paths report rejected fields the same way.
var ErrValidation = model.ErrValidation

type ValidationError = model.ValidationError
