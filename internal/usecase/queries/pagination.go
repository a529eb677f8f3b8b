package queries

import "activity-ledger/internal/pkg/errs"

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

var ErrInvalidPage = errs.New("invalid page parameters")

type Page struct {
	Offset int
	Limit  int
}

// Normalize clamps Limit into [1, MaxListLimit], defaulting when unset.
// A negative offset is rejected rather than silently reset.
func (p Page) Normalize() (Page, error) {
	if p.Offset < 0 {
		return Page{}, errs.Wrapf(ErrInvalidPage, "offset %d", p.Offset)
	}
	p.Limit = ValidateLimit(p.Limit)
	return p, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
