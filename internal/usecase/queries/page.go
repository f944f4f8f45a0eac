package queries

import (
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/shared"
)

var (
	ErrInvalidPage  = errs.Mark(errs.New("invalid page number"), errs.ErrValidation)
	ErrInvalidLimit = errs.Mark(errs.New("invalid limit (must be 1-100)"), errs.ErrValidation)
)

// PageRequest is 1-based; zero values fall back to page 1 and DefaultLimit.
type PageRequest struct {
	Page  int
	Limit int
}

func (r PageRequest) normalize() (PageRequest, error) {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	if r.Page < 1 {
		return r, ErrInvalidPage
	}
	if r.Limit < 1 || r.Limit > MaxLimit {
		return r, ErrInvalidLimit
	}
	return r, nil
}

func (r PageRequest) toShared() shared.Page {
	return shared.NewPage(r.Page, r.Limit)
}
