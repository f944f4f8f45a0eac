package movie

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidReleaseYear = errors.New("release year out of range")
	ErrInvalidRating      = errors.New("average rating must be between 0 and 10")
)

const (
	// First commercially screened film.
	minReleaseYear = 1888
	maxYearsAhead  = 10
	maxRating      = 10.0
)

func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// ValidateReleaseYear accepts 1888 up to ten years past now.
func ValidateReleaseYear(year int32, now time.Time) error {
	if y := int(year); y < minReleaseYear || y > now.Year()+maxYearsAhead {
		return ErrInvalidReleaseYear
	}
	return nil
}

func ValidateRating(rating float64) error {
	if rating < 0 || rating > maxRating {
		return ErrInvalidRating
	}
	return nil
}
