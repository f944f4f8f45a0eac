package movie

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	id            uuid.UUID
	title         string
	genre         []string
	releaseYear   *int32
	director      string
	cast          []string
	synopsis      string
	posterURL     string
	averageRating float64
	createdAt     time.Time
	updatedAt     time.Time
}

type Props struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Genre         []string  `json:"genre"`
	ReleaseYear   *int32    `json:"releaseYear,omitempty"`
	Director      string    `json:"director"`
	Cast          []string  `json:"cast"`
	Synopsis      string    `json:"synopsis"`
	PosterURL     string    `json:"posterUrl"`
	AverageRating float64   `json:"averageRating"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewMovie(p Props, now time.Time) (*Movie, error) {
	m := &Movie{id: uuid.New(), createdAt: now.UTC()}
	if err := m.assign(p, now); err != nil {
		return nil, err
	}
	return m, nil
}

func Reconstruct(p Props) *Movie {
	return &Movie{
		id:            p.ID,
		title:         p.Title,
		genre:         p.Genre,
		releaseYear:   p.ReleaseYear,
		director:      p.Director,
		cast:          p.Cast,
		synopsis:      p.Synopsis,
		posterURL:     p.PosterURL,
		averageRating: p.AverageRating,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}
}

func (m *Movie) Update(p Props, now time.Time) error {
	next := *m
	if err := next.assign(p, now); err != nil {
		return err
	}
	*m = next
	return nil
}

func (m *Movie) assign(p Props, now time.Time) error {
	if err := ValidateTitle(p.Title); err != nil {
		return err
	}
	if p.ReleaseYear != nil {
		if err := ValidateReleaseYear(*p.ReleaseYear, now); err != nil {
			return err
		}
	}
	if err := ValidateRating(p.AverageRating); err != nil {
		return err
	}

	m.title = strings.TrimSpace(p.Title)
	m.genre = normalize(p.Genre)
	m.releaseYear = p.ReleaseYear
	m.director = strings.TrimSpace(p.Director)
	m.cast = normalize(p.Cast)
	m.synopsis = p.Synopsis
	m.posterURL = strings.TrimSpace(p.PosterURL)
	m.averageRating = p.AverageRating
	m.updatedAt = now.UTC()
	return nil
}

// Props returns a copy; mutating it never affects m.
func (m *Movie) Props() Props {
	var year *int32
	if m.releaseYear != nil {
		y := *m.releaseYear
		year = &y
	}
	return Props{
		ID:            m.id,
		Title:         m.title,
		Genre:         slices.Clone(m.genre),
		ReleaseYear:   year,
		Director:      m.director,
		Cast:          slices.Clone(m.cast),
		Synopsis:      m.synopsis,
		PosterURL:     m.posterURL,
		AverageRating: m.averageRating,
		CreatedAt:     m.createdAt,
		UpdatedAt:     m.updatedAt,
	}
}

func (m *Movie) ID() uuid.UUID          { return m.id }
func (m *Movie) Title() string          { return m.title }
func (m *Movie) Genre() []string        { return m.genre }
func (m *Movie) ReleaseYear() *int32    { return m.releaseYear }
func (m *Movie) Director() string       { return m.director }
func (m *Movie) Cast() []string         { return m.cast }
func (m *Movie) Synopsis() string       { return m.synopsis }
func (m *Movie) PosterURL() string      { return m.posterURL }
func (m *Movie) AverageRating() float64 { return m.averageRating }
func (m *Movie) CreatedAt() time.Time   { return m.createdAt }
func (m *Movie) UpdatedAt() time.Time   { return m.updatedAt }

// normalize trims entries and drops blanks; the result is never nil.
func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
