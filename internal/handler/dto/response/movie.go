package response

import (
	"time"

	"gin-jobqueue/internal/usecase/queries"

	"github.com/google/uuid"
)

type MovieResponse struct {
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

func FromMovieView(v *queries.MovieView) MovieResponse {
	return MovieResponse{
		ID:            v.ID,
		Title:         v.Title,
		Genre:         v.Genre,
		ReleaseYear:   v.ReleaseYear,
		Director:      v.Director,
		Cast:          v.Cast,
		Synopsis:      v.Synopsis,
		PosterURL:     v.PosterURL,
		AverageRating: v.AverageRating,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func FromMovieViews(vs []queries.MovieView) []MovieResponse {
	out := make([]MovieResponse, 0, len(vs))
	for i := range vs {
		out = append(out, FromMovieView(&vs[i]))
	}
	return out
}
