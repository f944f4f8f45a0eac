package request

import (
	"gin-jobqueue/internal/usecase/commands"
	"gin-jobqueue/internal/usecase/queries"
)

type CreateMovieRequest struct {
	Title       string   `json:"title" binding:"required"`
	Genre       []string `json:"genre"`
	ReleaseYear *int32   `json:"releaseYear,omitempty" binding:"omitempty,min=1888"`
	Director    string   `json:"director"`
	Cast        []string `json:"cast"`
	Synopsis    string   `json:"synopsis"`
	PosterURL   string   `json:"posterUrl" binding:"omitempty,url"`
}

func (r CreateMovieRequest) ToInput(idempotencyKey string) commands.CreateMovieInput {
	return commands.CreateMovieInput{
		Title:          r.Title,
		Genre:          r.Genre,
		ReleaseYear:    r.ReleaseYear,
		Director:       r.Director,
		Cast:           r.Cast,
		Synopsis:       r.Synopsis,
		PosterURL:      r.PosterURL,
		IdempotencyKey: idempotencyKey,
	}
}

// UpdateMovieRequest: omitted fields are kept; "genre": [] clears the genre list.
type UpdateMovieRequest struct {
	Title         *string  `json:"title,omitempty" binding:"omitempty,min=1"`
	Genre         []string `json:"genre"`
	ReleaseYear   *int32   `json:"releaseYear,omitempty" binding:"omitempty,min=1888"`
	Director      *string  `json:"director,omitempty"`
	Cast          []string `json:"cast"`
	Synopsis      *string  `json:"synopsis,omitempty"`
	PosterURL     *string  `json:"posterUrl,omitempty" binding:"omitempty,url"`
	AverageRating *float64 `json:"averageRating,omitempty" binding:"omitempty,min=0,max=10"`
}

func (r UpdateMovieRequest) ToInput(idempotencyKey string) commands.UpdateMovieInput {
	return commands.UpdateMovieInput{
		Title:          r.Title,
		Genre:          r.Genre,
		ReleaseYear:    r.ReleaseYear,
		Director:       r.Director,
		Cast:           r.Cast,
		Synopsis:       r.Synopsis,
		PosterURL:      r.PosterURL,
		AverageRating:  r.AverageRating,
		IdempotencyKey: idempotencyKey,
	}
}

type ListMoviesQuery struct {
	Genre string `form:"genre"`
	Year  *int32 `form:"year" binding:"omitempty,min=1888"`
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q ListMoviesQuery) ToRequest() queries.MovieListRequest {
	return queries.MovieListRequest{
		PageRequest: queries.PageRequest{Page: q.Page, Limit: q.Limit},
		Genre:       q.Genre,
		Year:        q.Year,
	}
}
