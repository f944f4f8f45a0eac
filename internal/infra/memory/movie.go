package memory

import (
	"context"
	"slices"
	"strings"

	"gin-jobqueue/internal/domain/movie"
	"gin-jobqueue/internal/infra"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
)

type movieRepo struct {
	tx *memTx
}

func (r *movieRepo) Create(_ context.Context, m *movie.Movie) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	p := m.Props()
	if _, ok := r.tx.state.movies[p.ID]; ok {
		return infra.WrapRepoErr("movie already exists", nil, infra.KindDuplicateKey)
	}
	r.tx.state.movies[p.ID] = p
	return nil
}

func (r *movieRepo) FindByID(_ context.Context, id uuid.UUID) (*movie.Movie, error) {
	p, ok := r.tx.state.movies[id]
	if !ok {
		return nil, infra.WrapRepoErr("movie not found", nil, infra.KindNotFound)
	}
	return movie.Reconstruct(p), nil
}

func (r *movieRepo) Update(_ context.Context, m *movie.Movie) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	p := m.Props()
	if _, ok := r.tx.state.movies[p.ID]; !ok {
		return infra.WrapRepoErr("movie not found", nil, infra.KindNotFound)
	}
	r.tx.state.movies[p.ID] = p
	return nil
}

func (r *movieRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.state.movies[id]; !ok {
		return infra.WrapRepoErr("movie not found", nil, infra.KindNotFound)
	}
	delete(r.tx.state.movies, id)
	return nil
}

func (r *movieRepo) List(_ context.Context, filter shared.MovieFilter, page shared.Page) ([]*movie.Movie, error) {
	genre := strings.TrimSpace(filter.Genre)
	matched := make([]movie.Props, 0, len(r.tx.state.movies))
	for _, p := range r.tx.state.movies {
		if genre != "" && !slices.Contains(p.Genre, genre) {
			continue
		}
		if filter.Year != nil && (p.ReleaseYear == nil || *p.ReleaseYear != *filter.Year) {
			continue
		}
		matched = append(matched, p)
	}
	slices.SortFunc(matched, func(a, b movie.Props) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})

	out := make([]*movie.Movie, 0, page.Limit)
	for _, p := range paginate(matched, page) {
		out = append(out, movie.Reconstruct(p))
	}
	return out, nil
}

func (r *movieRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.tx.state.movies)), nil
}
