package repository

import (
	"context"
	"fmt"
	"strings"

	"gin-jobqueue/internal/domain/movie"
	"gin-jobqueue/internal/infra"
	"gin-jobqueue/internal/pkg/pgconv"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const movieColumns = `id, title, genre, release_year, director, cast_members, synopsis, poster_url, average_rating, created_at, updated_at`

type MovieRepository struct {
	db DBTX
}

func NewMovieRepository(db DBTX) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Create(ctx context.Context, m *movie.Movie) error {
	p := m.Props()
	_, err := r.db.Exec(ctx, `
		INSERT INTO movies (`+movieColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Title, p.Genre, pgconv.Int32PtrToPgtype(p.ReleaseYear), p.Director, p.Cast,
		p.Synopsis, p.PosterURL, p.AverageRating, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if _, dup := pgconv.IsUniqueViolation(err); dup {
			return infra.WrapRepoErr("movie already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create movie", err)
	}
	return nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id uuid.UUID) (*movie.Movie, error) {
	row := r.db.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id)
	m, err := scanMovie(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("movie not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find movie by ID", err)
	}
	return m, nil
}

func (r *MovieRepository) Update(ctx context.Context, m *movie.Movie) error {
	p := m.Props()
	tag, err := r.db.Exec(ctx, `
		UPDATE movies SET
			title = $2, genre = $3, release_year = $4, director = $5, cast_members = $6,
			synopsis = $7, poster_url = $8, average_rating = $9, updated_at = $10
		WHERE id = $1`,
		p.ID, p.Title, p.Genre, pgconv.Int32PtrToPgtype(p.ReleaseYear), p.Director, p.Cast,
		p.Synopsis, p.PosterURL, p.AverageRating, p.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update movie", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("movie not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete movie", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("movie not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *MovieRepository) List(ctx context.Context, filter shared.MovieFilter, page shared.Page) ([]*movie.Movie, error) {
	var (
		where []string
		args  []any
	)
	if g := strings.TrimSpace(filter.Genre); g != "" {
		args = append(args, g)
		where = append(where, fmt.Sprintf("$%d = ANY(genre)", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		where = append(where, fmt.Sprintf("release_year = $%d", len(args)))
	}

	query := `SELECT ` + movieColumns + ` FROM movies`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, page.Limit, page.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list movies", err)
	}
	defer rows.Close()

	movies := make([]*movie.Movie, 0, page.Limit)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan movie", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate movies", err)
	}
	return movies, nil
}

func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count movies", err)
	}
	return n, nil
}

func scanMovie(row rowScanner) (*movie.Movie, error) {
	var (
		p           movie.Props
		releaseYear pgtype.Int4
	)
	if err := row.Scan(
		&p.ID, &p.Title, &p.Genre, &releaseYear, &p.Director, &p.Cast,
		&p.Synopsis, &p.PosterURL, &p.AverageRating, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.ReleaseYear = pgconv.Int32PtrFromPgtype(releaseYear)
	if p.Genre == nil {
		p.Genre = []string{}
	}
	if p.Cast == nil {
		p.Cast = []string{}
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return movie.Reconstruct(p), nil
}
