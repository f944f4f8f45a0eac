package repository

import (
	"context"

	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/infra"
	"gin-jobqueue/internal/pkg/pgconv"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
)

const userColumns = `id, username, email, password_hash, profile_picture, join_date, role, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	p := u.Props()
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Username, p.Email, p.PasswordHash, p.ProfilePicture, p.JoinDate, string(p.Role), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if constraint, dup := pgconv.IsUniqueViolation(err); dup {
			return infra.WrapRepoErr("user already exists ("+constraint+")", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.Value())
	u, err := scanUser(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	p := u.Props()
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET
			username = $2, email = $3, password_hash = $4, profile_picture = $5,
			join_date = $6, role = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.Username, p.Email, p.PasswordHash, p.ProfilePicture, p.JoinDate, string(p.Role), p.UpdatedAt,
	)
	if err != nil {
		if constraint, dup := pgconv.IsUniqueViolation(err); dup {
			return infra.WrapRepoErr("user already exists ("+constraint+")", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, page shared.Page) ([]*user.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0, page.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate users", err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count users", err)
	}
	return n, nil
}

func scanUser(row rowScanner) (*user.User, error) {
	var (
		p    user.Props
		role string
	)
	if err := row.Scan(
		&p.ID, &p.Username, &p.Email, &p.PasswordHash, &p.ProfilePicture,
		&p.JoinDate, &role, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Role = user.Role(role)
	p.JoinDate = p.JoinDate.UTC()
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return user.Reconstruct(p), nil
}
