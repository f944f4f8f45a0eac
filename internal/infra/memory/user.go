package memory

import (
	"context"
	"slices"

	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/infra"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
)

type userRepo struct {
	tx *memTx
}

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	p := u.Props()
	if _, ok := r.tx.state.users[p.ID]; ok {
		return infra.WrapRepoErr("user already exists", nil, infra.KindDuplicateKey)
	}
	if err := r.checkUnique(p); err != nil {
		return err
	}
	r.tx.state.users[p.ID] = p
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	p, ok := r.tx.state.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return user.Reconstruct(p), nil
}

func (r *userRepo) FindByEmail(_ context.Context, email user.Email) (*user.User, error) {
	for _, p := range r.tx.state.users {
		if p.Email == email.Value() {
			return user.Reconstruct(p), nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (r *userRepo) Update(_ context.Context, u *user.User) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	p := u.Props()
	if _, ok := r.tx.state.users[p.ID]; !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	if err := r.checkUnique(p); err != nil {
		return err
	}
	r.tx.state.users[p.ID] = p
	return nil
}

func (r *userRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.state.users[id]; !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	delete(r.tx.state.users, id)
	return nil
}

func (r *userRepo) List(_ context.Context, page shared.Page) ([]*user.User, error) {
	all := make([]user.Props, 0, len(r.tx.state.users))
	for _, p := range r.tx.state.users {
		all = append(all, p)
	}
	slices.SortFunc(all, func(a, b user.Props) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})

	out := make([]*user.User, 0, page.Limit)
	for _, p := range paginate(all, page) {
		out = append(out, user.Reconstruct(p))
	}
	return out, nil
}

func (r *userRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.tx.state.users)), nil
}

func (r *userRepo) checkUnique(p user.Props) error {
	for id, other := range r.tx.state.users {
		if id == p.ID {
			continue
		}
		if other.Email == p.Email || other.Username == p.Username {
			return infra.WrapRepoErr("user already exists", nil, infra.KindDuplicateKey)
		}
	}
	return nil
}

func paginate[T any](items []T, page shared.Page) []T {
	if page.Offset >= len(items) {
		return nil
	}
	end := len(items)
	if page.Limit > 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	return items[page.Offset:end]
}
