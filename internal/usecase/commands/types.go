package commands

import (
	"encoding/json"

	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/pkg/errs"

	"github.com/google/uuid"
)

// Job priorities for producer endpoints. Higher runs first.
const (
	PriorityUserInsert  = 2
	PriorityMovieInsert = 1
	PriorityDefault     = 0
)

var ErrForbidden = errs.Mark(errs.New("insufficient permissions"), errs.ErrForbidden)

// Actor is the authenticated caller.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

func (a Actor) CanActOn(userID uuid.UUID) bool {
	return a.IsAdmin() || a.ID == userID
}

func encodePayload(v any, jobType string) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errs.Wrapf(err, "failed to encode %s payload", jobType)
	}
	return b, nil
}
