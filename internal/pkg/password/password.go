package password

import (
	"gin-jobqueue/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by Verify when the plain text does not match the hash.
var ErrMismatch = errs.Mark(errs.New("password does not match"), errs.ErrUnauthorized)

// Cost is the bcrypt work factor. Tests lower it to bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

// Hash returns the bcrypt hash stored in user_insert / user_update payloads.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", errs.Mark(errs.New("password is empty"), errs.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", errs.Wrap(err, "bcrypt hash")
	}
	return string(hashed), nil
}

func Verify(hash, plain string) error {
	if hash == "" || plain == "" {
		return ErrMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errs.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return errs.Wrap(err, "bcrypt compare")
	}
}
