package usecase

//go:generate mockgen -source=token_validator.go -destination=../testutil/mock/usecase/token_validator_mock.go -package=usecasemock

import (
	"time"

	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/pkg/cache"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
	// Forget drops a cached verification so a logged-out token is re-checked.
	Forget(tokenString string)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	cache      *cache.TokenCache
}

// NewTokenValidator: tokenCache may be nil, in which case every call verifies the signature.
func NewTokenValidator(jwtService *jwt.Service, tokenCache *cache.TokenCache) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		cache:      tokenCache,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	if t.cache != nil {
		if id, ok := t.cache.Get(tokenString); ok {
			return id.UserID, user.Role(id.Role), nil
		}
	}

	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, errs.ErrUnauthorized)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, errs.ErrUnauthorized)
	}

	// Entries must not outlive the token itself.
	if t.cache != nil && time.Until(claims.Expiry()) > t.cache.TTL() {
		t.cache.Put(tokenString, cache.Identity{UserID: claims.UserID, Role: role.String()})
	}
	return claims.UserID, role, nil
}

func (t *tokenValidatorImpl) Forget(tokenString string) {
	if t.cache != nil {
		t.cache.Invalidate(tokenString)
	}
}
