package jwt

import (
	"time"

	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/pkg/clock"
	"gin-jobqueue/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errs.Mark(errs.New("invalid token"), errs.ErrUnauthorized)
	ErrExpiredToken = errs.Mark(errs.New("token expired"), errs.ErrUnauthorized)
)

const issuer = "gin-jobqueue"

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// Expiry is the zero time for tokens without an exp claim.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

type Service struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

type Option func(*Service)

// WithClock replaces the wall clock used for iat/exp and for validation.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func NewService(secret string, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TokenDuration doubles as the access_token cookie max-age.
func (s *Service) TokenDuration() time.Duration {
	return s.ttl
}

func (s *Service) GenerateToken(userID uuid.UUID, role user.Role) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		UserID: userID,
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errs.Wrap(err, "sign access token")
	}
	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	switch {
	case err == nil:
	case errs.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	default:
		return nil, ErrInvalidToken
	}

	if claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
