package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	id             uuid.UUID
	username       Username
	email          Email
	passwordHash   string
	profilePicture string
	joinDate       time.Time
	role           Role
	createdAt      time.Time
	updatedAt      time.Time
}

// Props is the flat, exported shape of a User used by payloads and storage.
type Props struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"passwordHash"`
	ProfilePicture string    `json:"profilePicture"`
	JoinDate       time.Time `json:"joinDate"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser validates p and assigns a fresh id. Empty role defaults to user,
// zero joinDate to now.
func NewUser(p Props, now time.Time) (*User, error) {
	u := &User{id: uuid.New(), createdAt: now.UTC()}
	if p.Role == "" {
		p.Role = RoleUser
	}
	if p.JoinDate.IsZero() {
		p.JoinDate = now
	}
	if err := u.assign(p, now); err != nil {
		return nil, err
	}
	return u, nil
}

func Reconstruct(p Props) *User {
	return &User{
		id:             p.ID,
		username:       Username{value: p.Username},
		email:          Email{value: p.Email},
		passwordHash:   p.PasswordHash,
		profilePicture: p.ProfilePicture,
		joinDate:       p.JoinDate,
		role:           p.Role,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
}

// Update replaces every mutable field with the values in p after validation.
// ID and timestamps in p are ignored.
func (u *User) Update(p Props, now time.Time) error {
	next := *u
	if err := next.assign(p, now); err != nil {
		return err
	}
	*u = next
	return nil
}

func (u *User) assign(p Props, now time.Time) error {
	username, err := NewUsername(p.Username)
	if err != nil {
		return err
	}
	email, err := NewEmail(p.Email)
	if err != nil {
		return err
	}
	role, err := NewRole(string(p.Role))
	if err != nil {
		return err
	}
	if strings.TrimSpace(p.PasswordHash) == "" {
		return ErrMissingPasswordHash
	}

	u.username = username
	u.email = email
	u.role = role
	u.passwordHash = p.PasswordHash
	u.profilePicture = strings.TrimSpace(p.ProfilePicture)
	if !p.JoinDate.IsZero() {
		u.joinDate = p.JoinDate.UTC()
	}
	u.updatedAt = now.UTC()
	return nil
}

func (u *User) Props() Props {
	return Props{
		ID:             u.id,
		Username:       u.username.Value(),
		Email:          u.email.Value(),
		PasswordHash:   u.passwordHash,
		ProfilePicture: u.profilePicture,
		JoinDate:       u.joinDate,
		Role:           u.role,
		CreatedAt:      u.createdAt,
		UpdatedAt:      u.updatedAt,
	}
}

func (u *User) ID() uuid.UUID          { return u.id }
func (u *User) Username() Username     { return u.username }
func (u *User) Email() Email           { return u.email }
func (u *User) PasswordHash() string   { return u.passwordHash }
func (u *User) ProfilePicture() string { return u.profilePicture }
func (u *User) JoinDate() time.Time    { return u.joinDate }
func (u *User) Role() Role             { return u.role }
func (u *User) IsAdmin() bool          { return u.role == RoleAdmin }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
func (u *User) UpdatedAt() time.Time   { return u.updatedAt }
