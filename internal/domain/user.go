package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole distinguishes parent accounts from child accounts.
type UserRole string

// Possible user roles.
const (
	RoleParent UserRole = "parent"
	RoleChild  UserRole = "child"
)

// Common validation errors for User.
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyDisplayName    = errors.New("display name cannot be empty")
	ErrDisplayNameTooLong  = errors.New("display name must be at most 60 characters")
	ErrInvalidUserRole     = errors.New("invalid user role")
	ErrInvalidBirthYear    = errors.New("invalid birth year")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered member of a family: a parent or a child.
// The child's birth year drives the age band used to tune generated content.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration/updates
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	DisplayName    string    `json:"display_name"`
	Role           UserRole  `json:"role"`
	BirthYear      int       `json:"birth_year,omitempty"` // Zero for parents
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given fields. It generates a new UUID
// for the user ID and sets the creation/update timestamps.
//
// NOTE: the caller is responsible for hashing the password before storing
// the user; this function only carries the plaintext through validation.
func NewUser(email, password, displayName string, role UserRole, birthYear int) (*User, error) {
	user := &User{
		ID:          uuid.New(),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Password:    password,
		DisplayName: strings.TrimSpace(displayName),
		Role:        role,
		BirthYear:   birthYear,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.DisplayName == "" {
		return ErrEmptyDisplayName
	}

	if len(u.DisplayName) > 60 {
		return ErrDisplayNameTooLong
	}

	if u.Role != RoleParent && u.Role != RoleChild {
		return ErrInvalidUserRole
	}

	if u.Role == RoleChild {
		year := time.Now().UTC().Year()
		if u.BirthYear < year-17 || u.BirthYear > year {
			return ErrInvalidBirthYear
		}
	}

	if u.Password != "" {
		if len(u.Password) < 12 {
			return ErrPasswordTooShort
		}
		// bcrypt's practical input limit
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// AgeBand returns the content age band for this user. Parents always get
// the adult band; children are banded by their age as of now.
func (u *User) AgeBand() AgeBand {
	if u.Role == RoleParent {
		return AgeBandAdult
	}
	return AgeBandForAge(time.Now().UTC().Year() - u.BirthYear)
}

// validEmailFormat performs basic structural validation of an email address:
// one '@', a non-empty local part, and a domain containing an interior dot.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.Contains(email[at+1:], "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
