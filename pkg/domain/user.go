package domain

import (
	"fmt"
	"net/mail"
	"regexp"
	"time"
	"unicode/utf8"
)

const (
	MaxEmailLength    = 254
	MaxUsernameLength = 150
	MaxNameLength     = 150
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var rxUsername = regexp.MustCompile(`^[\w.@+-]+$`)

// User is an account of a person publishing or reading recipes.
type User struct {
	Id             int
	Email          string
	Username       string
	FirstName      string
	LastName       string
	HashedPassword string

	// Avatar is the media-relative path of the avatar image.
	//
	// Empty when the user has not set one.
	Avatar string

	IsStaff     bool
	IsSuperuser bool
	IsActive    bool
	DateJoined  time.Time
}

func (u *User) Equal(o *User) bool {
	if (u == nil) || (o == nil) {
		return (u == nil) && (o == nil)
	}

	return u.Id == o.Id &&
		u.Email == o.Email &&
		u.Username == o.Username &&
		u.FirstName == o.FirstName &&
		u.LastName == o.LastName &&
		u.HashedPassword == o.HashedPassword &&
		u.Avatar == o.Avatar &&
		u.IsStaff == o.IsStaff &&
		u.IsSuperuser == o.IsSuperuser &&
		u.IsActive == o.IsActive &&
		u.DateJoined.Equal(o.DateJoined)
}

// UserSpec is the intent creating a new User.
type UserSpec struct {
	Email          string
	Username       string
	FirstName      string
	LastName       string
	HashedPassword string
	IsStaff        bool
	IsSuperuser    bool
}

// Profile is a User as seen by another user.
type Profile struct {
	User

	// IsSubscribed is true when the viewing user follows this one.
	IsSubscribed bool
}

// Follow records that user UserId follows user AuthorId.
type Follow struct {
	UserId   int
	AuthorId int
}

// UserFilter narrows user listings.
type UserFilter struct {
	// Search keeps users whose username or email contains this,
	// case-insensitively. Empty does not narrow.
	Search string
}

// Subscription is an author in the subscriptions feed of a user,
// together with (a part of) their recipes.
type Subscription struct {
	Author User

	// Recipes of the author, newest first, possibly truncated.
	Recipes []RecipeBody

	// RecipesCount is the total number of recipes by the author,
	// regardless of the truncation of Recipes.
	RecipesCount int
}

// ValidEmail tells whether email parses as a bare address. Emptiness
// and length are out of its scope.
func ValidEmail(email string) bool {
	a, err := mail.ParseAddress(email)
	return err == nil && a.Address == email
}

// ValidUsername tells whether username matches the permitted pattern.
// Emptiness and length are out of its scope.
func ValidUsername(username string) bool {
	return rxUsername.MatchString(username)
}

func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalid)
	}
	if MaxEmailLength < utf8.RuneCountInString(email) {
		return fmt.Errorf(
			"%w: email is longer than %d characters", ErrInvalid, MaxEmailLength,
		)
	}
	if !ValidEmail(email) {
		return fmt.Errorf("%w: malformed email address", ErrInvalid)
	}
	return nil
}

func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalid)
	}
	if MaxUsernameLength < utf8.RuneCountInString(username) {
		return fmt.Errorf(
			"%w: username is longer than %d characters", ErrInvalid, MaxUsernameLength,
		)
	}
	if !ValidUsername(username) {
		return fmt.Errorf(
			"%w: username may contain only letters, digits and @/./+/-/_",
			ErrInvalid,
		)
	}
	return nil
}

// ValidateName checks a first or last name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if MaxNameLength < utf8.RuneCountInString(name) {
		return fmt.Errorf(
			"%w: name is longer than %d characters", ErrInvalid, MaxNameLength,
		)
	}
	return nil
}

// ValidatePassword checks a raw (not hashed) password.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf(
			"%w: password is shorter than %d characters", ErrInvalid, MinPasswordLength,
		)
	}
	if MaxPasswordLength < utf8.RuneCountInString(password) {
		return fmt.Errorf(
			"%w: password is longer than %d characters", ErrInvalid, MaxPasswordLength,
		)
	}
	return nil
}

// Validate checks the fields of a new user.
//
// The password is validated separately, before hashing.
func (s UserSpec) Validate() error {
	if err := ValidateEmail(s.Email); err != nil {
		return err
	}
	if err := ValidateUsername(s.Username); err != nil {
		return err
	}
	if err := ValidateName(s.FirstName); err != nil {
		return err
	}
	if err := ValidateName(s.LastName); err != nil {
		return err
	}
	return nil
}
