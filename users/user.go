package users

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Role is a user role.
type Role string

const (
	RoleView      Role = "VIEW"
	RoleEntry     Role = "ENTRY"
	RoleCleansing Role = "CLEANSING"
	RoleAnalysis  Role = "ANALYSIS"
	RoleAdmin     Role = "ADMIN"
)

var roles = []Role{RoleView, RoleEntry, RoleCleansing, RoleAnalysis, RoleAdmin}

func (r Role) String() string { return string(r) }

func (r Role) MarshalText() ([]byte, error) { return []byte(r), nil }

func (r *Role) UnmarshalText(b []byte) error {
	b = bytes.ToUpper(bytes.TrimSpace(b))
	for _, known := range roles {
		if string(b) == string(known) {
			*r = known
			return nil
		}
	}
	return errors.New("unknown role")
}

// User is a directory user.
type User struct {
	ID      uuid.UUID
	Name    string
	Enabled bool
	Roles   []Role
}

// HasRole returns true if u holds role r.
func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// Directory is the user persistence interface.
type Directory interface {
	// LoadByUserName returns the user called name, or nil if there is
	// none. An error is returned only if the lookup itself failed.
	LoadByUserName(ctx context.Context, name string) (*User, error)
	// InsertUser creates an enabled user holding role. Implementations
	// return a *PersistenceError if the user could not be stored.
	InsertUser(ctx context.Context, name, password string, role Role) (*User, error)
}

var errDuplicate = errors.New("username already exists")

// PersistenceError reports a failure to store a user.
type PersistenceError struct {
	Name string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("error creating new user with username '%s': %v", e.Name, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
