package users

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryDirectory is a Directory held in memory, safe for concurrent use.
// Passwords are not retained.
type MemoryDirectory struct {
	mu     sync.RWMutex
	byName map[string]*User
}

var _ Directory = (*MemoryDirectory)(nil)

// NewMemoryDirectory returns a directory containing users.
func NewMemoryDirectory(users ...*User) *MemoryDirectory {
	d := &MemoryDirectory{byName: map[string]*User{}}
	for _, u := range users {
		d.byName[u.Name] = u
	}
	return d
}

func (d *MemoryDirectory) LoadByUserName(_ context.Context, name string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byName[name], nil
}

func (d *MemoryDirectory) InsertUser(_ context.Context, name, _ string, role Role) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byName[name]; exists {
		return nil, &PersistenceError{Name: name, Err: errDuplicate}
	}
	u := &User{ID: uuid.New(), Name: name, Enabled: true, Roles: []Role{role}}
	d.byName[name] = u
	return u, nil
}

// Len returns the number of users in the directory.
func (d *MemoryDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byName)
}
