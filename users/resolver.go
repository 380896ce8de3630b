package users

import (
	"context"
	"strings"
	"time"

	"github.com/golang/glog"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/pkg/errors"
)

const (
	// DefaultPassword is given to users created on first reference
	DefaultPassword = "password"
	// DefaultRole is the role given to users created on first reference
	DefaultRole = RoleEntry
)

// Cache memoizes resolved users by name. A Cache belongs to a single
// parse and is not safe for concurrent use.
type Cache struct {
	byName map[string]*User
}

// NewCache returns an empty Cache.
func NewCache() *Cache { return &Cache{byName: map[string]*User{}} }

// Len returns the number of names resolved so far.
func (c *Cache) Len() int { return len(c.byName) }

// Resolver resolves usernames through Directory, creating missing users.
type Resolver struct {
	Directory Directory
	// Password and Role are used for created users. When empty,
	// DefaultPassword and DefaultRole are used.
	Password string
	Role     Role
	// Sink, if set, receives an activity record for each created user.
	Sink usertypes.ActivitySink
}

// NewResolver returns a Resolver using dir with the default password and
// role.
func NewResolver(dir Directory) *Resolver { return &Resolver{Directory: dir} }

// Resolve returns the user called name, loading it from the directory or
// inserting it on first reference. Results are memoized in cache, which
// must not be nil. A blank name, a nil Resolver or a nil Directory yields
// a nil user and no error.
func (r *Resolver) Resolve(ctx context.Context, cache *Cache, name string) (*User, error) {
	name = strings.TrimSpace(name)
	if r == nil || r.Directory == nil || name == "" {
		return nil, nil
	}
	if u, ok := cache.byName[name]; ok {
		return u, nil
	}
	u, err := r.Directory.LoadByUserName(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "loading user '%s'", name)
	}
	if u == nil {
		if u, err = r.insert(ctx, name); err != nil {
			return nil, err
		}
	}
	cache.byName[name] = u
	return u, nil
}

func (r *Resolver) insert(ctx context.Context, name string) (*User, error) {
	password, role := r.Password, r.Role
	if password == "" {
		password = DefaultPassword
	}
	if role == "" {
		role = DefaultRole
	}
	u, err := r.Directory.InsertUser(ctx, name, password, role)
	if err != nil {
		var perr *PersistenceError
		if !errors.As(err, &perr) {
			err = &PersistenceError{Name: name, Err: err}
		}
		return nil, errors.WithStack(err)
	}
	glog.V(1).Infof("created user %q with role %s", name, role)
	r.notify(ctx, u, role)
	return u, nil
}

func (r *Resolver) notify(ctx context.Context, u *User, role Role) {
	if r.Sink == nil {
		return
	}
	record := usertypes.ActivityRecord{
		ActorID:    u.ID,
		UserID:     u.ID,
		Verb:       "create",
		ObjectType: "user",
		ObjectID:   u.ID.String(),
		Channel:    "record-import",
		Data:       map[string]any{"username": u.Name, "role": string(role)},
		OccurredAt: time.Now(),
	}
	if err := r.Sink.Log(ctx, record); err != nil {
		glog.Warningf("activity sink: user %q: %v", u.Name, err)
	}
}
