package userstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/andaru/collectxml/users"
	"github.com/andaru/collectxml/userstore/migrations"
)

// Store is a SQLite user directory.
type Store struct {
	db *sql.DB
}

var _ users.Directory = (*Store)(nil)

// Open opens (creating if needed) the user database at path. The special
// path ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening user database")
	}
	if path == ":memory:" {
		// each connection to :memory: is a distinct database
		db.SetMaxOpenConns(1)
	}
	s := &Store{db: db}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "running migrations")
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(fsys embed.FS) error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// LoadByUserName implements users.Directory.
func (s *Store) LoadByUserName(ctx context.Context, name string) (*users.User, error) {
	var (
		id      string
		enabled bool
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, enabled FROM users WHERE username = ?", name).Scan(&id, &enabled)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying user")
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.Wrapf(err, "user %q has a malformed id", name)
	}
	u := &users.User{ID: uid, Name: name, Enabled: enabled}

	rows, err := s.db.QueryContext(ctx, "SELECT role FROM user_roles WHERE user_id = ? ORDER BY role", id)
	if err != nil {
		return nil, errors.Wrap(err, "querying user roles")
	}
	defer rows.Close()
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, errors.Wrap(err, "scanning user role")
		}
		u.Roles = append(u.Roles, users.Role(role))
	}
	return u, errors.Wrap(rows.Err(), "reading user roles")
}

// InsertUser implements users.Directory. Failures are reported as
// *users.PersistenceError.
func (s *Store) InsertUser(ctx context.Context, name, password string, role users.Role) (u *users.User, err error) {
	defer func() {
		if err != nil {
			err = &users.PersistenceError{Name: name, Err: err}
		}
	}()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hashing password")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	u = &users.User{ID: uuid.New(), Name: name, Enabled: true, Roles: []users.Role{role}}
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO users (id, username, password_hash, enabled, created_at) VALUES (?, ?, ?, 1, ?)",
		u.ID.String(), name, string(hash), time.Now().UTC()); err != nil {
		return nil, errors.Wrap(err, "inserting user")
	}
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO user_roles (user_id, role) VALUES (?, ?)", u.ID.String(), string(role)); err != nil {
		return nil, errors.Wrap(err, "inserting user role")
	}
	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing user")
	}
	return u, nil
}

// CheckPassword returns true if password matches the stored hash for name.
func (s *Store) CheckPassword(ctx context.Context, name, password string) (bool, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, "SELECT password_hash FROM users WHERE username = ?", name).Scan(&hash)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "querying password")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil, nil
}
