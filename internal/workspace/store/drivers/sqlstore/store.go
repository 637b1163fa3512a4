// Package sqlstore implements store.Store over database/sql. The sqlite and
// postgres drivers share these repositories and differ only in their Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/hypolab/workspace/internal/workspace/store"
)

// Dialect captures what differs between database engines.
type Dialect struct {
	Name string

	// Numbered switches ? placeholders to $1, $2, ...
	Numbered bool

	// RowLocks appends FOR UPDATE to locking reads. SQLite has no row locks
	// and serializes writers instead.
	RowLocks bool

	// IsUniqueViolation recognises the driver's unique constraint error.
	IsUniqueViolation func(error) bool

	// Migrate brings the schema up to date.
	Migrate func(db *sql.DB) error
}

func (d *Dialect) rebind(query string) string {
	if !d.Numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// dbtx is the subset of *sql.DB and *sql.Tx the repositories need.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn binds a dbtx to a dialect.
type conn struct {
	db dbtx
	d  *Dialect
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := c.db.ExecContext(ctx, c.d.rebind(query), args...)
	return res, c.mapErr(err)
}

func (c conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, c.d.rebind(query), args...)
}

func (c conn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.db.QueryRowContext(ctx, c.d.rebind(query), args...)
}

func (c conn) mapErr(err error) error {
	if err != nil && c.d.IsUniqueViolation != nil && c.d.IsUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

type Store struct {
	db *sql.DB
	d  *Dialect
}

// New wraps an open database. The Store owns db and closes it on Close.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: &d}
}

// DB exposes the underlying handle for driver specific setup.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) ApplyMigrations() error {
	if s.d.Migrate == nil {
		return errors.New("sqlstore: dialect has no migrations")
	}
	return s.d.Migrate(s.db)
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, c: conn{db: tx, d: s.d}}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// No-op after a successful commit
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) conn() conn { return conn{db: s.db, d: s.d} }

func (s *Store) Users() store.Users             { return &usersRepo{c: s.conn()} }
func (s *Store) Workspaces() store.Workspaces   { return &workspacesRepo{c: s.conn()} }
func (s *Store) Memberships() store.Memberships { return &membershipsRepo{c: s.conn()} }
func (s *Store) Invitations() store.Invitations { return &invitationsRepo{c: s.conn()} }

type txStore struct {
	tx *sql.Tx
	c  conn
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the owning Store keeps the database open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users             { return &usersRepo{c: t.c} }
func (t *txStore) Workspaces() store.Workspaces   { return &workspacesRepo{c: t.c} }
func (t *txStore) Memberships() store.Memberships { return &membershipsRepo{c: t.c} }
func (t *txStore) Invitations() store.Invitations { return &invitationsRepo{c: t.c} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
