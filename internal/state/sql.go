package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers driver "pgx"
	"golang.org/x/text/language"
	_ "modernc.org/sqlite" // registers driver "sqlite"

	"github.com/leapstack-labs/contacts/pkg/core"
)

const contactColumns = `id, first_name, last_name, favorite, twitter, avatar, notes, created_at`

// SQLStore implements core.ContactStore on database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	tag     language.Tag
	logger  *slog.Logger
	now     func() time.Time
}

// OpenSQL connects to dsn, verifies the connection and migrates the schema.
// For SQLite use a file path or ":memory:".
func OpenSQL(ctx context.Context, d Dialect, dsn string, logger *slog.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("opening contact database", "dialect", d.String())

	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d, err)
	}
	if d == SQLite {
		// In-memory databases live per connection and SQLite serializes
		// writers anyway.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", d, err)
	}

	if err := Migrate(db, d); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewSQLStore(db, d, logger), nil
}

// NewSQLStore wraps an already migrated database.
func NewSQLStore(db *sql.DB, d Dialect, logger *slog.Logger) *SQLStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLStore{db: db, dialect: d, tag: language.English, logger: logger, now: time.Now}
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.logger.Debug("closing contact database")
	return s.db.Close()
}

// ListContacts returns contacts whose first or last name contains the term,
// ordered by last name then creation time. Rows are filtered and ordered in
// Go with the same collation as MemoryStore: SQLite's lower() and default
// ordering only understand ASCII.
func (s *SQLStore) ListContacts(ctx context.Context, term core.SearchTerm) ([]core.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts ORDER BY created_at, id`)
	if err != nil {
		return nil, core.Unavailable("list contacts", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []ranked
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, core.Unavailable("list contacts", err)
		}
		entries = append(entries, ranked{contact: c, seq: uint64(len(entries))})
	}
	if err := rows.Err(); err != nil {
		return nil, core.Unavailable("list contacts", err)
	}
	return arrange(s.tag, term, entries), nil
}

// CreateContact inserts an empty contact with a fresh id.
func (s *SQLStore) CreateContact(ctx context.Context) (core.Contact, error) {
	c := core.Contact{ID: uuid.NewString(), CreatedAt: s.now().UTC()}

	_, err := s.db.ExecContext(ctx,
		s.dialect.rebind(`INSERT INTO contacts (`+contactColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		c.ID, c.First, c.Last, c.Favorite, c.Twitter, c.Avatar, c.Notes, c.CreatedAt.UnixNano(),
	)
	if err != nil {
		return core.Contact{}, core.Unavailable("create contact", err)
	}
	return c, nil
}

// GetContact retrieves a contact by id.
func (s *SQLStore) GetContact(ctx context.Context, id string) (core.Contact, error) {
	row := s.db.QueryRowContext(ctx,
		s.dialect.rebind(`SELECT `+contactColumns+` FROM contacts WHERE id = ?`), id)

	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Contact{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	if err != nil {
		return core.Contact{}, core.Unavailable("get contact", err)
	}
	return c, nil
}

// UpdateContact applies upd to the stored contact.
func (s *SQLStore) UpdateContact(ctx context.Context, id string, upd core.ContactUpdate) (core.Contact, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Contact{}, core.Unavailable("update contact", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		s.dialect.rebind(`SELECT `+contactColumns+` FROM contacts WHERE id = ?`), id)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Contact{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	if err != nil {
		return core.Contact{}, core.Unavailable("update contact", err)
	}

	c = upd.Apply(c)
	_, err = tx.ExecContext(ctx,
		s.dialect.rebind(`UPDATE contacts SET first_name = ?, last_name = ?, favorite = ?, twitter = ?, avatar = ?, notes = ? WHERE id = ?`),
		c.First, c.Last, c.Favorite, c.Twitter, c.Avatar, c.Notes, c.ID,
	)
	if err != nil {
		return core.Contact{}, core.Unavailable("update contact", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Contact{}, core.Unavailable("update contact", err)
	}
	return c, nil
}

// DeleteContact removes a contact.
func (s *SQLStore) DeleteContact(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`DELETE FROM contacts WHERE id = ?`), id)
	if err != nil {
		return core.Unavailable("delete contact", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Unavailable("delete contact", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(r rowScanner) (core.Contact, error) {
	var (
		c       core.Contact
		created int64
	)
	if err := r.Scan(&c.ID, &c.First, &c.Last, &c.Favorite, &c.Twitter, &c.Avatar, &c.Notes, &created); err != nil {
		return core.Contact{}, err
	}
	c.CreatedAt = time.Unix(0, created).UTC()
	return c, nil
}
