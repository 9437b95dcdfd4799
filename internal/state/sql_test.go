package state

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/contacts/internal/testutil"
	"github.com/leapstack-labs/contacts/pkg/core"
)

var columns = []string{"id", "first_name", "last_name", "favorite", "twitter", "avatar", "notes", "created_at"}

func TestSQLStore_FailuresAreBackendUnavailable(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		call      func(s *SQLStore) error
	}{
		{
			name: "list",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM contacts").WillReturnError(errors.New("connection reset"))
			},
			call: func(s *SQLStore) error {
				_, err := s.ListContacts(context.Background(), core.TermOf("a"))
				return err
			},
		},
		{
			name: "list row error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM contacts").WillReturnRows(
					sqlmock.NewRows(columns).
						AddRow("1", "Ada", "", false, "", "", "", int64(1)).
						RowError(0, errors.New("broken pipe")))
			},
			call: func(s *SQLStore) error {
				_, err := s.ListContacts(context.Background(), core.NoTerm())
				return err
			},
		},
		{
			name: "create",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO contacts").WillReturnError(errors.New("disk full"))
			},
			call: func(s *SQLStore) error {
				_, err := s.CreateContact(context.Background())
				return err
			},
		},
		{
			name: "get",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM contacts WHERE id").WillReturnError(errors.New("timeout"))
			},
			call: func(s *SQLStore) error {
				_, err := s.GetContact(context.Background(), "1")
				return err
			},
		},
		{
			name: "delete",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM contacts").WillReturnError(errors.New("timeout"))
			},
			call: func(s *SQLStore) error {
				return s.DeleteContact(context.Background(), "1")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			tt.setupMock(mock)
			s := NewSQLStore(db, SQLite, testutil.NewTestLogger(t))

			err = tt.call(s)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrBackendUnavailable)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLStore_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT .* FROM contacts WHERE id").WithArgs("42").WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectExec("DELETE FROM contacts").WithArgs("42").WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewSQLStore(db, SQLite, nil)

	_, err = s.GetContact(context.Background(), "42")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, core.ErrBackendUnavailable)

	err = s.DeleteContact(context.Background(), "42")
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_ListFiltersRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT .* FROM contacts ORDER BY created_at, id`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("1", "Zoë", "zimmer", false, "", "", "", int64(1)).
			AddRow("2", "Alan", "Turing", true, "", "", "", int64(5)).
			AddRow("3", "Zoe", "Adams", false, "", "", "", int64(7)))

	s := NewSQLStore(db, Postgres, nil)
	got, err := s.ListContacts(context.Background(), core.TermOf("ZOE"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Zoe Adams", "Zoë zimmer"}, names(got))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_PostgresPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT .* FROM contacts WHERE id = \$1`).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("1", "Alan", "Turing", true, "", "", "", int64(5)))

	s := NewSQLStore(db, Postgres, nil)
	got, err := s.GetContact(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing", got.DisplayName())
	assert.True(t, got.Favorite)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"sqlite", SQLite, false},
		{"SQLite3", SQLite, false},
		{"postgres", Postgres, false},
		{"pgx", Postgres, false},
		{"mysql", SQLite, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDialect(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}

	assert.Equal(t, "a = $1 AND b = $2", Postgres.rebind("a = ? AND b = ?"))
	assert.Equal(t, "a = ?", SQLite.rebind("a = ?"))
}
