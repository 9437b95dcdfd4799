package state

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects the SQL flavor of a SQLStore.
type Dialect int

const (
	// SQLite uses modernc.org/sqlite, registered as driver "sqlite".
	SQLite Dialect = iota
	// Postgres uses pgx through its database/sql driver "pgx".
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

func (d Dialect) driverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

func (d Dialect) gooseName() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

// ParseDialect maps a configured backend name to a dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	default:
		return SQLite, fmt.Errorf("unknown sql dialect: %q", name)
	}
}

// rebind rewrites `?` placeholders into the dialect's form.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
