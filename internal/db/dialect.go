package db

import (
	"fmt"
	"strconv"
	"strings"
)

type PlaceholderStyle int

const (
	// PlaceholderQuestion is the positional "?" style used by SQLite, MySQL and the mssql driver.
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar is the "$1, $2, ..." style used by Postgres.
	PlaceholderDollar
)

// Dialect ties a DB_DRIVER value to the database/sql driver that serves it.
type Dialect struct {
	Name        string
	DriverName  string
	Placeholder PlaceholderStyle
}

var dialects = map[string]Dialect{
	"sqlite3":  {Name: "sqlite3", DriverName: "sqlite3", Placeholder: PlaceholderQuestion},
	"sqlite":   {Name: "sqlite", DriverName: "sqlite", Placeholder: PlaceholderQuestion},
	"postgres": {Name: "postgres", DriverName: "pgx", Placeholder: PlaceholderDollar},
	"mysql":    {Name: "mysql", DriverName: "mysql", Placeholder: PlaceholderQuestion},
	"mssql":    {Name: "mssql", DriverName: "mssql", Placeholder: PlaceholderQuestion},
}

func DialectFor(name string) (Dialect, error) {
	d, ok := dialects[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Dialect{}, fmt.Errorf("unsupported DB_DRIVER %q (allowed: sqlite3, sqlite, postgres, mysql, mssql)", name)
	}
	return d, nil
}

func (d Dialect) IsSQLite() bool {
	return d.Name == "sqlite3" || d.Name == "sqlite"
}

// Rebind rewrites "?" placeholders into the dialect's style. Question marks
// inside single-quoted literals are left untouched.
func (d Dialect) Rebind(query string) string {
	if d.Placeholder == PlaceholderQuestion {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
