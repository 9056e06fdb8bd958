package postgres

import (
	"fmt"

	"github.com/punchline/punchline-api/internal/core/ports"
)

// The existence checks and the single-row lookups are generic over which
// column they match on. Rather than splicing column names into SQL at call
// sites, every query text lives here, keyed by the enumerated field set.
// User input only ever travels as a bind parameter.

const userColumns = "id, username, email, password_hash, role"

var existsQueries = map[ports.UserField]string{
	ports.UserFieldUsername: `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`,
	ports.UserFieldEmail:    `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
}

var findQueries = map[ports.UserField]string{
	ports.UserFieldUsername: `SELECT ` + userColumns + ` FROM users WHERE username = $1`,
	ports.UserFieldEmail:    `SELECT ` + userColumns + ` FROM users WHERE email = $1`,
}

// existsQuery returns the existence-check text for a known field.
func existsQuery(field ports.UserField) (string, error) {
	q, ok := existsQueries[field]
	if !ok {
		return "", fmt.Errorf("no uniqueness query for field %q", field)
	}
	return q, nil
}

// findQuery returns the single-row lookup text for a known field.
func findQuery(field ports.UserField) (string, error) {
	q, ok := findQueries[field]
	if !ok {
		return "", fmt.Errorf("no lookup query for field %q", field)
	}
	return q, nil
}
