// Package pgerrors classifies PostgreSQL driver errors so repository
// adapters can translate them into the platform error taxonomy.
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

// IsForeignKeyViolation reports whether err is a PostgreSQL referential
// integrity rejection.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// rejection.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
