// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file decodes raw driver errors into a small set of
// constraint-violation variants so upper layers never pattern-match on
// driver-specific strings or codes at each call site.
package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// Violation is the decoded kind of a database error. Services translate
// each variant into the matching application error exactly once.
type Violation int

const (
	// ViolationOther covers everything not decoded below: connectivity,
	// syntax, defects. Treated as an internal error by callers.
	ViolationOther Violation = iota
	// ViolationUnique is a duplicate value in a column declared unique.
	ViolationUnique
	// ViolationForeignKey is a reference to a non-existent related row.
	ViolationForeignKey
	// ViolationNotFound is a missing record (e.g. concurrent delete).
	ViolationNotFound
)

// Classify inspects err once and returns its Violation variant.
//
// Detection covers the GORM sentinels plus the message shapes of the SQLite
// and Postgres drivers, mirroring how constraint failures actually surface
// from gorm at runtime.
func Classify(err error) Violation {
	if err == nil {
		return ViolationOther
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ViolationNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ViolationUnique
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ViolationForeignKey
	}
	msg := strings.ToLower(err.Error())
	switch {
	// SQLite: "UNIQUE constraint failed: persons.dni"
	// Postgres: "duplicate key value violates unique constraint ..."
	case strings.Contains(msg, "unique constraint"), strings.Contains(msg, "duplicate key"):
		return ViolationUnique
	// SQLite: "FOREIGN KEY constraint failed"
	// Postgres: "violates foreign key constraint ..."
	case strings.Contains(msg, "foreign key constraint"):
		return ViolationForeignKey
	default:
		return ViolationOther
	}
}
