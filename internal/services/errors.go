// Package services defines the business logic for the medical-records API.
// This file centralizes the translation of raw database errors into typed
// application errors so that driver-specific error shapes never leave the
// service boundary.
package services

import (
	"errors"
	"net/http"

	"github.com/medrec/go-medrec-backend/internal/apperr"
	"github.com/medrec/go-medrec-backend/internal/repo"
)

// translate converts err into an *apperr.Error tagged with the entity name.
//
// An error that already is an *apperr.Error passes through unchanged — the
// translation is idempotent and never double-wraps. Otherwise the repo
// classifier decides:
//   - unique violation      -> 409 "<entity> already exists"
//   - foreign-key violation -> 400 "referenced entity invalid or not found"
//   - record not found      -> 404 "<entity> not found"
//   - anything else         -> non-operational 500; the raw error is kept as
//     cause for server-side logs and never reaches clients in production.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	switch repo.Classify(err) {
	case repo.ViolationUnique:
		return apperr.New(entity+" already exists", http.StatusConflict).WithCause(err)
	case repo.ViolationForeignKey:
		return apperr.New("referenced entity invalid or not found", http.StatusBadRequest).WithCause(err)
	case repo.ViolationNotFound:
		return apperr.New(entity+" not found", http.StatusNotFound)
	default:
		return apperr.Internal("operation failed", err)
	}
}

// requireID rejects non-positive identifiers before they hit the database.
func requireID(id int, entity string) error {
	if id <= 0 {
		return apperr.New("invalid "+entity+" id", http.StatusBadRequest)
	}
	return nil
}
