// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the terminal error formatter. Handlers and guards
// never write error bodies themselves; they attach errors to the Gin context
// (c.Error) and abort. ErrorHandler runs after the chain unwinds, normalizes
// whatever was attached into an application error, and writes exactly one
// JSON response.
//
// The body shape is fixed per environment at construction time:
//   - development: full detail — error metadata and a stack snippet — so the
//     failure is debuggable straight from the response.
//   - production: message only for operational errors; a generic body for
//     everything else, with the real error going to the log instead.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/medrec/go-medrec-backend/internal/apperr"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Success bool                `json:"success"`
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
	Error   *errorDetail        `json:"error,omitempty"`
	Stack   string              `json:"stack,omitempty"`
}

// errorDetail is the development-only error metadata block.
type errorDetail struct {
	Name          string `json:"name"`
	IsOperational bool   `json:"isOperational"`
	StatusCode    int    `json:"statusCode"`
}

// ErrorHandler returns the terminal response formatter. dev selects the
// development body shape; it is fixed for the process lifetime.
func ErrorHandler(dev bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// the last attached error wins; earlier ones are context
		ae := apperr.From(c.Errors.Last().Err)

		lg := LoggerFrom(c)
		if ae.IsOperational {
			lg.Warn().Int("status", ae.StatusCode).Str("message", ae.Message).Msg("request failed")
		} else {
			lg.Error().Int("status", ae.StatusCode).Err(ae.Unwrap()).Str("message", ae.Message).Msg("request error")
		}

		body := errorBody{
			Success: false,
			Status:  ae.Status,
			Message: ae.Message,
			Errors:  ae.FieldErrors,
		}
		if dev {
			body.Error = &errorDetail{
				Name:          "AppError",
				IsOperational: ae.IsOperational,
				StatusCode:    ae.StatusCode,
			}
			body.Stack = string(debug.Stack())
		} else if !ae.IsOperational {
			// never leak defect detail to clients
			body.Message = "something went wrong"
			body.Errors = nil
		}

		c.JSON(statusOf(ae), body)
	}
}

// statusOf guards against malformed status codes sneaking into a response.
func statusOf(ae *apperr.Error) int {
	if ae.StatusCode < 100 || ae.StatusCode > 599 {
		return http.StatusInternalServerError
	}
	return ae.StatusCode
}
