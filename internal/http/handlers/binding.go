// Package handlers provides HTTP handler implementations for the public API.
//
// This file wires go-playground/validator into the request-binding path.
// All JSON payloads go through bindJSON, which converts validator failures
// into field-level errors carried on the 400 envelope, keyed by the JSON
// field name the client actually sent.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/medrec/go-medrec-backend/internal/apperr"
)

func init() {
	// Report validation failures under the json tag name, not the Go field.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	}
}

// bindJSON binds and validates the request body into dst. On failure it
// attaches a 400 (with field errors for validation failures) and reports
// false; the caller should return immediately.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	attachBindError(c, err)
	return false
}

// attachBindError converts a binding failure into the 400 the formatter
// middleware will render: field errors for validation failures, a plain
// bad-request otherwise.
func attachBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperr.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperr.FieldError{
				Path:    fieldPath(fe),
				Message: fieldMessage(fe),
			})
		}
		c.Error(apperr.NewValidation("invalid request body", fields))
		return
	}
	c.Error(apperr.New("invalid JSON body", http.StatusBadRequest))
}

// fieldPath strips the top-level struct name from the validator namespace,
// leaving the JSON path ("person.dni" rather than "RegisterUserInput.person.dni").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// fieldMessage renders a short, client-facing message for the failed rule.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation rule %q", fe.Tag())
	}
}
