// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard success envelope and the helpers shared by
// all endpoints. Error responses are not written here: handlers attach errors
// to the Gin context and the terminal formatter middleware shapes the body,
// so the two envelopes stay consistent no matter where a failure originates.
//
// Example success response:
//
//	HTTP/1.1 200 OK
//	{
//	  "success": true,
//	  "message": "patients retrieved",
//	  "data": [ ... ],
//	  "count": 2
//	}
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medrec/go-medrec-backend/internal/apperr"
)

// Response is the standard success envelope returned by all endpoints.
//
// Data carries the resource or collection; Count is set for collections;
// Pagination is set for paged listings. This struct is referenced by the
// Swagger annotations on each handler.
type Response struct {
	Success    bool        `json:"success" example:"true"`
	Message    string      `json:"message" example:"patient retrieved"`
	Data       any         `json:"data,omitempty"`
	Count      *int        `json:"count,omitempty" example:"2"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorResponse documents the error envelope written by the response
// formatter middleware. Declared here so Swagger can reference it.
type ErrorResponse struct {
	Success bool                `json:"success" example:"false"`
	Status  string              `json:"status" example:"fail"`
	Message string              `json:"message" example:"patient not found"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

// Pagination carries pagination metadata for paged list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ok writes a success envelope with the given status, message, and payload.
func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// okList writes a success envelope for a collection, including its count.
func okList(c *gin.Context, message string, data any, count int) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data, Count: &count})
}

// okPage writes a success envelope for a paged collection.
func okPage(c *gin.Context, message string, data any, p Pagination) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data, Pagination: &p})
}

// pathID parses the named path parameter as a positive integer ID. On
// failure it attaches a 400 and reports false; the caller should return
// immediately.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.Error(apperr.New(name+" must be a positive integer", http.StatusBadRequest))
		return 0, false
	}
	return id, true
}
