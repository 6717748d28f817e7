// Person HTTP handlers.
//
//   - POST   /persons
//   - GET    /persons
//   - GET    /persons/search?query=
//   - GET    /persons/{id}
//   - PATCH  /persons/{id}
//   - DELETE /persons/{id}
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/go-medrec-backend/internal/repo"
	"github.com/medrec/go-medrec-backend/internal/services"
)

// CreatePerson godoc
// @ID          createPerson
// @Summary     Register a person
// @Tags        Persons
// @Accept      json
// @Produce     json
// @Param       body  body  services.CreatePersonInput  true  "Person payload"
// @Success     201  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse  "DNI already registered"
// @Router      /persons [post]
func (h *Handlers) CreatePerson(c *gin.Context) {
	var in services.CreatePersonInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.persons.Create(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusCreated, "person created", p)
}

// ListPersons godoc
// @ID          listPersons
// @Summary     List persons
// @Description Returns all persons. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Persons
// @Produce     json
// @Security    BearerAuth
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"  example(W/\"abc123\")
// @Success     200  {object}  handlers.Response
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Router      /persons [get]
func (h *Handlers) ListPersons(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if svc, okSvc := h.persons.(*services.PersonService); okSvc {
		count, maxTS, err := repo.PersonsStats(ctx, svc.DB)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"persons:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	out, err := h.persons.List(ctx)
	if err != nil {
		c.Error(err)
		return
	}
	okList(c, "persons retrieved", out, len(out))
}

// SearchPersons godoc
// @ID          searchPersons
// @Summary     Search persons
// @Description Matches the term against first name, last name, DNI, and email.
// @Tags        Persons
// @Produce     json
// @Security    BearerAuth
// @Param       query  query  string  true  "Search term"
// @Success     200  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Empty term"
// @Router      /persons/search [get]
func (h *Handlers) SearchPersons(c *gin.Context) {
	out, err := h.persons.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		c.Error(err)
		return
	}
	okList(c, "persons retrieved", out, len(out))
}

// GetPerson godoc
// @ID          getPerson
// @Summary     Get one person
// @Tags        Persons
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Person ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /persons/{id} [get]
func (h *Handlers) GetPerson(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p, err := h.persons.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "person retrieved", p)
}

// UpdatePerson godoc
// @ID          updatePerson
// @Summary     Update a person
// @Tags        Persons
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                         true  "Person ID"
// @Param       body  body  services.UpdatePersonInput  true  "Fields to change"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /persons/{id} [patch]
func (h *Handlers) UpdatePerson(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in services.UpdatePersonInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.persons.Update(c.Request.Context(), id, in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "person updated", p)
}

// DeletePerson godoc
// @ID          deletePerson
// @Summary     Delete a person
// @Description Persons referenced by users, patients, or doctors cannot be removed.
// @Tags        Persons
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Person ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse  "Person has dependents"
// @Router      /persons/{id} [delete]
func (h *Handlers) DeletePerson(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.persons.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "person deleted", nil)
}
