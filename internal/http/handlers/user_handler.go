// User account HTTP handlers.
//
//   - POST   /users       (register)
//   - GET    /users       (admin)
//   - GET    /users/{id}  (self or admin)
//   - PATCH  /users/{id}  (self or admin)
//   - DELETE /users/{id}  (admin; deactivates)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/go-medrec-backend/internal/services"
)

// RegisterUser godoc
// @ID          registerUser
// @Summary     Register a user account
// @Description Creates an account; an existing person with the same DNI is reused instead of duplicated.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  services.RegisterUserInput  true  "Account payload"
// @Success     201  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload or unknown role"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Router      /users [post]
func (h *Handlers) RegisterUser(c *gin.Context) {
	var in services.RegisterUserInput
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.users.Register(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusCreated, "user registered", u)
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List user accounts
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.Response
// @Failure     403  {object}  handlers.ErrorResponse
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	out, err := h.users.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	okList(c, "users retrieved", out, len(out))
}

// GetUser godoc
// @ID          getUser
// @Summary     Get one user account
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "User ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "user retrieved", u)
}

// UpdateUser godoc
// @ID          updateUser
// @Summary     Update a user account
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                       true  "User ID"
// @Param       body  body  services.UpdateUserInput  true  "Fields to change"
// @Success     200  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /users/{id} [patch]
func (h *Handlers) UpdateUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in services.UpdateUserInput
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.users.Update(c.Request.Context(), id, in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "user updated", u)
}

// DeleteUser godoc
// @ID          deleteUser
// @Summary     Deactivate a user account
// @Description The account is disabled, not removed, so audit references stay valid.
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "User ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /users/{id} [delete]
func (h *Handlers) DeleteUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.users.Deactivate(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "user deactivated", nil)
}
