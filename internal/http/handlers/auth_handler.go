// Authentication HTTP handlers.
//
//   - POST /auth/login  (credential check, token issuance; rate limited)
//   - GET  /auth/me     (current principal)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/go-medrec-backend/internal/apperr"
	"github.com/medrec/go-medrec-backend/internal/http/middleware"
	"github.com/medrec/go-medrec-backend/internal/services"
)

// Login godoc
// @ID          login
// @Summary     Authenticate and obtain a token
// @Description Verifies credentials and returns a signed bearer token plus the account.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body  services.LoginInput  true  "Credentials"
// @Success     200  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload"
// @Failure     401  {object}  handlers.ErrorResponse  "Wrong password"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown or deactivated account"
// @Failure     429  {object}  handlers.ErrorResponse  "Too many attempts"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var in services.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.auth.Login(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "login successful", res)
}

// Me godoc
// @ID          me
// @Summary     Current principal
// @Description Returns the identity attached to the presented token.
// @Tags        Auth
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.Response
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /auth/me [get]
func (h *Handlers) Me(c *gin.Context) {
	p, found := middleware.PrincipalFrom(c)
	if !found {
		c.Error(apperr.New("authentication required", http.StatusUnauthorized))
		return
	}
	ok(c, http.StatusOK, "authenticated", p)
}
