// Doctor HTTP handlers.
//
//   - POST   /doctors
//   - GET    /doctors
//   - GET    /doctors/{id}
//   - PATCH  /doctors/{id}
//   - DELETE /doctors/{id}   (deactivates)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/go-medrec-backend/internal/services"
)

// CreateDoctor godoc
// @ID          createDoctor
// @Summary     Register a person as a doctor
// @Tags        Doctors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  services.CreateDoctorInput  true  "Doctor payload"
// @Success     201  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown person or area"
// @Failure     409  {object}  handlers.ErrorResponse  "License already registered"
// @Router      /doctors [post]
func (h *Handlers) CreateDoctor(c *gin.Context) {
	var in services.CreateDoctorInput
	if !bindJSON(c, &in) {
		return
	}
	d, err := h.doctors.Create(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusCreated, "doctor created", d)
}

// ListDoctors godoc
// @ID          listDoctors
// @Summary     List doctors
// @Tags        Doctors
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.Response
// @Router      /doctors [get]
func (h *Handlers) ListDoctors(c *gin.Context) {
	out, err := h.doctors.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	okList(c, "doctors retrieved", out, len(out))
}

// GetDoctor godoc
// @ID          getDoctor
// @Summary     Get one doctor
// @Tags        Doctors
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Doctor ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /doctors/{id} [get]
func (h *Handlers) GetDoctor(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	d, err := h.doctors.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "doctor retrieved", d)
}

// UpdateDoctor godoc
// @ID          updateDoctor
// @Summary     Update a doctor
// @Tags        Doctors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                         true  "Doctor ID"
// @Param       body  body  services.UpdateDoctorInput  true  "Fields to change"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /doctors/{id} [patch]
func (h *Handlers) UpdateDoctor(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in services.UpdateDoctorInput
	if !bindJSON(c, &in) {
		return
	}
	d, err := h.doctors.Update(c.Request.Context(), id, in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "doctor updated", d)
}

// DeleteDoctor godoc
// @ID          deleteDoctor
// @Summary     Delete a doctor
// @Description Deactivates the doctor; authored reports keep a valid reference.
// @Tags        Doctors
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Doctor ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /doctors/{id} [delete]
func (h *Handlers) DeleteDoctor(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.doctors.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "doctor deactivated", nil)
}
