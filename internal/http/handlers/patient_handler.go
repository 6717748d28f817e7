// Patient HTTP handlers.
//
//   - POST   /patients
//   - GET    /patients
//   - GET    /patients/search?query=
//   - GET    /patients/{id}
//   - PATCH  /patients/{id}
//   - DELETE /patients/{id}   (soft delete)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/go-medrec-backend/internal/services"
)

// CreatePatient godoc
// @ID          createPatient
// @Summary     Register a person as a patient
// @Tags        Patients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  services.CreatePatientInput  true  "Patient payload"
// @Success     201  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown person"
// @Failure     409  {object}  handlers.ErrorResponse  "Person already a patient"
// @Router      /patients [post]
func (h *Handlers) CreatePatient(c *gin.Context) {
	var in services.CreatePatientInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.patients.Create(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusCreated, "patient created", p)
}

// ListPatients godoc
// @ID          listPatients
// @Summary     List active patients
// @Tags        Patients
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.Response
// @Router      /patients [get]
func (h *Handlers) ListPatients(c *gin.Context) {
	out, err := h.patients.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	okList(c, "patients retrieved", out, len(out))
}

// SearchPatients godoc
// @ID          searchPatients
// @Summary     Search patients
// @Description Matches the term against the patient's first name, last name, and DNI.
// @Tags        Patients
// @Produce     json
// @Security    BearerAuth
// @Param       query  query  string  true  "Search term"
// @Success     200  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Empty term"
// @Router      /patients/search [get]
func (h *Handlers) SearchPatients(c *gin.Context) {
	out, err := h.patients.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		c.Error(err)
		return
	}
	okList(c, "patients retrieved", out, len(out))
}

// GetPatient godoc
// @ID          getPatient
// @Summary     Get one patient
// @Tags        Patients
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Patient ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /patients/{id} [get]
func (h *Handlers) GetPatient(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p, err := h.patients.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "patient retrieved", p)
}

// UpdatePatient godoc
// @ID          updatePatient
// @Summary     Update a patient
// @Tags        Patients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                          true  "Patient ID"
// @Param       body  body  services.UpdatePatientInput  true  "Fields to change"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /patients/{id} [patch]
func (h *Handlers) UpdatePatient(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in services.UpdatePatientInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.patients.Update(c.Request.Context(), id, in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "patient updated", p)
}

// DeletePatient godoc
// @ID          deletePatient
// @Summary     Delete a patient
// @Description Soft delete; the record is hidden but kept so historical reports stay intact.
// @Tags        Patients
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Patient ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /patients/{id} [delete]
func (h *Handlers) DeletePatient(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.patients.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "patient deleted", nil)
}
