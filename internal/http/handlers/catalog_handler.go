// Catalog HTTP handlers: medical areas, report types, health centers.
//
// The three catalogs share a CRUD shape; mutations are admin-gated at the
// router. Handlers stay per-entity so Swagger documents each surface.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/go-medrec-backend/internal/services"
)

// CreateArea godoc
// @ID          createArea
// @Summary     Create a medical area
// @Tags        Catalog
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  services.AreaInput  true  "Area payload"
// @Success     201  {object}  handlers.Response
// @Failure     409  {object}  handlers.ErrorResponse  "Name already exists"
// @Router      /areas [post]
func (h *Handlers) CreateArea(c *gin.Context) {
	var in services.AreaInput
	if !bindJSON(c, &in) {
		return
	}
	a, err := h.areas.Create(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusCreated, "medical area created", a)
}

// ListAreas godoc
// @ID          listAreas
// @Summary     List medical areas
// @Tags        Catalog
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.Response
// @Router      /areas [get]
func (h *Handlers) ListAreas(c *gin.Context) {
	out, err := h.areas.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	okList(c, "medical areas retrieved", out, len(out))
}

// GetArea godoc
// @ID          getArea
// @Summary     Get one medical area
// @Tags        Catalog
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Area ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /areas/{id} [get]
func (h *Handlers) GetArea(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	a, err := h.areas.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "medical area retrieved", a)
}

// UpdateArea godoc
// @ID          updateArea
// @Summary     Update a medical area
// @Tags        Catalog
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                       true  "Area ID"
// @Param       body  body  services.UpdateAreaInput  true  "Fields to change"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /areas/{id} [patch]
func (h *Handlers) UpdateArea(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in services.UpdateAreaInput
	if !bindJSON(c, &in) {
		return
	}
	a, err := h.areas.Update(c.Request.Context(), id, in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "medical area updated", a)
}

// DeleteArea godoc
// @ID          deleteArea
// @Summary     Delete a medical area
// @Tags        Catalog
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Area ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse  "Area in use"
// @Router      /areas/{id} [delete]
func (h *Handlers) DeleteArea(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.areas.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "medical area deleted", nil)
}

// CreateReportType godoc
// @ID          createReportType
// @Summary     Create a report type
// @Tags        Catalog
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  services.ReportTypeInput  true  "Report type payload"
// @Success     201  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown area"
// @Failure     409  {object}  handlers.ErrorResponse  "Name already exists"
// @Router      /report-types [post]
func (h *Handlers) CreateReportType(c *gin.Context) {
	var in services.ReportTypeInput
	if !bindJSON(c, &in) {
		return
	}
	rt, err := h.reportTypes.Create(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusCreated, "report type created", rt)
}

// ListReportTypes godoc
// @ID          listReportTypes
// @Summary     List report types
// @Tags        Catalog
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.Response
// @Router      /report-types [get]
func (h *Handlers) ListReportTypes(c *gin.Context) {
	out, err := h.reportTypes.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	okList(c, "report types retrieved", out, len(out))
}

// GetReportType godoc
// @ID          getReportType
// @Summary     Get one report type
// @Tags        Catalog
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Report type ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /report-types/{id} [get]
func (h *Handlers) GetReportType(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	rt, err := h.reportTypes.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "report type retrieved", rt)
}

// UpdateReportType godoc
// @ID          updateReportType
// @Summary     Update a report type
// @Tags        Catalog
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                             true  "Report type ID"
// @Param       body  body  services.UpdateReportTypeInput  true  "Fields to change"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /report-types/{id} [patch]
func (h *Handlers) UpdateReportType(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in services.UpdateReportTypeInput
	if !bindJSON(c, &in) {
		return
	}
	rt, err := h.reportTypes.Update(c.Request.Context(), id, in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "report type updated", rt)
}

// DeleteReportType godoc
// @ID          deleteReportType
// @Summary     Delete a report type
// @Tags        Catalog
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Report type ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse  "Type in use"
// @Router      /report-types/{id} [delete]
func (h *Handlers) DeleteReportType(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.reportTypes.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "report type deleted", nil)
}

// CreateHealthCenter godoc
// @ID          createHealthCenter
// @Summary     Create a health center
// @Tags        Catalog
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  services.HealthCenterInput  true  "Health center payload"
// @Success     201  {object}  handlers.Response
// @Failure     409  {object}  handlers.ErrorResponse  "Name already exists"
// @Router      /health-centers [post]
func (h *Handlers) CreateHealthCenter(c *gin.Context) {
	var in services.HealthCenterInput
	if !bindJSON(c, &in) {
		return
	}
	hc, err := h.centers.Create(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusCreated, "health center created", hc)
}

// ListHealthCenters godoc
// @ID          listHealthCenters
// @Summary     List health centers
// @Tags        Catalog
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.Response
// @Router      /health-centers [get]
func (h *Handlers) ListHealthCenters(c *gin.Context) {
	out, err := h.centers.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	okList(c, "health centers retrieved", out, len(out))
}

// GetHealthCenter godoc
// @ID          getHealthCenter
// @Summary     Get one health center
// @Tags        Catalog
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Health center ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /health-centers/{id} [get]
func (h *Handlers) GetHealthCenter(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	hc, err := h.centers.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "health center retrieved", hc)
}

// UpdateHealthCenter godoc
// @ID          updateHealthCenter
// @Summary     Update a health center
// @Tags        Catalog
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                               true  "Health center ID"
// @Param       body  body  services.UpdateHealthCenterInput  true  "Fields to change"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /health-centers/{id} [patch]
func (h *Handlers) UpdateHealthCenter(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in services.UpdateHealthCenterInput
	if !bindJSON(c, &in) {
		return
	}
	hc, err := h.centers.Update(c.Request.Context(), id, in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "health center updated", hc)
}

// DeleteHealthCenter godoc
// @ID          deleteHealthCenter
// @Summary     Delete a health center
// @Tags        Catalog
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Health center ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /health-centers/{id} [delete]
func (h *Handlers) DeleteHealthCenter(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.centers.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "health center deleted", nil)
}
