// Medical report HTTP handlers.
//
// Routes (mounted under /api/v1):
//
//	POST   /reports             – author a report, optionally with images
//	GET    /reports             – filtered, paginated listing
//	GET    /reports/search      – free-text search
//	GET    /reports/:id         – one report with all relations
//	PATCH  /reports/:id         – partial update
//	DELETE /reports/:id         – delete report and its images
//	POST   /reports/:id/images  – attach further images (object or array)
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/medrec/go-medrec-backend/internal/apperr"
	"github.com/medrec/go-medrec-backend/internal/services"
	"github.com/medrec/go-medrec-backend/internal/utils"
)

// CreateReport godoc
// @ID          createReport
// @Summary     Create a medical report
// @Description Authors a report for a patient, optionally attaching up to 20 images.
// @Tags        Reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  services.CreateReportInput  true  "Report payload"
// @Success     201  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown or inactive reference"
// @Router      /reports [post]
func (h *Handlers) CreateReport(c *gin.Context) {
	var in services.CreateReportInput
	if !bindJSON(c, &in) {
		return
	}
	r, err := h.reports.Create(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusCreated, "medical report created", r)
}

// ListReports godoc
// @ID          listReports
// @Summary     List medical reports
// @Description Returns a page of reports. All filters are optional and combine with AND.
// @Tags        Reports
// @Produce     json
// @Security    BearerAuth
// @Param       patient_id      query  int     false  "Filter by patient"
// @Param       doctor_id       query  int     false  "Filter by doctor"
// @Param       report_type_id  query  int     false  "Filter by report type"
// @Param       center_id       query  int     false  "Filter by health center"
// @Param       date_from       query  string  false  "Earliest report date (RFC 3339 or YYYY-MM-DD)"
// @Param       date_to         query  string  false  "Latest report date (RFC 3339 or YYYY-MM-DD)"
// @Param       search          query  string  false  "Term matched against title, content and patient"
// @Param       page            query  int     false  "Page number, starting at 1"
// @Param       page_size       query  int     false  "Page size, at most 100"
// @Success     200  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /reports [get]
func (h *Handlers) ListReports(c *gin.Context) {
	from, err := utils.ParseDate(c.Query("date_from"))
	if err != nil {
		c.Error(apperr.New("date_from must be RFC 3339 or YYYY-MM-DD", http.StatusBadRequest))
		return
	}
	to, err := utils.ParseDate(c.Query("date_to"))
	if err != nil {
		c.Error(apperr.New("date_to must be RFC 3339 or YYYY-MM-DD", http.StatusBadRequest))
		return
	}

	in := services.ListReportsInput{
		PatientID:    utils.AtoiDefault(c.Query("patient_id"), 0),
		DoctorID:     utils.AtoiDefault(c.Query("doctor_id"), 0),
		ReportTypeID: utils.AtoiDefault(c.Query("report_type_id"), 0),
		CenterID:     utils.AtoiDefault(c.Query("center_id"), 0),
		DateFrom:     from,
		DateTo:       to,
		Search:       c.Query("search"),
		Page:         utils.AtoiDefault(c.Query("page"), 1),
		PageSize: utils.ClampInt(
			utils.AtoiDefault(c.Query("page_size"), services.DefaultPageSize),
			1, services.MaxPageSize),
	}
	page, err := h.reports.List(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	okPage(c, "medical reports retrieved", page.Items, Pagination{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		HasNext:    page.HasNext,
	})
}

// SearchReports godoc
// @ID          searchReports
// @Summary     Search medical reports
// @Description Matches the term against report title, content, and patient identity.
// @Tags        Reports
// @Produce     json
// @Security    BearerAuth
// @Param       query  query  string  true  "Search term"
// @Success     200  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Empty term"
// @Router      /reports/search [get]
func (h *Handlers) SearchReports(c *gin.Context) {
	out, err := h.reports.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		c.Error(err)
		return
	}
	okList(c, "medical reports retrieved", out, len(out))
}

// GetReport godoc
// @ID          getReport
// @Summary     Get one medical report
// @Tags        Reports
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Report ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /reports/{id} [get]
func (h *Handlers) GetReport(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	r, err := h.reports.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "medical report retrieved", r)
}

// UpdateReport godoc
// @ID          updateReport
// @Summary     Update a medical report
// @Description Applies a partial update. Repointed relations are re-validated.
// @Tags        Reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                         true  "Report ID"
// @Param       body  body  services.UpdateReportInput  true  "Fields to change"
// @Success     200  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /reports/{id} [patch]
func (h *Handlers) UpdateReport(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in services.UpdateReportInput
	if !bindJSON(c, &in) {
		return
	}
	r, err := h.reports.Update(c.Request.Context(), id, in)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "medical report updated", r)
}

// DeleteReport godoc
// @ID          deleteReport
// @Summary     Delete a medical report
// @Description Removes the report together with its attached images.
// @Tags        Reports
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Report ID"
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /reports/{id} [delete]
func (h *Handlers) DeleteReport(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.reports.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "medical report deleted", nil)
}

// AddReportImages godoc
// @ID          addReportImages
// @Summary     Attach images to a report
// @Description Accepts either a single image object or an array of them. The per-report cap of 20 images counts existing attachments.
// @Tags        Reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                         true  "Report ID"
// @Param       body  body  []services.ReportImageInput true  "Image or array of images"
// @Success     201  {object}  handlers.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Cap exceeded or invalid payload"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /reports/{id}/images [post]
func (h *Handlers) AddReportImages(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	imgs, valid := bindImages(c)
	if !valid {
		return
	}
	out, err := h.reports.AddImages(c.Request.Context(), id, imgs)
	if err != nil {
		c.Error(err)
		return
	}
	n := len(out)
	c.JSON(http.StatusCreated, Response{Success: true, Message: "images added", Data: out, Count: &n})
}

// bindImages reads the image payload in either shape: a bare object or an
// array of objects. Each image is validated with the same rules bindJSON
// applies, so clients get the usual field-error envelope.
func bindImages(c *gin.Context) ([]services.ReportImageInput, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperr.New("invalid JSON body", http.StatusBadRequest))
		return nil, false
	}

	var imgs []services.ReportImageInput
	trimmed := strings.TrimLeft(string(body), " \t\r\n")
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(body, &imgs); err != nil {
			c.Error(apperr.New("invalid JSON body", http.StatusBadRequest))
			return nil, false
		}
	} else {
		var one services.ReportImageInput
		if err := json.Unmarshal(body, &one); err != nil {
			c.Error(apperr.New("invalid JSON body", http.StatusBadRequest))
			return nil, false
		}
		imgs = []services.ReportImageInput{one}
	}

	for i := range imgs {
		if err := binding.Validator.ValidateStruct(&imgs[i]); err != nil {
			attachBindError(c, err)
			return nil, false
		}
	}
	return imgs, true
}
