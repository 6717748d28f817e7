// Package services – ReportService
//
// This file implements the medical-report use cases: filtered, paginated
// listing, retrieval, creation with attached images (capped per report),
// partial update, deletion, free-text search, and attaching further images
// to an existing report. Every referenced entity is checked up front so a
// bad reference reports a clear 400 instead of a raw constraint failure.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/apperr"
	"github.com/medrec/go-medrec-backend/internal/domain"
	"github.com/medrec/go-medrec-backend/internal/repo"
)

// ReportImageInput carries one image attachment in a report payload.
type ReportImageInput struct {
	URL         string  `json:"url" binding:"required,url,max=512"`
	ImageType   *string `json:"image_type"  binding:"omitempty,max=32"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// CreateReportInput carries the payload for authoring a report.
type CreateReportInput struct {
	PatientID    int                `json:"patient_id"     binding:"required,min=1"`
	DoctorID     int                `json:"doctor_id"      binding:"required,min=1"`
	ReportTypeID int                `json:"report_type_id" binding:"required,min=1"`
	CenterID     *int               `json:"center_id"      binding:"omitempty,min=1"`
	Title        string             `json:"title"          binding:"required,min=3,max=255"`
	Content      string             `json:"content"        binding:"required,min=1"`
	Images       []ReportImageInput `json:"images"         binding:"omitempty,dive"`
}

// UpdateReportInput carries a partial report update. Relations may be
// repointed; images are managed through AddImages, not here.
type UpdateReportInput struct {
	PatientID    *int    `json:"patient_id"     binding:"omitempty,min=1"`
	DoctorID     *int    `json:"doctor_id"      binding:"omitempty,min=1"`
	ReportTypeID *int    `json:"report_type_id" binding:"omitempty,min=1"`
	CenterID     *int    `json:"center_id"      binding:"omitempty,min=1"`
	Title        *string `json:"title"          binding:"omitempty,min=3,max=255"`
	Content      *string `json:"content"        binding:"omitempty,min=1"`
}

// ListReportsInput narrows and pages the report listing.
type ListReportsInput struct {
	PatientID    int
	DoctorID     int
	ReportTypeID int
	CenterID     int
	DateFrom     *time.Time
	DateTo       *time.Time
	Search       string
	Page         int
	PageSize     int
}

// ReportPage is one page of reports plus pagination metadata.
type ReportPage struct {
	Items      []domain.MedicalReport `json:"items"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalPages int                    `json:"total_pages"`
	HasNext    bool                   `json:"has_next"`
}

// Listing page bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ReportService manages medical reports and their images.
type ReportService struct {
	DB *gorm.DB
}

// NewReportService constructs a ReportService.
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// checkRefs verifies every referenced entity a payload names. Checks stop at
// the first failure so the client gets one actionable message.
func (s *ReportService) checkRefs(ctx context.Context, patientID, doctorID, reportTypeID int, centerID *int) error {
	if patientID > 0 {
		p, err := repo.GetPatient(ctx, s.DB, patientID)
		if err != nil || p.IsDeleted {
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return translate(err, "patient")
			}
			return apperr.New("patient not found", http.StatusBadRequest)
		}
	}
	if doctorID > 0 {
		d, err := repo.GetDoctor(ctx, s.DB, doctorID)
		if err != nil {
			if !errors.Is(err, repo.ErrNotFound) {
				return translate(err, "doctor")
			}
			return apperr.New("doctor not found", http.StatusBadRequest)
		}
		if !d.IsActive {
			return apperr.New("doctor is not active", http.StatusBadRequest)
		}
	}
	if reportTypeID > 0 {
		if _, err := repo.GetReportType(ctx, s.DB, reportTypeID); err != nil {
			if !errors.Is(err, repo.ErrNotFound) {
				return translate(err, "report type")
			}
			return apperr.New("report type not found", http.StatusBadRequest)
		}
	}
	if centerID != nil {
		if _, err := repo.GetHealthCenter(ctx, s.DB, *centerID); err != nil {
			if !errors.Is(err, repo.ErrNotFound) {
				return translate(err, "health center")
			}
			return apperr.New("health center not found", http.StatusBadRequest)
		}
	}
	return nil
}

// Create authors a new report with up to MaxImagesPerReport images.
func (s *ReportService) Create(ctx context.Context, in CreateReportInput) (*domain.MedicalReport, error) {
	if len(in.Images) > domain.MaxImagesPerReport {
		return nil, apperr.New(
			fmt.Sprintf("a report can hold at most %d images", domain.MaxImagesPerReport),
			http.StatusBadRequest)
	}
	if err := s.checkRefs(ctx, in.PatientID, in.DoctorID, in.ReportTypeID, in.CenterID); err != nil {
		return nil, err
	}

	r := &domain.MedicalReport{
		PatientID:    in.PatientID,
		DoctorID:     in.DoctorID,
		ReportTypeID: in.ReportTypeID,
		CenterID:     in.CenterID,
		Title:        strings.TrimSpace(in.Title),
		Content:      in.Content,
	}
	images := make([]domain.ReportImage, 0, len(in.Images))
	for _, img := range in.Images {
		images = append(images, domain.ReportImage{
			URL:         img.URL,
			ImageType:   img.ImageType,
			Description: img.Description,
		})
	}
	out, err := repo.CreateReport(ctx, s.DB, r, images)
	if err != nil {
		return nil, translate(err, "medical report")
	}
	return out, nil
}

// List returns one page of reports matching the filters.
func (s *ReportService) List(ctx context.Context, in ListReportsInput) (*ReportPage, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if in.DateFrom != nil && in.DateTo != nil && in.DateTo.Before(*in.DateFrom) {
		return nil, apperr.New("date_to must not be before date_from", http.StatusBadRequest)
	}

	f := repo.ReportFilters{
		PatientID:    in.PatientID,
		DoctorID:     in.DoctorID,
		ReportTypeID: in.ReportTypeID,
		CenterID:     in.CenterID,
		DateFrom:     in.DateFrom,
		DateTo:       in.DateTo,
		SearchTerm:   strings.TrimSpace(in.Search),
	}
	total, err := repo.CountReports(ctx, s.DB, f)
	if err != nil {
		return nil, translate(err, "medical report")
	}
	items, err := repo.ListReportsPage(ctx, s.DB, f, (page-1)*size, size)
	if err != nil {
		return nil, translate(err, "medical report")
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &ReportPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}, nil
}

// Get fetches one report by ID with all relations.
func (s *ReportService) Get(ctx context.Context, id int) (*domain.MedicalReport, error) {
	if err := requireID(id, "medical report"); err != nil {
		return nil, err
	}
	r, err := repo.GetReport(ctx, s.DB, id)
	if err != nil {
		return nil, translate(err, "medical report")
	}
	return r, nil
}

// Update applies a partial update to a report, re-validating any repointed
// relation.
func (s *ReportService) Update(ctx context.Context, id int, in UpdateReportInput) (*domain.MedicalReport, error) {
	if err := requireID(id, "medical report"); err != nil {
		return nil, err
	}
	if _, err := repo.GetReport(ctx, s.DB, id); err != nil {
		return nil, translate(err, "medical report")
	}

	var patientID, doctorID, reportTypeID int
	if in.PatientID != nil {
		patientID = *in.PatientID
	}
	if in.DoctorID != nil {
		doctorID = *in.DoctorID
	}
	if in.ReportTypeID != nil {
		reportTypeID = *in.ReportTypeID
	}
	if err := s.checkRefs(ctx, patientID, doctorID, reportTypeID, in.CenterID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.PatientID != nil {
		fields["patient_id"] = *in.PatientID
	}
	if in.DoctorID != nil {
		fields["doctor_id"] = *in.DoctorID
	}
	if in.ReportTypeID != nil {
		fields["report_type_id"] = *in.ReportTypeID
	}
	if in.CenterID != nil {
		fields["center_id"] = *in.CenterID
	}
	if in.Title != nil {
		fields["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		fields["content"] = *in.Content
	}

	if len(fields) > 0 {
		if err := repo.UpdateReport(ctx, s.DB, id, fields); err != nil {
			return nil, translate(err, "medical report")
		}
	}
	return repo.GetReport(ctx, s.DB, id)
}

// Delete removes a report together with its images.
func (s *ReportService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "medical report"); err != nil {
		return err
	}
	if err := repo.DeleteReport(ctx, s.DB, id); err != nil {
		return translate(err, "medical report")
	}
	return nil
}

// Search returns up to 50 reports matching term on title, content, or
// patient identity.
func (s *ReportService) Search(ctx context.Context, term string) ([]domain.MedicalReport, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.New("search term must not be empty", http.StatusBadRequest)
	}
	out, err := repo.SearchReports(ctx, s.DB, term, 50)
	if err != nil {
		return nil, translate(err, "medical report")
	}
	return out, nil
}

// AddImages attaches further images to an existing report, enforcing the
// per-report cap against what is already stored.
func (s *ReportService) AddImages(ctx context.Context, id int, imgs []ReportImageInput) ([]domain.ReportImage, error) {
	if err := requireID(id, "medical report"); err != nil {
		return nil, err
	}
	if len(imgs) == 0 {
		return nil, apperr.New("at least one image is required", http.StatusBadRequest)
	}
	if _, err := repo.GetReport(ctx, s.DB, id); err != nil {
		return nil, translate(err, "medical report")
	}
	current, err := repo.CountImages(ctx, s.DB, id)
	if err != nil {
		return nil, translate(err, "medical report")
	}
	if current+int64(len(imgs)) > domain.MaxImagesPerReport {
		return nil, apperr.New(
			fmt.Sprintf("a report can hold at most %d images", domain.MaxImagesPerReport),
			http.StatusBadRequest)
	}

	rows := make([]domain.ReportImage, 0, len(imgs))
	for _, img := range imgs {
		rows = append(rows, domain.ReportImage{
			URL:         img.URL,
			ImageType:   img.ImageType,
			Description: img.Description,
		})
	}
	out, err := repo.AddImages(ctx, s.DB, id, rows)
	if err != nil {
		return nil, translate(err, "medical report")
	}
	return out, nil
}
