// Package services – catalog services
//
// This file implements the three catalog entities: medical areas, report
// types, and health centers. They share a shape — unique name, optional
// metadata, CRUD guarded against duplicate names and dangling references.
package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/apperr"
	"github.com/medrec/go-medrec-backend/internal/domain"
	"github.com/medrec/go-medrec-backend/internal/repo"
)

// AreaInput carries the payload for creating a medical area.
type AreaInput struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description *string `json:"description"`
}

// UpdateAreaInput carries a partial medical-area update.
type UpdateAreaInput struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
}

// AreaService manages medical areas.
type AreaService struct {
	DB *gorm.DB
}

// NewAreaService constructs an AreaService.
func NewAreaService(db *gorm.DB) *AreaService {
	return &AreaService{DB: db}
}

// Create inserts a new medical area. Duplicate names yield 409.
func (s *AreaService) Create(ctx context.Context, in AreaInput) (*domain.MedicalArea, error) {
	a := &domain.MedicalArea{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	}
	if err := repo.CreateArea(ctx, s.DB, a); err != nil {
		if repo.Classify(err) == repo.ViolationUnique {
			return nil, apperr.New("a medical area with this name already exists", http.StatusConflict).WithCause(err)
		}
		return nil, translate(err, "medical area")
	}
	return a, nil
}

// List returns all medical areas ordered by name.
func (s *AreaService) List(ctx context.Context) ([]domain.MedicalArea, error) {
	out, err := repo.ListAreas(ctx, s.DB)
	if err != nil {
		return nil, translate(err, "medical area")
	}
	return out, nil
}

// Get fetches one medical area by ID.
func (s *AreaService) Get(ctx context.Context, id int) (*domain.MedicalArea, error) {
	if err := requireID(id, "medical area"); err != nil {
		return nil, err
	}
	a, err := repo.GetArea(ctx, s.DB, id)
	if err != nil {
		return nil, translate(err, "medical area")
	}
	return a, nil
}

// Update applies a partial update to a medical area.
func (s *AreaService) Update(ctx context.Context, id int, in UpdateAreaInput) (*domain.MedicalArea, error) {
	if err := requireID(id, "medical area"); err != nil {
		return nil, err
	}
	if _, err := repo.GetArea(ctx, s.DB, id); err != nil {
		return nil, translate(err, "medical area")
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		fields["description"] = in.Description
	}
	if len(fields) > 0 {
		if err := repo.UpdateArea(ctx, s.DB, id, fields); err != nil {
			if repo.Classify(err) == repo.ViolationUnique {
				return nil, apperr.New("a medical area with this name already exists", http.StatusConflict).WithCause(err)
			}
			return nil, translate(err, "medical area")
		}
	}
	return repo.GetArea(ctx, s.DB, id)
}

// Delete removes a medical area. Areas referenced by doctors or report
// types cannot be deleted and report 409.
func (s *AreaService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "medical area"); err != nil {
		return err
	}
	if err := repo.DeleteArea(ctx, s.DB, id); err != nil {
		if repo.Classify(err) == repo.ViolationForeignKey {
			return apperr.New("medical area is in use and cannot be deleted", http.StatusConflict).WithCause(err)
		}
		return translate(err, "medical area")
	}
	return nil
}

// ReportTypeInput carries the payload for creating a report type.
type ReportTypeInput struct {
	Name        string  `json:"name"    binding:"required,min=2,max=100"`
	Description *string `json:"description"`
	AreaID      int     `json:"area_id" binding:"required,min=1"`
}

// UpdateReportTypeInput carries a partial report-type update.
type UpdateReportTypeInput struct {
	Name        *string `json:"name"    binding:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	AreaID      *int    `json:"area_id" binding:"omitempty,min=1"`
}

// ReportTypeService manages report types.
type ReportTypeService struct {
	DB *gorm.DB
}

// NewReportTypeService constructs a ReportTypeService.
func NewReportTypeService(db *gorm.DB) *ReportTypeService {
	return &ReportTypeService{DB: db}
}

// Create inserts a new report type under an existing medical area.
func (s *ReportTypeService) Create(ctx context.Context, in ReportTypeInput) (*domain.ReportType, error) {
	if _, err := repo.GetArea(ctx, s.DB, in.AreaID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.New("medical area not found", http.StatusBadRequest)
		}
		return nil, translate(err, "medical area")
	}
	rt := &domain.ReportType{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		AreaID:      in.AreaID,
	}
	if err := repo.CreateReportType(ctx, s.DB, rt); err != nil {
		if repo.Classify(err) == repo.ViolationUnique {
			return nil, apperr.New("a report type with this name already exists", http.StatusConflict).WithCause(err)
		}
		return nil, translate(err, "report type")
	}
	return repo.GetReportType(ctx, s.DB, rt.ID)
}

// List returns all report types with their area preloaded.
func (s *ReportTypeService) List(ctx context.Context) ([]domain.ReportType, error) {
	out, err := repo.ListReportTypes(ctx, s.DB)
	if err != nil {
		return nil, translate(err, "report type")
	}
	return out, nil
}

// Get fetches one report type by ID.
func (s *ReportTypeService) Get(ctx context.Context, id int) (*domain.ReportType, error) {
	if err := requireID(id, "report type"); err != nil {
		return nil, err
	}
	rt, err := repo.GetReportType(ctx, s.DB, id)
	if err != nil {
		return nil, translate(err, "report type")
	}
	return rt, nil
}

// Update applies a partial update to a report type.
func (s *ReportTypeService) Update(ctx context.Context, id int, in UpdateReportTypeInput) (*domain.ReportType, error) {
	if err := requireID(id, "report type"); err != nil {
		return nil, err
	}
	if _, err := repo.GetReportType(ctx, s.DB, id); err != nil {
		return nil, translate(err, "report type")
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		fields["description"] = in.Description
	}
	if in.AreaID != nil {
		if _, err := repo.GetArea(ctx, s.DB, *in.AreaID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, apperr.New("medical area not found", http.StatusBadRequest)
			}
			return nil, translate(err, "medical area")
		}
		fields["area_id"] = *in.AreaID
	}
	if len(fields) > 0 {
		if err := repo.UpdateReportType(ctx, s.DB, id, fields); err != nil {
			if repo.Classify(err) == repo.ViolationUnique {
				return nil, apperr.New("a report type with this name already exists", http.StatusConflict).WithCause(err)
			}
			return nil, translate(err, "report type")
		}
	}
	return repo.GetReportType(ctx, s.DB, id)
}

// Delete removes a report type. Types referenced by reports report 409.
func (s *ReportTypeService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "report type"); err != nil {
		return err
	}
	if err := repo.DeleteReportType(ctx, s.DB, id); err != nil {
		if repo.Classify(err) == repo.ViolationForeignKey {
			return apperr.New("report type is in use and cannot be deleted", http.StatusConflict).WithCause(err)
		}
		return translate(err, "report type")
	}
	return nil
}

// HealthCenterInput carries the payload for creating a health center.
type HealthCenterInput struct {
	Name    string  `json:"name" binding:"required,min=2,max=150"`
	Address *string `json:"address"`
	City    *string `json:"city"`
}

// UpdateHealthCenterInput carries a partial health-center update.
type UpdateHealthCenterInput struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=150"`
	Address *string `json:"address"`
	City    *string `json:"city"`
}

// HealthCenterService manages health centers.
type HealthCenterService struct {
	DB *gorm.DB
}

// NewHealthCenterService constructs a HealthCenterService.
func NewHealthCenterService(db *gorm.DB) *HealthCenterService {
	return &HealthCenterService{DB: db}
}

// Create inserts a new health center. Duplicate names yield 409.
func (s *HealthCenterService) Create(ctx context.Context, in HealthCenterInput) (*domain.HealthCenter, error) {
	hc := &domain.HealthCenter{
		Name:    strings.TrimSpace(in.Name),
		Address: in.Address,
		City:    in.City,
	}
	if err := repo.CreateHealthCenter(ctx, s.DB, hc); err != nil {
		if repo.Classify(err) == repo.ViolationUnique {
			return nil, apperr.New("a health center with this name already exists", http.StatusConflict).WithCause(err)
		}
		return nil, translate(err, "health center")
	}
	return hc, nil
}

// List returns all health centers ordered by name.
func (s *HealthCenterService) List(ctx context.Context) ([]domain.HealthCenter, error) {
	out, err := repo.ListHealthCenters(ctx, s.DB)
	if err != nil {
		return nil, translate(err, "health center")
	}
	return out, nil
}

// Get fetches one health center by ID.
func (s *HealthCenterService) Get(ctx context.Context, id int) (*domain.HealthCenter, error) {
	if err := requireID(id, "health center"); err != nil {
		return nil, err
	}
	hc, err := repo.GetHealthCenter(ctx, s.DB, id)
	if err != nil {
		return nil, translate(err, "health center")
	}
	return hc, nil
}

// Update applies a partial update to a health center.
func (s *HealthCenterService) Update(ctx context.Context, id int, in UpdateHealthCenterInput) (*domain.HealthCenter, error) {
	if err := requireID(id, "health center"); err != nil {
		return nil, err
	}
	if _, err := repo.GetHealthCenter(ctx, s.DB, id); err != nil {
		return nil, translate(err, "health center")
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		fields["address"] = in.Address
	}
	if in.City != nil {
		fields["city"] = in.City
	}
	if len(fields) > 0 {
		if err := repo.UpdateHealthCenter(ctx, s.DB, id, fields); err != nil {
			if repo.Classify(err) == repo.ViolationUnique {
				return nil, apperr.New("a health center with this name already exists", http.StatusConflict).WithCause(err)
			}
			return nil, translate(err, "health center")
		}
	}
	return repo.GetHealthCenter(ctx, s.DB, id)
}

// Delete removes a health center. Reports referencing it keep a null
// center, so deletion is allowed; only a hard constraint failure surfaces.
func (s *HealthCenterService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "health center"); err != nil {
		return err
	}
	if err := repo.DeleteHealthCenter(ctx, s.DB, id); err != nil {
		return translate(err, "health center")
	}
	return nil
}
