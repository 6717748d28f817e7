// Package services – DoctorService
//
// This file implements doctor management: registering a person as a doctor
// in a medical area with a unique license number, listing, partial update,
// and deactivation. Doctors are never hard-deleted.
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

// CreateDoctorInput carries the payload for registering a doctor.
type CreateDoctorInput struct {
	PersonID      int    `json:"person_id"      binding:"required,min=1"`
	LicenseNumber string `json:"license_number" binding:"required,min=3,max=64"`
	AreaID        int    `json:"area_id"        binding:"required,min=1"`
}

// UpdateDoctorInput carries a partial doctor update.
type UpdateDoctorInput struct {
	LicenseNumber *string `json:"license_number" binding:"omitempty,min=3,max=64"`
	AreaID        *int    `json:"area_id"        binding:"omitempty,min=1"`
	IsActive      *bool   `json:"is_active"`
}

// DoctorService manages doctor records.
type DoctorService struct {
	DB *gorm.DB
}

// NewDoctorService constructs a DoctorService.
func NewDoctorService(db *gorm.DB) *DoctorService {
	return &DoctorService{DB: db}
}

// Create registers a person as a doctor. Person and area are checked up
// front for clear 400 messages; a duplicate license number yields 409.
func (s *DoctorService) Create(ctx context.Context, in CreateDoctorInput) (*domain.Doctor, error) {
	if _, err := repo.GetPerson(ctx, s.DB, in.PersonID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.New("person not found", http.StatusBadRequest)
		}
		return nil, translate(err, "person")
	}
	if _, err := repo.GetArea(ctx, s.DB, in.AreaID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.New("medical area not found", http.StatusBadRequest)
		}
		return nil, translate(err, "medical area")
	}

	d := &domain.Doctor{
		PersonID:      in.PersonID,
		LicenseNumber: strings.TrimSpace(in.LicenseNumber),
		AreaID:        in.AreaID,
		IsActive:      true,
	}
	if err := repo.CreateDoctor(ctx, s.DB, d); err != nil {
		if repo.Classify(err) == repo.ViolationUnique {
			return nil, apperr.New("a doctor with this license number already exists", http.StatusConflict).WithCause(err)
		}
		return nil, translate(err, "doctor")
	}
	return repo.GetDoctor(ctx, s.DB, d.ID)
}

// List returns all doctors with person and area preloaded.
func (s *DoctorService) List(ctx context.Context) ([]domain.Doctor, error) {
	out, err := repo.ListDoctors(ctx, s.DB)
	if err != nil {
		return nil, translate(err, "doctor")
	}
	return out, nil
}

// Get fetches one doctor by ID.
func (s *DoctorService) Get(ctx context.Context, id int) (*domain.Doctor, error) {
	if err := requireID(id, "doctor"); err != nil {
		return nil, err
	}
	d, err := repo.GetDoctor(ctx, s.DB, id)
	if err != nil {
		return nil, translate(err, "doctor")
	}
	return d, nil
}

// Update applies a partial update to a doctor.
func (s *DoctorService) Update(ctx context.Context, id int, in UpdateDoctorInput) (*domain.Doctor, error) {
	if err := requireID(id, "doctor"); err != nil {
		return nil, err
	}
	if _, err := repo.GetDoctor(ctx, s.DB, id); err != nil {
		return nil, translate(err, "doctor")
	}

	fields := map[string]any{}
	if in.LicenseNumber != nil {
		fields["license_number"] = strings.TrimSpace(*in.LicenseNumber)
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
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	if len(fields) > 0 {
		if err := repo.UpdateDoctor(ctx, s.DB, id, fields); err != nil {
			if repo.Classify(err) == repo.ViolationUnique {
				return nil, apperr.New("a doctor with this license number already exists", http.StatusConflict).WithCause(err)
			}
			return nil, translate(err, "doctor")
		}
	}
	return repo.GetDoctor(ctx, s.DB, id)
}

// Delete deactivates a doctor. The row is kept so authored reports stay
// attributable.
func (s *DoctorService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "doctor"); err != nil {
		return err
	}
	if err := repo.DeactivateDoctor(ctx, s.DB, id); err != nil {
		return translate(err, "doctor")
	}
	return nil
}
