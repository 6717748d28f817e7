// Package services – PatientService
//
// This file implements patient management on top of existing persons. A
// person can be registered as a patient once; deletion is a soft delete so
// historical reports keep their patient reference.
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

// CreatePatientInput carries the payload for registering a patient.
type CreatePatientInput struct {
	PersonID                 int     `json:"person_id" binding:"required,min=1"`
	SocialSecurityProviderID *int    `json:"social_security_provider_id" binding:"omitempty,min=1"`
	AffiliateNumber          *string `json:"affiliate_number"`
	BloodGroup               *string `json:"blood_group"`
	Allergies                *string `json:"allergies"`
	PreExistingConditions    *string `json:"pre_existing_conditions"`
	Medications              *string `json:"medications"`
}

// UpdatePatientInput carries a partial patient update.
type UpdatePatientInput struct {
	SocialSecurityProviderID *int    `json:"social_security_provider_id" binding:"omitempty,min=1"`
	AffiliateNumber          *string `json:"affiliate_number"`
	BloodGroup               *string `json:"blood_group"`
	Allergies                *string `json:"allergies"`
	PreExistingConditions    *string `json:"pre_existing_conditions"`
	Medications              *string `json:"medications"`
}

// PatientService manages patient records.
type PatientService struct {
	DB *gorm.DB
}

// NewPatientService constructs a PatientService.
func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{DB: db}
}

// Create registers a person as a patient. The person is checked up front so
// a bad reference reports 400 with a clear message; registering the same
// person twice yields 409.
func (s *PatientService) Create(ctx context.Context, in CreatePatientInput) (*domain.Patient, error) {
	if _, err := repo.GetPerson(ctx, s.DB, in.PersonID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.New("person not found", http.StatusBadRequest)
		}
		return nil, translate(err, "person")
	}
	if existing, err := repo.GetPatientByPersonID(ctx, s.DB, in.PersonID); err == nil && !existing.IsDeleted {
		return nil, apperr.New("this person is already registered as a patient", http.StatusConflict)
	}

	p := &domain.Patient{
		PersonID:                 in.PersonID,
		SocialSecurityProviderID: in.SocialSecurityProviderID,
		AffiliateNumber:          in.AffiliateNumber,
		BloodGroup:               in.BloodGroup,
		Allergies:                in.Allergies,
		PreExistingConditions:    in.PreExistingConditions,
		Medications:              in.Medications,
	}
	if err := repo.CreatePatient(ctx, s.DB, p); err != nil {
		if repo.Classify(err) == repo.ViolationUnique {
			return nil, apperr.New("this person is already registered as a patient", http.StatusConflict).WithCause(err)
		}
		return nil, translate(err, "patient")
	}
	return repo.GetPatient(ctx, s.DB, p.ID)
}

// List returns all active (non-deleted) patients.
func (s *PatientService) List(ctx context.Context) ([]domain.Patient, error) {
	out, err := repo.ListPatients(ctx, s.DB)
	if err != nil {
		return nil, translate(err, "patient")
	}
	return out, nil
}

// Get fetches one patient by ID. Soft-deleted patients report 404.
func (s *PatientService) Get(ctx context.Context, id int) (*domain.Patient, error) {
	if err := requireID(id, "patient"); err != nil {
		return nil, err
	}
	p, err := repo.GetPatient(ctx, s.DB, id)
	if err != nil {
		return nil, translate(err, "patient")
	}
	if p.IsDeleted {
		return nil, apperr.New("patient not found", http.StatusNotFound)
	}
	return p, nil
}

// Update applies a partial update to an active patient.
func (s *PatientService) Update(ctx context.Context, id int, in UpdatePatientInput) (*domain.Patient, error) {
	if err := requireID(id, "patient"); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.SocialSecurityProviderID != nil {
		fields["social_security_provider_id"] = in.SocialSecurityProviderID
	}
	if in.AffiliateNumber != nil {
		fields["affiliate_number"] = in.AffiliateNumber
	}
	if in.BloodGroup != nil {
		fields["blood_group"] = in.BloodGroup
	}
	if in.Allergies != nil {
		fields["allergies"] = in.Allergies
	}
	if in.PreExistingConditions != nil {
		fields["pre_existing_conditions"] = in.PreExistingConditions
	}
	if in.Medications != nil {
		fields["medications"] = in.Medications
	}

	if len(fields) > 0 {
		if err := repo.UpdatePatient(ctx, s.DB, id, fields); err != nil {
			return nil, translate(err, "patient")
		}
	}
	return repo.GetPatient(ctx, s.DB, id)
}

// Delete soft-deletes a patient. The row remains so existing reports keep
// a valid patient reference.
func (s *PatientService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "patient"); err != nil {
		return err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := repo.MarkPatientDeleted(ctx, s.DB, id); err != nil {
		return translate(err, "patient")
	}
	return nil
}

// Search returns active patients whose person matches term.
func (s *PatientService) Search(ctx context.Context, term string) ([]domain.Patient, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.New("search term must not be empty", http.StatusBadRequest)
	}
	out, err := repo.SearchPatients(ctx, s.DB, term)
	if err != nil {
		return nil, translate(err, "patient")
	}
	return out, nil
}
