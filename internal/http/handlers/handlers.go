// Package handlers provides HTTP handler implementations for the public API.
//
// This file declares the service contracts the handlers depend on and the
// Handlers aggregate that binds them. Handlers are transport-thin: they
// parse and validate input, call application services, and shape successful
// responses; failures are attached to the Gin context for the terminal
// formatter.
package handlers

import (
	"context"

	"github.com/medrec/go-medrec-backend/internal/domain"
	"github.com/medrec/go-medrec-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AuthService verifies credentials and issues tokens.
type AuthService interface {
	Login(ctx context.Context, in services.LoginInput) (*services.LoginResult, error)
}

// UserService manages login accounts.
type UserService interface {
	Register(ctx context.Context, in services.RegisterUserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int) (*domain.User, error)
	Update(ctx context.Context, id int, in services.UpdateUserInput) (*domain.User, error)
	Deactivate(ctx context.Context, id int) error
}

// PersonService manages civil identity records.
type PersonService interface {
	Create(ctx context.Context, in services.CreatePersonInput) (*domain.Person, error)
	List(ctx context.Context) ([]domain.Person, error)
	Get(ctx context.Context, id int) (*domain.Person, error)
	Update(ctx context.Context, id int, in services.UpdatePersonInput) (*domain.Person, error)
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, term string) ([]domain.Person, error)
}

// PatientService manages patient records.
type PatientService interface {
	Create(ctx context.Context, in services.CreatePatientInput) (*domain.Patient, error)
	List(ctx context.Context) ([]domain.Patient, error)
	Get(ctx context.Context, id int) (*domain.Patient, error)
	Update(ctx context.Context, id int, in services.UpdatePatientInput) (*domain.Patient, error)
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, term string) ([]domain.Patient, error)
}

// DoctorService manages doctor records.
type DoctorService interface {
	Create(ctx context.Context, in services.CreateDoctorInput) (*domain.Doctor, error)
	List(ctx context.Context) ([]domain.Doctor, error)
	Get(ctx context.Context, id int) (*domain.Doctor, error)
	Update(ctx context.Context, id int, in services.UpdateDoctorInput) (*domain.Doctor, error)
	Delete(ctx context.Context, id int) error
}

// AreaService manages the medical-area catalog.
type AreaService interface {
	Create(ctx context.Context, in services.AreaInput) (*domain.MedicalArea, error)
	List(ctx context.Context) ([]domain.MedicalArea, error)
	Get(ctx context.Context, id int) (*domain.MedicalArea, error)
	Update(ctx context.Context, id int, in services.UpdateAreaInput) (*domain.MedicalArea, error)
	Delete(ctx context.Context, id int) error
}

// ReportTypeService manages the report-type catalog.
type ReportTypeService interface {
	Create(ctx context.Context, in services.ReportTypeInput) (*domain.ReportType, error)
	List(ctx context.Context) ([]domain.ReportType, error)
	Get(ctx context.Context, id int) (*domain.ReportType, error)
	Update(ctx context.Context, id int, in services.UpdateReportTypeInput) (*domain.ReportType, error)
	Delete(ctx context.Context, id int) error
}

// HealthCenterService manages the health-center catalog.
type HealthCenterService interface {
	Create(ctx context.Context, in services.HealthCenterInput) (*domain.HealthCenter, error)
	List(ctx context.Context) ([]domain.HealthCenter, error)
	Get(ctx context.Context, id int) (*domain.HealthCenter, error)
	Update(ctx context.Context, id int, in services.UpdateHealthCenterInput) (*domain.HealthCenter, error)
	Delete(ctx context.Context, id int) error
}

// ReportService manages medical reports and their images.
type ReportService interface {
	Create(ctx context.Context, in services.CreateReportInput) (*domain.MedicalReport, error)
	List(ctx context.Context, in services.ListReportsInput) (*services.ReportPage, error)
	Get(ctx context.Context, id int) (*domain.MedicalReport, error)
	Update(ctx context.Context, id int, in services.UpdateReportInput) (*domain.MedicalReport, error)
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, term string) ([]domain.MedicalReport, error)
	AddImages(ctx context.Context, id int, imgs []services.ReportImageInput) ([]domain.ReportImage, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the whole API surface. It depends
// on abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	auth        AuthService
	users       UserService
	persons     PersonService
	patients    PatientService
	doctors     DoctorService
	areas       AreaService
	reportTypes ReportTypeService
	centers     HealthCenterService
	reports     ReportService
}

// New constructs a Handlers instance bound to the given services.
func New(
	auth AuthService,
	users UserService,
	persons PersonService,
	patients PatientService,
	doctors DoctorService,
	areas AreaService,
	reportTypes ReportTypeService,
	centers HealthCenterService,
	reports ReportService,
) *Handlers {
	return &Handlers{
		auth:        auth,
		users:       users,
		persons:     persons,
		patients:    patients,
		doctors:     doctors,
		areas:       areas,
		reportTypes: reportTypes,
		centers:     centers,
		reports:     reports,
	}
}
