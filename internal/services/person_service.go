// Package services – PersonService
//
// This file implements the PersonService, which manages the civil identity
// records shared by users, patients, and doctors. It validates input,
// normalizes optional fields, and coordinates repository operations for the
// CRUD and search use cases. Database constraint failures are translated to
// typed application errors before they leave the service.
package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/apperr"
	"github.com/medrec/go-medrec-backend/internal/domain"
	"github.com/medrec/go-medrec-backend/internal/repo"
)

// CreatePersonInput carries the payload for registering a person. Optional
// fields are pointers so absent and empty are distinguishable.
type CreatePersonInput struct {
	DNI          string     `json:"dni"        binding:"required,min=7,max=20"`
	FirstName    string     `json:"first_name" binding:"required,max=100"`
	LastName     string     `json:"last_name"  binding:"required,max=100"`
	BirthDate    *time.Time `json:"birth_date"`
	Gender       *string    `json:"gender"`
	PhoneNumber  *string    `json:"phone_number"`
	PrimaryEmail *string    `json:"primary_email" binding:"omitempty,email"`
	Address      *string    `json:"address"`
	City         *string    `json:"city"`
	Province     *string    `json:"province"`
	Country      *string    `json:"country"`
	PostalCode   *string    `json:"postal_code"`
}

// UpdatePersonInput carries a partial update; nil fields are left untouched.
type UpdatePersonInput struct {
	DNI          *string    `json:"dni"        binding:"omitempty,min=7,max=20"`
	FirstName    *string    `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName     *string    `json:"last_name"  binding:"omitempty,min=1,max=100"`
	BirthDate    *time.Time `json:"birth_date"`
	Gender       *string    `json:"gender"`
	PhoneNumber  *string    `json:"phone_number"`
	PrimaryEmail *string    `json:"primary_email" binding:"omitempty,email"`
	Address      *string    `json:"address"`
	City         *string    `json:"city"`
	Province     *string    `json:"province"`
	Country      *string    `json:"country"`
	PostalCode   *string    `json:"postal_code"`
}

// PersonService provides person-level CRUD and search operations.
type PersonService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewPersonService constructs a PersonService.
func NewPersonService(db *gorm.DB) *PersonService {
	return &PersonService{DB: db}
}

// Create inserts a new person. A duplicate DNI yields a 409 conflict.
func (s *PersonService) Create(ctx context.Context, in CreatePersonInput) (*domain.Person, error) {
	p := &domain.Person{
		DNI:          strings.TrimSpace(in.DNI),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		BirthDate:    in.BirthDate,
		Gender:       in.Gender,
		PhoneNumber:  in.PhoneNumber,
		PrimaryEmail: in.PrimaryEmail,
		Address:      in.Address,
		City:         in.City,
		Province:     in.Province,
		Country:      in.Country,
		PostalCode:   in.PostalCode,
	}
	if err := repo.CreatePerson(ctx, s.DB, p); err != nil {
		if repo.Classify(err) == repo.ViolationUnique {
			return nil, apperr.New("a person with this DNI already exists", http.StatusConflict).WithCause(err)
		}
		return nil, translate(err, "person")
	}
	return p, nil
}

// List returns all persons, newest first.
func (s *PersonService) List(ctx context.Context) ([]domain.Person, error) {
	out, err := repo.ListPersons(ctx, s.DB)
	if err != nil {
		return nil, translate(err, "person")
	}
	return out, nil
}

// Get fetches one person by ID.
func (s *PersonService) Get(ctx context.Context, id int) (*domain.Person, error) {
	if err := requireID(id, "person"); err != nil {
		return nil, err
	}
	p, err := repo.GetPerson(ctx, s.DB, id)
	if err != nil {
		return nil, translate(err, "person")
	}
	return p, nil
}

// Update applies a partial update to an existing person. The person is
// looked up first so a missing row reports 404 rather than a silent no-op.
func (s *PersonService) Update(ctx context.Context, id int, in UpdatePersonInput) (*domain.Person, error) {
	if err := requireID(id, "person"); err != nil {
		return nil, err
	}
	if _, err := repo.GetPerson(ctx, s.DB, id); err != nil {
		return nil, translate(err, "person")
	}

	fields := map[string]any{}
	if in.DNI != nil {
		fields["dni"] = strings.TrimSpace(*in.DNI)
	}
	if in.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.BirthDate != nil {
		fields["birth_date"] = in.BirthDate
	}
	if in.Gender != nil {
		fields["gender"] = in.Gender
	}
	if in.PhoneNumber != nil {
		fields["phone_number"] = in.PhoneNumber
	}
	if in.PrimaryEmail != nil {
		fields["primary_email"] = in.PrimaryEmail
	}
	if in.Address != nil {
		fields["address"] = in.Address
	}
	if in.City != nil {
		fields["city"] = in.City
	}
	if in.Province != nil {
		fields["province"] = in.Province
	}
	if in.Country != nil {
		fields["country"] = in.Country
	}
	if in.PostalCode != nil {
		fields["postal_code"] = in.PostalCode
	}

	if len(fields) > 0 {
		if err := repo.UpdatePerson(ctx, s.DB, id, fields); err != nil {
			if repo.Classify(err) == repo.ViolationUnique {
				return nil, apperr.New("a person with this DNI already exists", http.StatusConflict).WithCause(err)
			}
			return nil, translate(err, "person")
		}
	}
	p, err := repo.GetPerson(ctx, s.DB, id)
	if err != nil {
		return nil, translate(err, "person")
	}
	return p, nil
}

// Delete removes a person. Persons referenced by a user, patient, or doctor
// cannot be deleted; the foreign-key violation surfaces as a 409 because the
// row exists but has dependents.
func (s *PersonService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "person"); err != nil {
		return err
	}
	if err := repo.DeletePerson(ctx, s.DB, id); err != nil {
		if repo.Classify(err) == repo.ViolationForeignKey {
			return apperr.New("person has associated records and cannot be deleted", http.StatusConflict).WithCause(err)
		}
		return translate(err, "person")
	}
	return nil
}

// Search returns persons matching term on name, DNI, or email.
func (s *PersonService) Search(ctx context.Context, term string) ([]domain.Person, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.New("search term must not be empty", http.StatusBadRequest)
	}
	out, err := repo.SearchPersons(ctx, s.DB, term)
	if err != nil {
		return nil, translate(err, "person")
	}
	return out, nil
}
