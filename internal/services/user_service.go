// Package services – UserService
//
// This file implements account management: registration (which reuses an
// existing person when the DNI is already on file), listing, retrieval,
// partial update, and deactivation. Passwords are hashed with bcrypt before
// they ever reach the repository layer.
package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/apperr"
	"github.com/medrec/go-medrec-backend/internal/auth"
	"github.com/medrec/go-medrec-backend/internal/domain"
	"github.com/medrec/go-medrec-backend/internal/repo"
)

// RegisterUserInput carries the payload for creating an account together
// with the person it belongs to.
type RegisterUserInput struct {
	Email    string            `json:"email"    binding:"required,email"`
	Password string            `json:"password" binding:"required,min=8,max=72"`
	RoleID   int               `json:"role_id"  binding:"required,min=1"`
	Person   CreatePersonInput `json:"person"   binding:"required"`
}

// UpdateUserInput carries a partial account update. The password, when
// present, is re-hashed; RoleID is validated against the roles table.
type UpdateUserInput struct {
	Email    *string `json:"email"    binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
	RoleID   *int    `json:"role_id"  binding:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
}

// UserService manages login accounts and their backing persons.
type UserService struct {
	DB         *gorm.DB
	BcryptCost int
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, bcryptCost int) *UserService {
	return &UserService{DB: db, BcryptCost: bcryptCost}
}

// Register creates an account. If a person with the given DNI already
// exists, the account is attached to it instead of creating a duplicate;
// a second account on the same person, or a duplicate email, yields 409.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*domain.User, error) {
	if _, err := repo.GetRole(ctx, s.DB, in.RoleID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.New("role not found", http.StatusBadRequest)
		}
		return nil, translate(err, "role")
	}

	hash, err := auth.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, apperr.Internal("could not hash password", err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	dni := strings.TrimSpace(in.Person.DNI)

	var created *domain.User
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		person, err := repo.GetPersonByDNI(ctx, tx, dni)
		if errors.Is(err, repo.ErrNotFound) {
			person = &domain.Person{
				DNI:          dni,
				FirstName:    strings.TrimSpace(in.Person.FirstName),
				LastName:     strings.TrimSpace(in.Person.LastName),
				BirthDate:    in.Person.BirthDate,
				Gender:       in.Person.Gender,
				PhoneNumber:  in.Person.PhoneNumber,
				PrimaryEmail: in.Person.PrimaryEmail,
				Address:      in.Person.Address,
				City:         in.Person.City,
				Province:     in.Person.Province,
				Country:      in.Person.Country,
				PostalCode:   in.Person.PostalCode,
			}
			if err := repo.CreatePerson(ctx, tx, person); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		u := &domain.User{
			Email:    email,
			Password: hash,
			RoleID:   in.RoleID,
			PersonID: person.ID,
			IsActive: true,
		}
		if err := repo.CreateUser(ctx, tx, u); err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		if repo.Classify(err) == repo.ViolationUnique {
			return nil, apperr.New("an account with this email already exists", http.StatusConflict).WithCause(err)
		}
		return nil, translate(err, "user")
	}
	return repo.GetUser(ctx, s.DB, created.ID)
}

// List returns all accounts with role and person preloaded.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	out, err := repo.ListUsers(ctx, s.DB)
	if err != nil {
		return nil, translate(err, "user")
	}
	return out, nil
}

// Get fetches one account by ID.
func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	if err := requireID(id, "user"); err != nil {
		return nil, err
	}
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

// Update applies a partial update to an account.
func (s *UserService) Update(ctx context.Context, id int, in UpdateUserInput) (*domain.User, error) {
	if err := requireID(id, "user"); err != nil {
		return nil, err
	}
	if _, err := repo.GetUser(ctx, s.DB, id); err != nil {
		return nil, translate(err, "user")
	}

	fields := map[string]any{}
	if in.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password, s.BcryptCost)
		if err != nil {
			return nil, apperr.Internal("could not hash password", err)
		}
		fields["password"] = hash
	}
	if in.RoleID != nil {
		if _, err := repo.GetRole(ctx, s.DB, *in.RoleID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, apperr.New("role not found", http.StatusBadRequest)
			}
			return nil, translate(err, "role")
		}
		fields["role_id"] = *in.RoleID
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	if len(fields) > 0 {
		if err := repo.UpdateUser(ctx, s.DB, id, fields); err != nil {
			if repo.Classify(err) == repo.ViolationUnique {
				return nil, apperr.New("an account with this email already exists", http.StatusConflict).WithCause(err)
			}
			return nil, translate(err, "user")
		}
	}
	return repo.GetUser(ctx, s.DB, id)
}

// Deactivate disables an account. The row is kept so audit trails and
// issued reports retain a valid reference.
func (s *UserService) Deactivate(ctx context.Context, id int) error {
	if err := requireID(id, "user"); err != nil {
		return err
	}
	if err := repo.DeactivateUser(ctx, s.DB, id); err != nil {
		return translate(err, "user")
	}
	return nil
}
