// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User and
// Role models.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/domain"
)

// CreateUser inserts u and fills in its generated ID.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return db.WithContext(ctx).Create(u).Error
}

// GetUser fetches a user by ID with its role and person preloaded, or
// ErrNotFound if missing.
func GetUser(ctx context.Context, db *gorm.DB, id int) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Preload("Role").
		Preload("Person").
		First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail fetches a user by email with its role preloaded, or
// ErrNotFound if missing. Used by login and the auth guard.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns all users with role and person preloaded, ordered by
// creation time descending.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Preload("Role").
		Preload("Person").
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// UpdateUser applies the given column updates to the user with id.
func UpdateUser(ctx context.Context, db *gorm.DB, id int, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeactivateUser marks the user inactive instead of deleting the row, so
// audit references stay valid. Returns ErrNotFound when no row matches.
func DeactivateUser(ctx context.Context, db *gorm.DB, id int) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetRole fetches a role by ID, or ErrNotFound if missing.
func GetRole(ctx context.Context, db *gorm.DB, id int) (*domain.Role, error) {
	var r domain.Role
	if err := db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}
