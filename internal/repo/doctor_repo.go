// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Doctor
// model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/domain"
)

// CreateDoctor inserts d and fills in its generated ID.
func CreateDoctor(ctx context.Context, db *gorm.DB, d *domain.Doctor) error {
	return db.WithContext(ctx).Create(d).Error
}

// GetDoctor fetches a doctor by ID with person and area preloaded, or
// ErrNotFound if missing.
func GetDoctor(ctx context.Context, db *gorm.DB, id int) (*domain.Doctor, error) {
	var d domain.Doctor
	err := db.WithContext(ctx).
		Preload("Person").
		Preload("Area").
		First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDoctors returns all doctors with persons and areas preloaded, ordered
// by creation time descending. Inactive doctors are included; callers filter
// when assigning new work.
func ListDoctors(ctx context.Context, db *gorm.DB) ([]domain.Doctor, error) {
	var out []domain.Doctor
	err := db.WithContext(ctx).
		Preload("Person").
		Preload("Area").
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// UpdateDoctor applies the given column updates to the doctor with id.
func UpdateDoctor(ctx context.Context, db *gorm.DB, id int, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Doctor{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeactivateDoctor marks the doctor inactive instead of deleting the row, so
// existing reports keep a valid author. Returns ErrNotFound when no active
// row matches.
func DeactivateDoctor(ctx context.Context, db *gorm.DB, id int) error {
	res := db.WithContext(ctx).
		Model(&domain.Doctor{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
