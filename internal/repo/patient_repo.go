// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Patient
// model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/domain"
)

// CreatePatient inserts p and fills in its generated ID.
func CreatePatient(ctx context.Context, db *gorm.DB, p *domain.Patient) error {
	return db.WithContext(ctx).Create(p).Error
}

// GetPatient fetches a patient by ID with its person preloaded, or
// ErrNotFound if missing. Soft-deleted patients are still returned; callers
// decide whether IsDeleted matters for their operation.
func GetPatient(ctx context.Context, db *gorm.DB, id int) (*domain.Patient, error) {
	var p domain.Patient
	err := db.WithContext(ctx).
		Preload("Person").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPatientByPersonID fetches the patient registered for a person, or
// ErrNotFound if that person is not a patient.
func GetPatientByPersonID(ctx context.Context, db *gorm.DB, personID int) (*domain.Patient, error) {
	var p domain.Patient
	err := db.WithContext(ctx).
		Where("person_id = ?", personID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPatients returns all non-deleted patients with persons preloaded,
// ordered by creation time descending.
func ListPatients(ctx context.Context, db *gorm.DB) ([]domain.Patient, error) {
	var out []domain.Patient
	err := db.WithContext(ctx).
		Preload("Person").
		Where("is_deleted = ?", false).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// UpdatePatient applies the given column updates to the patient with id.
func UpdatePatient(ctx context.Context, db *gorm.DB, id int, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Patient{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// MarkPatientDeleted soft-deletes the patient so historical reports keep a
// valid reference. Returns ErrNotFound when no live row matches.
func MarkPatientDeleted(ctx context.Context, db *gorm.DB, id int) error {
	res := db.WithContext(ctx).
		Model(&domain.Patient{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchPatients returns non-deleted patients whose person matches term on
// first name, last name, or DNI (case-insensitive), ordered by last name.
func SearchPatients(ctx context.Context, db *gorm.DB, term string) ([]domain.Patient, error) {
	like := "%" + term + "%"
	var out []domain.Patient
	err := db.WithContext(ctx).
		Preload("Person").
		Joins("JOIN persons ON persons.id = patients.person_id").
		Where("patients.is_deleted = ?", false).
		Where("persons.first_name LIKE ? OR persons.last_name LIKE ? OR persons.dni LIKE ?",
			like, like, like).
		Order("persons.last_name asc").
		Find(&out).Error
	return out, err
}
