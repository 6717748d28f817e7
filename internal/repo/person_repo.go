// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Person
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a person is not found, functions return gorm.ErrRecordNotFound
//     (also exported in this package as ErrNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated; use Classify to decode it.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/domain"
)

// CreatePerson inserts p and fills in its generated ID.
func CreatePerson(ctx context.Context, db *gorm.DB, p *domain.Person) error {
	return db.WithContext(ctx).Create(p).Error
}

// ListPersons returns all persons ordered by creation time descending.
func ListPersons(ctx context.Context, db *gorm.DB) ([]domain.Person, error) {
	var out []domain.Person
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetPerson fetches a single person by ID, or ErrNotFound if missing.
func GetPerson(ctx context.Context, db *gorm.DB, id int) (*domain.Person, error) {
	var p domain.Person
	if err := db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPersonByDNI fetches a single person by DNI, or ErrNotFound if missing.
func GetPersonByDNI(ctx context.Context, db *gorm.DB, dni string) (*domain.Person, error) {
	var p domain.Person
	if err := db.WithContext(ctx).Where("dni = ?", dni).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePerson applies the given column updates to the person with id.
// Callers verify existence beforehand; a zero-row update is not an error here.
func UpdatePerson(ctx context.Context, db *gorm.DB, id int, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Person{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeletePerson removes the person with id. Referential integrity is enforced
// by the database: deleting a person still referenced by a user, patient, or
// doctor fails with a foreign-key violation.
func DeletePerson(ctx context.Context, db *gorm.DB, id int) error {
	res := db.WithContext(ctx).Delete(&domain.Person{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchPersons returns persons whose first name, last name, DNI, or primary
// email contains term (case-insensitive), ordered by last name.
func SearchPersons(ctx context.Context, db *gorm.DB, term string) ([]domain.Person, error) {
	like := "%" + term + "%"
	var out []domain.Person
	err := db.WithContext(ctx).
		Where("first_name LIKE ? OR last_name LIKE ? OR dni LIKE ? OR primary_email LIKE ?",
			like, like, like, like).
		Order("last_name asc").
		Find(&out).Error
	return out, err
}

// PersonsStats returns aggregate metadata for the persons table: the total
// number of rows and the maximum UpdatedAt timestamp among them. Used by the
// HTTP layer for weak ETag generation on list responses. When the table is
// empty, count is 0 and maxUpdatedAt is nil.
func PersonsStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Person{})

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
