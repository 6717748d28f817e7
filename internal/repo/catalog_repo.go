// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the catalog
// models: medical areas, report types, and health centers. These are small
// reference tables with identical CRUD shapes.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/domain"
)

//
// Medical areas
//

// CreateArea inserts a and fills in its generated ID.
func CreateArea(ctx context.Context, db *gorm.DB, a *domain.MedicalArea) error {
	return db.WithContext(ctx).Create(a).Error
}

// GetArea fetches a medical area by ID, or ErrNotFound if missing.
func GetArea(ctx context.Context, db *gorm.DB, id int) (*domain.MedicalArea, error) {
	var a domain.MedicalArea
	if err := db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAreaByName fetches a medical area by its unique name, or ErrNotFound.
func GetAreaByName(ctx context.Context, db *gorm.DB, name string) (*domain.MedicalArea, error) {
	var a domain.MedicalArea
	if err := db.WithContext(ctx).Where("name = ?", name).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAreas returns all medical areas ordered by name.
func ListAreas(ctx context.Context, db *gorm.DB) ([]domain.MedicalArea, error) {
	var out []domain.MedicalArea
	err := db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// UpdateArea applies the given column updates to the area with id.
func UpdateArea(ctx context.Context, db *gorm.DB, id int, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.MedicalArea{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeleteArea removes the area with id. Areas still referenced by doctors or
// report types fail with a foreign-key violation.
func DeleteArea(ctx context.Context, db *gorm.DB, id int) error {
	res := db.WithContext(ctx).Delete(&domain.MedicalArea{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

//
// Report types
//

// CreateReportType inserts rt and fills in its generated ID.
func CreateReportType(ctx context.Context, db *gorm.DB, rt *domain.ReportType) error {
	return db.WithContext(ctx).Create(rt).Error
}

// GetReportType fetches a report type by ID with its area preloaded, or
// ErrNotFound if missing.
func GetReportType(ctx context.Context, db *gorm.DB, id int) (*domain.ReportType, error) {
	var rt domain.ReportType
	err := db.WithContext(ctx).Preload("Area").First(&rt, id).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// GetReportTypeByName fetches a report type by its unique name, or ErrNotFound.
func GetReportTypeByName(ctx context.Context, db *gorm.DB, name string) (*domain.ReportType, error) {
	var rt domain.ReportType
	if err := db.WithContext(ctx).Where("name = ?", name).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// ListReportTypes returns all report types with areas preloaded, ordered by name.
func ListReportTypes(ctx context.Context, db *gorm.DB) ([]domain.ReportType, error) {
	var out []domain.ReportType
	err := db.WithContext(ctx).Preload("Area").Order("name asc").Find(&out).Error
	return out, err
}

// UpdateReportType applies the given column updates to the report type with id.
func UpdateReportType(ctx context.Context, db *gorm.DB, id int, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.ReportType{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeleteReportType removes the report type with id. Types still referenced
// by reports fail with a foreign-key violation.
func DeleteReportType(ctx context.Context, db *gorm.DB, id int) error {
	res := db.WithContext(ctx).Delete(&domain.ReportType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

//
// Health centers
//

// CreateHealthCenter inserts hc and fills in its generated ID.
func CreateHealthCenter(ctx context.Context, db *gorm.DB, hc *domain.HealthCenter) error {
	return db.WithContext(ctx).Create(hc).Error
}

// GetHealthCenter fetches a health center by ID, or ErrNotFound if missing.
func GetHealthCenter(ctx context.Context, db *gorm.DB, id int) (*domain.HealthCenter, error) {
	var hc domain.HealthCenter
	if err := db.WithContext(ctx).First(&hc, id).Error; err != nil {
		return nil, err
	}
	return &hc, nil
}

// ListHealthCenters returns all health centers ordered by name.
func ListHealthCenters(ctx context.Context, db *gorm.DB) ([]domain.HealthCenter, error) {
	var out []domain.HealthCenter
	err := db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// UpdateHealthCenter applies the given column updates to the center with id.
func UpdateHealthCenter(ctx context.Context, db *gorm.DB, id int, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.HealthCenter{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeleteHealthCenter removes the center with id. Reports referencing the
// center have their center_id cleared by the ON DELETE SET NULL constraint.
func DeleteHealthCenter(ctx context.Context, db *gorm.DB, id int) error {
	res := db.WithContext(ctx).Delete(&domain.HealthCenter{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
