// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// MedicalReport and ReportImage models, including filtered pagination and
// free-text search across report and patient fields.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/domain"
)

// ReportFilters narrows report list queries. Zero values mean "no filter".
type ReportFilters struct {
	PatientID    int
	DoctorID     int
	ReportTypeID int
	CenterID     int
	DateFrom     *time.Time
	DateTo       *time.Time
	SearchTerm   string
}

// reportQuery composes the WHERE clause shared by CountReports and
// ListReportsPage from f.
func reportQuery(ctx context.Context, db *gorm.DB, f ReportFilters) *gorm.DB {
	q := db.WithContext(ctx).Model(&domain.MedicalReport{})
	if f.PatientID > 0 {
		q = q.Where("medical_reports.patient_id = ?", f.PatientID)
	}
	if f.DoctorID > 0 {
		q = q.Where("medical_reports.doctor_id = ?", f.DoctorID)
	}
	if f.ReportTypeID > 0 {
		q = q.Where("medical_reports.report_type_id = ?", f.ReportTypeID)
	}
	if f.CenterID > 0 {
		q = q.Where("medical_reports.center_id = ?", f.CenterID)
	}
	if f.DateFrom != nil {
		q = q.Where("medical_reports.created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("medical_reports.created_at <= ?", *f.DateTo)
	}
	if f.SearchTerm != "" {
		like := "%" + f.SearchTerm + "%"
		q = q.Joins("JOIN patients ON patients.id = medical_reports.patient_id").
			Joins("JOIN persons ON persons.id = patients.person_id").
			Where("medical_reports.title LIKE ? OR medical_reports.content LIKE ? OR persons.first_name LIKE ? OR persons.last_name LIKE ? OR persons.dni LIKE ?",
				like, like, like, like, like)
	}
	return q
}

// CountReports returns the number of reports matching f.
func CountReports(ctx context.Context, db *gorm.DB, f ReportFilters) (int64, error) {
	var total int64
	err := reportQuery(ctx, db, f).Count(&total).Error
	return total, err
}

// ListReportsPage returns a page of reports matching f, ordered by creation
// time descending, with all relations preloaded. Use CountReports for
// pagination metadata.
func ListReportsPage(ctx context.Context, db *gorm.DB, f ReportFilters, offset, limit int) ([]domain.MedicalReport, error) {
	var out []domain.MedicalReport
	err := reportQuery(ctx, db, f).
		Preload("Patient.Person").
		Preload("Doctor.Person").
		Preload("ReportType.Area").
		Preload("HealthCenter").
		Preload("Images").
		Order("medical_reports.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetReport fetches a report by ID with all relations preloaded, or
// ErrNotFound if missing.
func GetReport(ctx context.Context, db *gorm.DB, id int) (*domain.MedicalReport, error) {
	var r domain.MedicalReport
	err := db.WithContext(ctx).
		Preload("Patient.Person").
		Preload("Doctor.Person").
		Preload("ReportType.Area").
		Preload("HealthCenter").
		Preload("Images").
		First(&r, id).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReport inserts the report and its images in one transaction, then
// returns the persisted report with relations preloaded.
func CreateReport(ctx context.Context, db *gorm.DB, r *domain.MedicalReport, images []domain.ReportImage) (*domain.MedicalReport, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Patient", "Doctor", "ReportType", "HealthCenter", "Images").Create(r).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].ReportID = r.ID
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetReport(ctx, db, r.ID)
}

// UpdateReport applies the given column updates to the report with id.
func UpdateReport(ctx context.Context, db *gorm.DB, id int, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.MedicalReport{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeleteReport removes the report and its images in one transaction.
// Returns ErrNotFound when the report row does not exist.
func DeleteReport(ctx context.Context, db *gorm.DB, id int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&domain.ReportImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.MedicalReport{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SearchReports returns up to limit reports whose title, content, or patient
// identity matches term, newest first, with relations preloaded.
func SearchReports(ctx context.Context, db *gorm.DB, term string, limit int) ([]domain.MedicalReport, error) {
	if limit <= 0 {
		limit = 50
	}
	like := "%" + term + "%"
	var out []domain.MedicalReport
	err := db.WithContext(ctx).
		Preload("Patient.Person").
		Preload("Doctor.Person").
		Preload("ReportType.Area").
		Preload("HealthCenter").
		Preload("Images").
		Joins("JOIN patients ON patients.id = medical_reports.patient_id").
		Joins("JOIN persons ON persons.id = patients.person_id").
		Where("medical_reports.title LIKE ? OR medical_reports.content LIKE ? OR persons.first_name LIKE ? OR persons.last_name LIKE ? OR persons.dni LIKE ?",
			like, like, like, like, like).
		Order("medical_reports.created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountImages returns the number of images attached to reportID.
func CountImages(ctx context.Context, db *gorm.DB, reportID int) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.ReportImage{}).
		Where("report_id = ?", reportID).
		Count(&n).Error
	return n, err
}

// AddImages attaches imgs to reportID in one transaction.
func AddImages(ctx context.Context, db *gorm.DB, reportID int, imgs []domain.ReportImage) ([]domain.ReportImage, error) {
	for i := range imgs {
		imgs[i].ReportID = reportID
	}
	if err := db.WithContext(ctx).Create(&imgs).Error; err != nil {
		return nil, err
	}
	return imgs, nil
}
