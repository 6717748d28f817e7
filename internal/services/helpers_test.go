package services

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/medrec/go-medrec-backend/internal/domain"
	"github.com/medrec/go-medrec-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(
		&domain.Role{}, &domain.Person{}, &domain.User{},
		&domain.Patient{}, &domain.Doctor{},
		&domain.MedicalArea{}, &domain.ReportType{}, &domain.HealthCenter{},
		&domain.MedicalReport{}, &domain.ReportImage{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := repo.SeedRoles(context.Background(), db); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	return db
}

func seedPerson(t *testing.T, db *gorm.DB, dni string) *domain.Person {
	t.Helper()
	p := &domain.Person{DNI: dni, FirstName: "Ana", LastName: "Gomez"}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed person: %v", err)
	}
	return p
}

func seedArea(t *testing.T, db *gorm.DB, name string) *domain.MedicalArea {
	t.Helper()
	a := &domain.MedicalArea{Name: name}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed area: %v", err)
	}
	return a
}

func seedPatient(t *testing.T, db *gorm.DB, personID int) *domain.Patient {
	t.Helper()
	p := &domain.Patient{PersonID: personID}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return p
}

func seedDoctor(t *testing.T, db *gorm.DB, personID, areaID int, license string) *domain.Doctor {
	t.Helper()
	d := &domain.Doctor{PersonID: personID, AreaID: areaID, LicenseNumber: license, IsActive: true}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	return d
}

func seedReportType(t *testing.T, db *gorm.DB, areaID int, name string) *domain.ReportType {
	t.Helper()
	rt := &domain.ReportType{Name: name, AreaID: areaID}
	if err := db.Create(rt).Error; err != nil {
		t.Fatalf("seed report type: %v", err)
	}
	return rt
}

func roleID(t *testing.T, db *gorm.DB, name string) int {
	t.Helper()
	var r domain.Role
	if err := db.Where("name = ?", name).First(&r).Error; err != nil {
		t.Fatalf("lookup role %q: %v", name, err)
	}
	return r.ID
}
