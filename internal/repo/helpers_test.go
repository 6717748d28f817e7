package repo

import (
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/medrec/go-medrec-backend/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

// reportFixture seeds the relation chain one report needs and returns the
// patient, doctor, and report type IDs.
func reportFixture(t *testing.T, db *gorm.DB, dni string) (patientID, doctorID, typeID int) {
	t.Helper()
	person := &domain.Person{DNI: dni, FirstName: "Ana", LastName: "Gomez"}
	mustCreate(t, db, person)
	patient := &domain.Patient{PersonID: person.ID}
	mustCreate(t, db, patient)

	docPerson := &domain.Person{DNI: dni + "d", FirstName: "Luis", LastName: "Perez"}
	mustCreate(t, db, docPerson)
	area := &domain.MedicalArea{Name: "Cardiology " + dni}
	mustCreate(t, db, area)
	doctor := &domain.Doctor{PersonID: docPerson.ID, AreaID: area.ID, LicenseNumber: "LIC-" + dni, IsActive: true}
	mustCreate(t, db, doctor)
	rt := &domain.ReportType{Name: "Echo " + dni, AreaID: area.ID}
	mustCreate(t, db, rt)

	return patient.ID, doctor.ID, rt.ID
}
