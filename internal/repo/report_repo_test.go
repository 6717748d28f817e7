package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medrec/go-medrec-backend/internal/domain"
)

func TestCreateReport_WithImages(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	patientID, doctorID, typeID := reportFixture(t, db, "50111222")

	imgType := "xray"
	r := &domain.MedicalReport{
		PatientID: patientID, DoctorID: doctorID, ReportTypeID: typeID,
		Title: "Chest scan", Content: "No findings.",
	}
	out, err := CreateReport(ctx, db, r, []domain.ReportImage{
		{URL: "https://img.example.com/1.png", ImageType: &imgType},
		{URL: "https://img.example.com/2.png"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(out.Images) != 2 {
		t.Fatalf("images persisted = %d; want 2", len(out.Images))
	}
	if out.Patient.Person.DNI != "50111222" {
		t.Fatalf("nested preload missing: %+v", out.Patient)
	}
	if n, _ := CountImages(ctx, db, out.ID); n != 2 {
		t.Fatalf("CountImages = %d; want 2", n)
	}
}

func TestCreateReport_DanglingReference(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	patientID, _, typeID := reportFixture(t, db, "50999888")

	r := &domain.MedicalReport{
		PatientID: patientID, DoctorID: 9999, ReportTypeID: typeID,
		Title: "Doomed", Content: "x",
	}
	_, err := CreateReport(ctx, db, r, []domain.ReportImage{
		{URL: "https://img.example.com/x.png"},
	})
	if err == nil || Classify(err) != ViolationForeignKey {
		t.Fatalf("dangling doctor: got %v (%v); want FK violation", Classify(err), err)
	}
	var count int64
	db.Model(&domain.MedicalReport{}).Count(&count)
	if count != 0 {
		t.Fatalf("report row survived failed create: count=%d", count)
	}
	db.Model(&domain.ReportImage{}).Count(&count)
	if count != 0 {
		t.Fatalf("image row survived failed create: count=%d", count)
	}
}

func TestListReportsPage_FiltersAndOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	patientID, doctorID, typeID := reportFixture(t, db, "51111222")
	otherPatient, otherDoctor, otherType := reportFixture(t, db, "51333444")

	mk := func(pid, did, tid int, title string, created time.Time) {
		r := &domain.MedicalReport{
			PatientID: pid, DoctorID: did, ReportTypeID: tid,
			Title: title, Content: "c", CreatedAt: created,
		}
		mustCreate(t, db, r)
	}
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mk(patientID, doctorID, typeID, "older", base)
	mk(patientID, doctorID, typeID, "newer", base.Add(48*time.Hour))
	mk(otherPatient, otherDoctor, otherType, "other", base.Add(24*time.Hour))

	total, err := CountReports(ctx, db, ReportFilters{PatientID: patientID})
	if err != nil || total != 2 {
		t.Fatalf("count by patient: %v, n=%d", err, total)
	}

	items, err := ListReportsPage(ctx, db, ReportFilters{PatientID: patientID}, 0, 10)
	if err != nil || len(items) != 2 {
		t.Fatalf("list by patient: %v, n=%d", err, len(items))
	}
	if items[0].Title != "newer" {
		t.Fatalf("order desc broken: first=%q", items[0].Title)
	}

	from := base.Add(12 * time.Hour)
	items, err = ListReportsPage(ctx, db, ReportFilters{DateFrom: &from}, 0, 10)
	if err != nil || len(items) != 2 {
		t.Fatalf("date_from filter: %v, n=%d", err, len(items))
	}

	items, err = ListReportsPage(ctx, db, ReportFilters{SearchTerm: "51333"}, 0, 10)
	if err != nil || len(items) != 1 || items[0].Title != "other" {
		t.Fatalf("search by patient DNI: %v, %+v", err, items)
	}

	// Paging: size 1 picks the newest first.
	items, err = ListReportsPage(ctx, db, ReportFilters{}, 0, 1)
	if err != nil || len(items) != 1 || items[0].Title != "newer" {
		t.Fatalf("page 1: %v, %+v", err, items)
	}
	items, _ = ListReportsPage(ctx, db, ReportFilters{}, 1, 1)
	if len(items) != 1 || items[0].Title != "other" {
		t.Fatalf("page 2: %+v", items)
	}
}

func TestDeleteReport_CascadesImages(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	patientID, doctorID, typeID := reportFixture(t, db, "52111222")

	r := &domain.MedicalReport{
		PatientID: patientID, DoctorID: doctorID, ReportTypeID: typeID,
		Title: "t", Content: "c",
	}
	out, err := CreateReport(ctx, db, r, []domain.ReportImage{{URL: "https://img.example.com/a.png"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := DeleteReport(ctx, db, out.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n, _ := CountImages(ctx, db, out.ID); n != 0 {
		t.Fatalf("images survived delete: %d", n)
	}
	if err := DeleteReport(ctx, db, out.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: got %v; want ErrNotFound", err)
	}
}

func TestAddImages(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	patientID, doctorID, typeID := reportFixture(t, db, "53111222")

	out, err := CreateReport(ctx, db, &domain.MedicalReport{
		PatientID: patientID, DoctorID: doctorID, ReportTypeID: typeID,
		Title: "t", Content: "c",
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	added, err := AddImages(ctx, db, out.ID, []domain.ReportImage{
		{URL: "https://img.example.com/1.png"},
		{URL: "https://img.example.com/2.png"},
	})
	if err != nil || len(added) != 2 {
		t.Fatalf("add: %v, n=%d", err, len(added))
	}
	for _, img := range added {
		if img.ReportID != out.ID {
			t.Fatalf("report id not stamped: %+v", img)
		}
	}
	if n, _ := CountImages(ctx, db, out.ID); n != 2 {
		t.Fatalf("CountImages = %d; want 2", n)
	}
}
