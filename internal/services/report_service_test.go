package services

import (
	"context"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/domain"
)

type reportFixture struct {
	patient    *domain.Patient
	doctor     *domain.Doctor
	reportType *domain.ReportType
}

func newReportFixture(t *testing.T, db *gorm.DB) reportFixture {
	t.Helper()
	pp := seedPerson(t, db, "30111222")
	dp := seedPerson(t, db, "40555666")
	area := seedArea(t, db, "Cardiology")
	return reportFixture{
		patient:    seedPatient(t, db, pp.ID),
		doctor:     seedDoctor(t, db, dp.ID, area.ID, "MN-1"),
		reportType: seedReportType(t, db, area.ID, "Echocardiogram"),
	}
}

func (f reportFixture) createInput() CreateReportInput {
	return CreateReportInput{
		PatientID:    f.patient.ID,
		DoctorID:     f.doctor.ID,
		ReportTypeID: f.reportType.ID,
		Title:        "Routine checkup",
		Content:      "No abnormalities found.",
	}
}

func TestReport_Create_WithImages(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()
	fx := newReportFixture(t, db)

	in := fx.createInput()
	in.Images = []ReportImageInput{
		{URL: "https://img.example.com/1.png"},
		{URL: "https://img.example.com/2.png"},
	}
	r, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(r.Images) != 2 {
		t.Fatalf("expected 2 images persisted, got %d", len(r.Images))
	}
	if r.Patient.Person.DNI != "30111222" || r.ReportType.Area.Name != "Cardiology" {
		t.Fatalf("expected nested relations preloaded: %+v", r)
	}
}

func TestReport_Create_BadReferences(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()
	fx := newReportFixture(t, db)

	in := fx.createInput()
	in.PatientID = 9999
	_, err := svc.Create(ctx, in)
	assertStatus(t, err, http.StatusBadRequest)

	in = fx.createInput()
	in.DoctorID = 9999
	_, err = svc.Create(ctx, in)
	assertStatus(t, err, http.StatusBadRequest)

	in = fx.createInput()
	in.ReportTypeID = 9999
	_, err = svc.Create(ctx, in)
	assertStatus(t, err, http.StatusBadRequest)

	bad := 9999
	in = fx.createInput()
	in.CenterID = &bad
	_, err = svc.Create(ctx, in)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestReport_Create_InactiveDoctorAndDeletedPatient(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()
	fx := newReportFixture(t, db)

	db.Model(fx.doctor).Update("is_active", false)
	_, err := svc.Create(ctx, fx.createInput())
	assertStatus(t, err, http.StatusBadRequest)

	db.Model(fx.doctor).Update("is_active", true)
	db.Model(fx.patient).Update("is_deleted", true)
	_, err = svc.Create(ctx, fx.createInput())
	assertStatus(t, err, http.StatusBadRequest)
}

func TestReport_ImageCap(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()
	fx := newReportFixture(t, db)

	in := fx.createInput()
	for i := 0; i <= domain.MaxImagesPerReport; i++ {
		in.Images = append(in.Images, ReportImageInput{URL: "https://img.example.com/x.png"})
	}
	_, err := svc.Create(ctx, in)
	assertStatus(t, err, http.StatusBadRequest)

	// cap also applies cumulatively via AddImages
	in = fx.createInput()
	for i := 0; i < domain.MaxImagesPerReport-1; i++ {
		in.Images = append(in.Images, ReportImageInput{URL: "https://img.example.com/x.png"})
	}
	r, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = svc.AddImages(ctx, r.ID, []ReportImageInput{
		{URL: "https://img.example.com/a.png"},
		{URL: "https://img.example.com/b.png"},
	})
	assertStatus(t, err, http.StatusBadRequest)

	added, err := svc.AddImages(ctx, r.ID, []ReportImageInput{{URL: "https://img.example.com/a.png"}})
	if err != nil {
		t.Fatalf("add final image: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("expected 1 image added, got %d", len(added))
	}
}

func TestReport_List_FiltersAndPaging(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()
	fx := newReportFixture(t, db)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, fx.createInput()); err != nil {
			t.Fatalf("seed report %d: %v", i, err)
		}
	}

	page, err := svc.List(ctx, ListReportsInput{PatientID: fx.patient.ID, Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 2 || page.TotalPages != 2 || !page.HasNext {
		t.Fatalf("unexpected page: total=%d items=%d pages=%d hasNext=%v", page.Total, len(page.Items), page.TotalPages, page.HasNext)
	}

	page, err = svc.List(ctx, ListReportsInput{PatientID: 424242})
	if err != nil {
		t.Fatalf("list missing patient: %v", err)
	}
	if page.Total != 0 || len(page.Items) != 0 {
		t.Fatalf("expected empty page, got total=%d", page.Total)
	}
}

func TestReport_Search(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()
	fx := newReportFixture(t, db)

	in := fx.createInput()
	in.Title = "Post-op followup"
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, fx.createInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := svc.Search(ctx, "Post-op")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 title match, got %d", len(out))
	}

	// patient DNI also matches
	out, err = svc.Search(ctx, "30111222")
	if err != nil {
		t.Fatalf("search by dni: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected both reports for patient DNI, got %d", len(out))
	}
}

func TestReport_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()
	fx := newReportFixture(t, db)

	r, err := svc.Create(ctx, fx.createInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Amended title"
	got, err := svc.Update(ctx, r.ID, UpdateReportInput{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "Amended title" {
		t.Fatalf("unexpected title: %q", got.Title)
	}

	bad := 9999
	_, err = svc.Update(ctx, r.ID, UpdateReportInput{CenterID: &bad})
	assertStatus(t, err, http.StatusBadRequest)

	if _, err := svc.AddImages(ctx, r.ID, []ReportImageInput{{URL: "https://img.example.com/a.png"}}); err != nil {
		t.Fatalf("add image: %v", err)
	}
	if err := svc.Delete(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var imgs int64
	db.Model(&domain.ReportImage{}).Where("report_id = ?", r.ID).Count(&imgs)
	if imgs != 0 {
		t.Fatalf("expected images removed with report, got %d", imgs)
	}

	err = svc.Delete(ctx, r.ID)
	assertStatus(t, err, http.StatusNotFound)
}
