package services

import (
	"context"
	"net/http"
	"testing"
)

func TestDoctor_Create(t *testing.T) {
	db := newTestDB(t)
	svc := NewDoctorService(db)
	ctx := context.Background()

	person := seedPerson(t, db, "30111222")
	area := seedArea(t, db, "Cardiology")

	d, err := svc.Create(ctx, CreateDoctorInput{
		PersonID:      person.ID,
		LicenseNumber: " MN-1234 ",
		AreaID:        area.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.LicenseNumber != "MN-1234" {
		t.Fatalf("expected trimmed license, got %q", d.LicenseNumber)
	}
	if !d.IsActive || d.Area.Name != "Cardiology" {
		t.Fatalf("unexpected doctor: %+v", d)
	}

	// duplicate license
	other := seedPerson(t, db, "40555666")
	_, err = svc.Create(ctx, CreateDoctorInput{PersonID: other.ID, LicenseNumber: "MN-1234", AreaID: area.ID})
	assertStatus(t, err, http.StatusConflict)

	// dangling references report 400 with a named entity
	_, err = svc.Create(ctx, CreateDoctorInput{PersonID: 9999, LicenseNumber: "MN-9", AreaID: area.ID})
	assertStatus(t, err, http.StatusBadRequest)
	_, err = svc.Create(ctx, CreateDoctorInput{PersonID: person.ID, LicenseNumber: "MN-9", AreaID: 9999})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestDoctor_Update(t *testing.T) {
	db := newTestDB(t)
	svc := NewDoctorService(db)
	ctx := context.Background()

	person := seedPerson(t, db, "30111222")
	area := seedArea(t, db, "Cardiology")
	radiology := seedArea(t, db, "Radiology")
	d := seedDoctor(t, db, person.ID, area.ID, "MN-1")

	got, err := svc.Update(ctx, d.ID, UpdateDoctorInput{AreaID: &radiology.ID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.AreaID != radiology.ID {
		t.Fatalf("expected area change, got %d", got.AreaID)
	}

	bad := 9999
	_, err = svc.Update(ctx, d.ID, UpdateDoctorInput{AreaID: &bad})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestDoctor_Delete_Deactivates(t *testing.T) {
	db := newTestDB(t)
	svc := NewDoctorService(db)
	ctx := context.Background()

	person := seedPerson(t, db, "30111222")
	area := seedArea(t, db, "Cardiology")
	d := seedDoctor(t, db, person.ID, area.ID, "MN-1")

	if err := svc.Delete(ctx, d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := svc.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got.IsActive {
		t.Fatal("expected doctor deactivated, not removed")
	}

	err = svc.Delete(ctx, 9999)
	assertStatus(t, err, http.StatusNotFound)
}
