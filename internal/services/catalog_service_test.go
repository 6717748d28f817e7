package services

import (
	"context"
	"net/http"
	"testing"
)

func TestArea_CRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewAreaService(db)
	ctx := context.Background()

	a, err := svc.Create(ctx, AreaInput{Name: "Cardiology"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Create(ctx, AreaInput{Name: "Cardiology"})
	assertStatus(t, err, http.StatusConflict)

	name := "Cardiology & Vascular"
	got, err := svc.Update(ctx, a.ID, UpdateAreaInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != name {
		t.Fatalf("expected renamed area, got %q", got.Name)
	}

	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = svc.Get(ctx, a.ID)
	assertStatus(t, err, http.StatusNotFound)
}

func TestArea_Delete_InUse(t *testing.T) {
	db := newTestDB(t)
	svc := NewAreaService(db)
	ctx := context.Background()

	area := seedArea(t, db, "Cardiology")
	person := seedPerson(t, db, "30111222")
	seedDoctor(t, db, person.ID, area.ID, "MN-1")

	err := svc.Delete(ctx, area.ID)
	assertStatus(t, err, http.StatusConflict)
}

func TestReportType_CRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportTypeService(db)
	ctx := context.Background()

	area := seedArea(t, db, "Cardiology")

	rt, err := svc.Create(ctx, ReportTypeInput{Name: "Echocardiogram", AreaID: area.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rt.Area.Name != "Cardiology" {
		t.Fatalf("expected preloaded area, got %+v", rt.Area)
	}

	_, err = svc.Create(ctx, ReportTypeInput{Name: "Echocardiogram", AreaID: area.ID})
	assertStatus(t, err, http.StatusConflict)

	_, err = svc.Create(ctx, ReportTypeInput{Name: "X-Ray", AreaID: 9999})
	assertStatus(t, err, http.StatusBadRequest)

	other := seedArea(t, db, "Radiology")
	got, err := svc.Update(ctx, rt.ID, UpdateReportTypeInput{AreaID: &other.ID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.AreaID != other.ID {
		t.Fatalf("expected repointed area, got %d", got.AreaID)
	}

	if err := svc.Delete(ctx, rt.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestHealthCenter_CRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewHealthCenterService(db)
	ctx := context.Background()

	city := "Rosario"
	hc, err := svc.Create(ctx, HealthCenterInput{Name: "Hospital Central", City: &city})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Create(ctx, HealthCenterInput{Name: "Hospital Central"})
	assertStatus(t, err, http.StatusConflict)

	addr := "Av. Siempre Viva 123"
	got, err := svc.Update(ctx, hc.ID, UpdateHealthCenterInput{Address: &addr})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Address == nil || *got.Address != addr {
		t.Fatalf("unexpected center after update: %+v", got)
	}

	if err := svc.Delete(ctx, hc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = svc.Get(ctx, hc.ID)
	assertStatus(t, err, http.StatusNotFound)
}
