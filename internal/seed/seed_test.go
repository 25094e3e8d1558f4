package seed

import (
	"testing"
	"time"

	"opsdesk/internal/infra/persistence/memory"
	"opsdesk/internal/kpi"
	"opsdesk/pkg/domain"
)

var fixedNow = time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

func TestHotelSeedDerivesOccupancy(t *testing.T) {
	store := memory.NewStore(Hotel(fixedNow), memory.WithNow(func() time.Time { return fixedNow }))
	var got kpi.KPIs
	if err := store.View(t.Context(), func(v domain.StateView) error {
		got = kpi.Compute(v, fixedNow, time.UTC)
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	if got.TotalRooms != 8 || got.OccupiedRooms != 2 {
		t.Fatalf("expected 8 rooms with 2 occupied, got %+v", got)
	}
	if got.CleaningRooms != 1 || got.MaintenanceRooms != 1 {
		t.Fatalf("expected flags to drive cleaning/maintenance, got %+v", got)
	}
	if got.OccupancyRate != 25 {
		t.Fatalf("expected 25%% occupancy, got %d", got.OccupancyRate)
	}
	if got.TodayCheckIns != 1 || got.TodayCheckOuts != 1 {
		t.Fatalf("expected one arrival and one departure today, got %d/%d", got.TodayCheckIns, got.TodayCheckOuts)
	}
}

func TestHospitalSeedDerivesDoctors(t *testing.T) {
	store := memory.NewStore(Hospital(fixedNow), memory.WithNow(func() time.Time { return fixedNow }))
	statuses := map[string]domain.DoctorStatus{}
	_ = store.View(t.Context(), func(v domain.StateView) error {
		for _, d := range v.ListDoctors() {
			statuses[d.ID] = d.Status
		}
		return nil
	})
	want := map[string]domain.DoctorStatus{
		"doc-1": domain.DoctorAvailable,
		"doc-2": domain.DoctorInConsultation,
		"doc-3": domain.DoctorAvailable,
		"doc-4": domain.DoctorOffDuty,
	}
	for id, status := range want {
		if statuses[id] != status {
			t.Fatalf("doctor %s: expected %s, got %s", id, status, statuses[id])
		}
	}
}

func TestSeedReferencesResolve(t *testing.T) {
	for _, app := range []App{AppHotel, AppHospital} {
		ds := For(app, fixedNow)
		rooms := map[string]bool{}
		for _, r := range ds.Rooms {
			rooms[r.ID] = true
		}
		staff := map[string]string{}
		for _, s := range ds.Staff {
			staff[s.ID] = s.Name
		}
		doctors := map[string]bool{}
		for _, d := range ds.Doctors {
			doctors[d.ID] = true
		}
		for _, r := range ds.Reservations {
			if !rooms[r.RoomID] {
				t.Fatalf("%s: reservation %s references unknown room %s", app, r.ID, r.RoomID)
			}
		}
		for _, task := range ds.Tasks {
			if !rooms[task.RoomID] {
				t.Fatalf("%s: task %s references unknown room %s", app, task.ID, task.RoomID)
			}
			if task.AssigneeID != "" && staff[task.AssigneeID] != task.AssigneeName {
				t.Fatalf("%s: task %s assignee name mismatch", app, task.ID)
			}
		}
		for _, a := range ds.Appointments {
			if !doctors[a.DoctorID] {
				t.Fatalf("%s: appointment %s references unknown doctor %s", app, a.ID, a.DoctorID)
			}
		}
		for _, f := range ds.RoomFlags {
			if !rooms[f.RoomID] {
				t.Fatalf("%s: flag references unknown room %s", app, f.RoomID)
			}
		}
	}
}

func TestAppKeys(t *testing.T) {
	if AppHotel.SnapshotKey() != "hotel-admin-data" || AppHospital.SnapshotKey() != "hospital-admin-data" {
		t.Fatalf("unexpected snapshot keys")
	}
	if App("spa").Valid() {
		t.Fatalf("unknown app should be invalid")
	}
	if ds := For("spa", fixedNow); len(ds.Rooms) != 0 || len(ds.Staff) != 0 {
		t.Fatalf("unknown app should get an empty dataset")
	}
}
