package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"opsdesk/pkg/domain"
)

var fixedNow = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func testDataset() domain.Dataset {
	today := domain.CivilDate(fixedNow)
	return domain.Dataset{
		Rooms: []domain.Room{
			{ID: "room-201", Number: "201"},
			{ID: "room-305", Number: "305"},
			{ID: "room-412", Number: "412"},
		},
		Reservations: []domain.Reservation{
			{ID: "res-1", RoomID: "room-201", CheckIn: today.AddDate(0, 0, -1), CheckOut: today.AddDate(0, 0, 1), Status: domain.ReservationCheckedIn},
			{ID: "res-2", RoomID: "room-305", CheckIn: today, CheckOut: today.AddDate(0, 0, 3), Status: domain.ReservationConfirmed},
		},
		Doctors: []domain.Doctor{{ID: "doc-1", OnDuty: true}},
		Appointments: []domain.Appointment{
			{ID: "appt-1", DoctorID: "doc-1", Date: today, Time: "09:00", Status: domain.AppointmentConfirmed},
		},
		Tasks:     []domain.HousekeepingTask{{ID: "task-1", RoomID: "room-412", Status: domain.WorkPending, Priority: domain.PriorityHigh}},
		Inventory: []domain.InventoryItem{{ID: "inv-1", CurrentStock: 3, MinStock: 5}},
		Staff:     []domain.StaffMember{{ID: "staff-1", Name: "Ana", Status: domain.StaffOnDuty}},
	}
}

func newTestStore() *Store {
	return NewStore(testDataset(), WithNow(func() time.Time { return fixedNow }))
}

func listRooms(t *testing.T, s *Store) []domain.Room {
	t.Helper()
	var rooms []domain.Room
	if err := s.View(context.Background(), func(v domain.StateView) error {
		rooms = v.ListRooms()
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	return rooms
}

func TestNewStoreDerivesRooms(t *testing.T) {
	rooms := listRooms(t, newTestStore())
	if rooms[0].Status != domain.RoomOccupied || rooms[0].CurrentReservationID != "res-1" {
		t.Fatalf("expected 201 occupied, got %+v", rooms[0])
	}
	if rooms[1].Status != domain.RoomAvailable || rooms[1].NextReservationID != "res-2" {
		t.Fatalf("expected 305 available with next res-2, got %+v", rooms[1])
	}
}

func TestTransactionRecomputesRoomsOnReservationChange(t *testing.T) {
	s := newTestStore()
	changes, err := s.RunInTransaction(context.Background(), func(tx *Transaction) error {
		_, err := tx.UpdateReservation("res-2", func(r *domain.Reservation) error {
			r.Status = domain.ReservationCheckedIn
			return nil
		})
		return err
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if len(changes) != 1 || changes[0].Entity != domain.EntityReservation || changes[0].ID != "res-2" {
		t.Fatalf("unexpected changes %+v", changes)
	}
	if rooms := listRooms(t, s); rooms[1].Status != domain.RoomOccupied {
		t.Fatalf("expected 305 occupied after check-in, got %s", rooms[1].Status)
	}
}

func TestTransactionRollsBackOnError(t *testing.T) {
	s := newTestStore()
	boom := errors.New("boom")
	_, err := s.RunInTransaction(context.Background(), func(tx *Transaction) error {
		if _, err := tx.UpdateStaff("staff-1", func(m *domain.StaffMember) error {
			m.Status = domain.StaffBreak
			return nil
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got := s.ExportState().Staff[0].Status; got != domain.StaffOnDuty {
		t.Fatalf("expected rollback, staff status %s", got)
	}
}

func TestRoomFlagsDriveStatus(t *testing.T) {
	s := newTestStore()
	_, err := s.RunInTransaction(context.Background(), func(tx *Transaction) error {
		flag, err := tx.SetRoomFlag(domain.RoomFlag{RoomID: "room-412", Status: domain.RoomMaintenance, SetBy: "ops"})
		if err != nil {
			return err
		}
		if !flag.SetAt.Equal(fixedNow) {
			t.Errorf("expected flag stamped with transaction time, got %s", flag.SetAt)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("flag: %v", err)
	}
	if rooms := listRooms(t, s); rooms[2].Status != domain.RoomMaintenance {
		t.Fatalf("expected maintenance, got %s", rooms[2].Status)
	}

	_, err = s.RunInTransaction(context.Background(), func(tx *Transaction) error {
		if !tx.ClearRoomFlag("room-412") {
			t.Errorf("expected flag to be cleared")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if rooms := listRooms(t, s); rooms[2].Status != domain.RoomAvailable {
		t.Fatalf("expected available after clearing, got %s", rooms[2].Status)
	}
}

func TestSetRoomFlagValidation(t *testing.T) {
	s := newTestStore()
	_, err := s.RunInTransaction(context.Background(), func(tx *Transaction) error {
		_, err := tx.SetRoomFlag(domain.RoomFlag{RoomID: "room-999", Status: domain.RoomCleaning})
		return err
	})
	var nf domain.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
	_, err = s.RunInTransaction(context.Background(), func(tx *Transaction) error {
		_, err := tx.SetRoomFlag(domain.RoomFlag{RoomID: "room-201", Status: domain.RoomOccupied})
		return err
	})
	var invalid domain.ErrInvalidEntity
	if !errors.As(err, &invalid) {
		t.Fatalf("expected invalid entity, got %v", err)
	}
}

func TestAppointmentChangeRecomputesDoctors(t *testing.T) {
	s := newTestStore()
	_, err := s.RunInTransaction(context.Background(), func(tx *Transaction) error {
		_, err := tx.UpdateAppointment("appt-1", func(a *domain.Appointment) error {
			a.Status = domain.AppointmentInProgress
			return nil
		})
		return err
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	var doctors []domain.Doctor
	_ = s.View(context.Background(), func(v domain.StateView) error {
		doctors = v.ListDoctors()
		return nil
	})
	if doctors[0].Status != domain.DoctorInConsultation || doctors[0].CurrentAppointmentID != "appt-1" {
		t.Fatalf("expected doctor in consultation, got %+v", doctors[0])
	}
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore()
	var created domain.ServiceRequest
	_, err := s.RunInTransaction(context.Background(), func(tx *Transaction) error {
		var err error
		created, err = tx.CreateServiceRequest(domain.ServiceRequest{RoomID: "room-201", Status: domain.WorkPending})
		return err
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || !created.CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected id and created at, got %+v", created)
	}
	if got := len(s.ExportState().Requests); got != 1 {
		t.Fatalf("expected 1 request persisted, got %d", got)
	}
}

func TestExportImportRoundTripKeepsRooms(t *testing.T) {
	s := newTestStore()
	before := listRooms(t, s)
	snapshot := s.ExportState()
	if snapshot.Version != SnapshotVersion {
		t.Fatalf("expected version %d, got %d", SnapshotVersion, snapshot.Version)
	}

	fresh := NewStore(domain.Dataset{Rooms: testDataset().Rooms, Doctors: testDataset().Doctors}, WithNow(func() time.Time { return fixedNow }))
	fresh.ImportState(snapshot)
	if after := listRooms(t, fresh); !reflect.DeepEqual(before, after) {
		t.Fatalf("rooms differ after import\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestImportDropsFlagsForUnknownRooms(t *testing.T) {
	s := newTestStore()
	s.ImportState(Snapshot{RoomFlags: []domain.RoomFlag{
		{RoomID: "room-412", Status: domain.RoomCleaning},
		{RoomID: "room-gone", Status: domain.RoomCleaning},
	}})
	flags := s.ExportState().RoomFlags
	if len(flags) != 1 || flags[0].RoomID != "room-412" {
		t.Fatalf("unexpected flags %+v", flags)
	}
	if rooms := listRooms(t, s); rooms[2].Status != domain.RoomCleaning {
		t.Fatalf("expected imported flag applied, got %s", rooms[2].Status)
	}
}

func TestMigrateSnapshotNormalises(t *testing.T) {
	older := fixedNow.Add(-48 * time.Hour)
	newer := fixedNow.Add(-time.Hour)
	migrated := migrateSnapshot(Snapshot{
		Inventory: []domain.InventoryItem{{
			ID:           "inv-1",
			CurrentStock: -4,
			RestockHistory: []domain.RestockEntry{
				{At: older, Quantity: 1},
				{At: newer, Quantity: 2},
			},
		}},
		RoomFlags: []domain.RoomFlag{{RoomID: "room-1", Status: "painted"}},
		Tasks:     []domain.HousekeepingTask{{ID: "t1"}},
	})
	if migrated.Reservations == nil || migrated.Staff == nil || migrated.Appointments == nil {
		t.Fatalf("expected nil slices to be initialised")
	}
	item := migrated.Inventory[0]
	if item.CurrentStock != 0 {
		t.Fatalf("expected negative stock clamped, got %d", item.CurrentStock)
	}
	if item.RestockHistory[0].Quantity != 2 {
		t.Fatalf("expected newest ledger entry first, got %+v", item.RestockHistory)
	}
	if len(migrated.RoomFlags) != 0 {
		t.Fatalf("expected invalid flag dropped")
	}
	if migrated.Tasks[0].Priority != domain.PriorityNormal {
		t.Fatalf("expected default priority, got %q", migrated.Tasks[0].Priority)
	}
	if migrated.Version != SnapshotVersion {
		t.Fatalf("expected version bump, got %d", migrated.Version)
	}
}
