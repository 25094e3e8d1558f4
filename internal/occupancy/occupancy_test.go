package occupancy

import (
	"reflect"
	"testing"
	"time"

	"opsdesk/pkg/domain"
)

var today = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time { return today.AddDate(0, 0, offset) }

func TestRoomsOccupiedByCheckedInReservation(t *testing.T) {
	rooms := []domain.Room{{ID: "r201", Number: "201"}, {ID: "r305", Number: "305"}}
	reservations := []domain.Reservation{
		{ID: "res-1", RoomID: "r201", CheckIn: day(-1), CheckOut: day(2), Status: domain.ReservationCheckedIn},
		{ID: "res-2", RoomID: "r305", CheckIn: day(-3), CheckOut: day(-1), Status: domain.ReservationCheckedOut},
	}
	got := Rooms(rooms, reservations, nil, today)
	if got[0].Status != domain.RoomOccupied || got[0].CurrentReservationID != "res-1" {
		t.Fatalf("expected room 201 occupied by res-1, got %+v", got[0])
	}
	if got[1].Status != domain.RoomAvailable || got[1].CurrentReservationID != "" {
		t.Fatalf("checked-out reservation must not occupy room, got %+v", got[1])
	}
}

func TestRoomsOverlappingCheckInsAreDeterministic(t *testing.T) {
	rooms := []domain.Room{{ID: "r1", Number: "101"}}
	a := domain.Reservation{ID: "res-b", RoomID: "r1", CheckIn: day(-2), Status: domain.ReservationCheckedIn}
	b := domain.Reservation{ID: "res-a", RoomID: "r1", CheckIn: day(-2), Status: domain.ReservationCheckedIn}
	c := domain.Reservation{ID: "res-0", RoomID: "r1", CheckIn: day(-1), Status: domain.ReservationCheckedIn}

	orders := [][]domain.Reservation{{a, b, c}, {c, b, a}, {b, c, a}}
	for _, order := range orders {
		got := Rooms(rooms, order, nil, today)
		if got[0].CurrentReservationID != "res-a" {
			t.Fatalf("expected earliest check-in with lowest id to win, got %s", got[0].CurrentReservationID)
		}
	}
}

func TestRoomsFlagPrecedence(t *testing.T) {
	rooms := []domain.Room{{ID: "r1"}, {ID: "r2"}}
	flags := []domain.RoomFlag{
		{RoomID: "r1", Status: domain.RoomMaintenance},
		{RoomID: "r2", Status: domain.RoomCleaning},
	}
	reservations := []domain.Reservation{{ID: "res-1", RoomID: "r1", CheckIn: day(0), Status: domain.ReservationCheckedIn}}
	got := Rooms(rooms, reservations, flags, today)
	if got[0].Status != domain.RoomOccupied {
		t.Fatalf("check-in must beat a flag, got %s", got[0].Status)
	}
	if got[1].Status != domain.RoomCleaning {
		t.Fatalf("expected flag status cleaning, got %s", got[1].Status)
	}
}

func TestRoomsNextReservation(t *testing.T) {
	rooms := []domain.Room{{ID: "r1"}}
	reservations := []domain.Reservation{
		{ID: "past", RoomID: "r1", CheckIn: day(-2), Status: domain.ReservationConfirmed},
		{ID: "later", RoomID: "r1", CheckIn: day(5), Status: domain.ReservationConfirmed},
		{ID: "soon", RoomID: "r1", CheckIn: day(0), Status: domain.ReservationConfirmed},
		{ID: "gone", RoomID: "r1", CheckIn: day(0), Status: domain.ReservationCancelled},
	}
	got := Rooms(rooms, reservations, nil, today)
	if got[0].NextReservationID != "soon" {
		t.Fatalf("expected next reservation soon, got %q", got[0].NextReservationID)
	}
}

func TestRoomsDoesNotMutateInput(t *testing.T) {
	rooms := []domain.Room{{ID: "r1", Status: domain.RoomOccupied, CurrentReservationID: "stale", Amenities: []string{"wifi"}}}
	before := append([]domain.Room(nil), rooms...)
	got := Rooms(rooms, nil, nil, today)
	if !reflect.DeepEqual(rooms, before) {
		t.Fatalf("input slice modified")
	}
	got[0].Amenities[0] = "changed"
	if rooms[0].Amenities[0] != "wifi" {
		t.Fatalf("amenities share backing array with input")
	}
	if got[0].Status != domain.RoomAvailable || got[0].CurrentReservationID != "" {
		t.Fatalf("stale derived fields should be recomputed, got %+v", got[0])
	}
}

func TestDoctors(t *testing.T) {
	early := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	doctors := []domain.Doctor{
		{ID: "d1", OnDuty: true},
		{ID: "d2", OnDuty: false},
		{ID: "d3", OnDuty: true},
	}
	appointments := []domain.Appointment{
		{ID: "a2", DoctorID: "d1", Status: domain.AppointmentInProgress, StartedAt: &late},
		{ID: "a1", DoctorID: "d1", Status: domain.AppointmentInProgress, StartedAt: &early},
		{ID: "a3", DoctorID: "d3", Status: domain.AppointmentConfirmed},
	}
	got := Doctors(doctors, appointments)
	if got[0].Status != domain.DoctorInConsultation || got[0].CurrentAppointmentID != "a1" {
		t.Fatalf("expected d1 in consultation with a1, got %+v", got[0])
	}
	if got[1].Status != domain.DoctorOffDuty {
		t.Fatalf("expected d2 off duty, got %s", got[1].Status)
	}
	if got[2].Status != domain.DoctorAvailable {
		t.Fatalf("expected d3 available, got %s", got[2].Status)
	}
}

func TestSlot(t *testing.T) {
	a := domain.Appointment{Date: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), Time: "14:30"}
	if got, want := Slot(a), time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	a.Time = "late"
	if got := Slot(a); !got.Equal(a.Date) {
		t.Fatalf("expected start of day for bad time, got %s", got)
	}
}
