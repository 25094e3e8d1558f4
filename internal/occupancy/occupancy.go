// Package occupancy derives room and doctor status from the reservation and
// appointment collections. Nothing computed here is ever persisted.
package occupancy

import (
	"time"

	"opsdesk/pkg/domain"
)

// Rooms returns copies of rooms with Status, CurrentReservationID and
// NextReservationID recomputed. today is a calendar day (see domain.Today).
//
// A checked-in reservation makes a room occupied; when several overlap the
// earliest check-in wins and ties go to the lowest reservation id. Without a
// guest in the room an explicit flag applies, otherwise the room is available.
func Rooms(rooms []domain.Room, reservations []domain.Reservation, flags []domain.RoomFlag, today time.Time) []domain.Room {
	current := make(map[string]domain.Reservation)
	next := make(map[string]domain.Reservation)
	day := domain.CivilDate(today)
	for _, r := range reservations {
		switch r.Status {
		case domain.ReservationCheckedIn:
			if best, ok := current[r.RoomID]; !ok || earlier(r, best) {
				current[r.RoomID] = r
			}
		case domain.ReservationConfirmed:
			if domain.CivilDate(r.CheckIn).Before(day) {
				continue
			}
			if best, ok := next[r.RoomID]; !ok || earlier(r, best) {
				next[r.RoomID] = r
			}
		}
	}
	flagged := make(map[string]domain.RoomStatus, len(flags))
	for _, f := range flags {
		flagged[f.RoomID] = f.Status
	}

	out := make([]domain.Room, len(rooms))
	for i, room := range rooms {
		if room.Amenities != nil {
			room.Amenities = append([]string{}, room.Amenities...)
		}
		room.CurrentReservationID = ""
		room.NextReservationID = ""
		if res, ok := current[room.ID]; ok {
			room.Status = domain.RoomOccupied
			room.CurrentReservationID = res.ID
		} else if status, ok := flagged[room.ID]; ok {
			room.Status = status
		} else {
			room.Status = domain.RoomAvailable
		}
		if res, ok := next[room.ID]; ok {
			room.NextReservationID = res.ID
		}
		out[i] = room
	}
	return out
}

func earlier(a, b domain.Reservation) bool {
	if !a.CheckIn.Equal(b.CheckIn) {
		return a.CheckIn.Before(b.CheckIn)
	}
	return a.ID < b.ID
}

// Doctors returns copies of doctors with Status and CurrentAppointmentID
// recomputed. An in-progress appointment puts the doctor in consultation
// (earliest start wins); otherwise duty decides between available and off-duty.
func Doctors(doctors []domain.Doctor, appointments []domain.Appointment) []domain.Doctor {
	active := make(map[string]domain.Appointment)
	for _, a := range appointments {
		if a.Status != domain.AppointmentInProgress {
			continue
		}
		if best, ok := active[a.DoctorID]; !ok || startedBefore(a, best) {
			active[a.DoctorID] = a
		}
	}
	out := make([]domain.Doctor, len(doctors))
	for i, d := range doctors {
		d.CurrentAppointmentID = ""
		switch appt, ok := active[d.ID]; {
		case ok:
			d.Status = domain.DoctorInConsultation
			d.CurrentAppointmentID = appt.ID
		case !d.OnDuty:
			d.Status = domain.DoctorOffDuty
		default:
			d.Status = domain.DoctorAvailable
		}
		out[i] = d
	}
	return out
}

func startedBefore(a, b domain.Appointment) bool {
	sa, sb := startOf(a), startOf(b)
	if !sa.Equal(sb) {
		return sa.Before(sb)
	}
	return a.ID < b.ID
}

func startOf(a domain.Appointment) time.Time {
	if a.StartedAt != nil {
		return *a.StartedAt
	}
	return Slot(a)
}

// Slot combines an appointment's calendar day with its HH:MM wall-clock time.
// An unparseable time yields the start of the day.
func Slot(a domain.Appointment) time.Time {
	day := domain.CivilDate(a.Date)
	clock, err := time.Parse("15:04", a.Time)
	if err != nil {
		return day
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
}
