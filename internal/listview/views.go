package listview

import (
	"strconv"

	"opsdesk/internal/occupancy"
	"opsdesk/pkg/domain"
)

// Stock filter values for the inventory "stock" filter.
const (
	StockOK  = "ok"
	StockLow = "low"
	StockOut = "out"
)

// Rooms lists rooms by number.
var Rooms = New(func(a, b domain.Room) bool { return a.Number < b.Number }).
	SearchOn(
		func(r domain.Room) string { return r.Number },
		func(r domain.Room) string { return r.Type },
	).
	FilterOn("status", func(r domain.Room) string { return string(r.Status) }).
	FilterOn("type", func(r domain.Room) string { return r.Type }).
	FilterOn("floor", func(r domain.Room) string { return strconv.Itoa(r.Floor) })

// Tasks lists housekeeping work most pressing first, then by schedule.
var Tasks = New(func(a, b domain.HousekeepingTask) bool {
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}
	return a.ScheduledAt.Before(b.ScheduledAt)
}).
	SearchOn(
		func(t domain.HousekeepingTask) string { return t.RoomID },
		func(t domain.HousekeepingTask) string { return t.Type },
		func(t domain.HousekeepingTask) string { return t.AssigneeName },
		func(t domain.HousekeepingTask) string { return t.Notes },
	).
	FilterOn("status", func(t domain.HousekeepingTask) string { return string(t.Status) }).
	FilterOn("priority", func(t domain.HousekeepingTask) string { return string(t.Priority) }).
	FilterOn("type", func(t domain.HousekeepingTask) string { return t.Type })

// Requests lists service requests most pressing first, newest first within a priority.
var Requests = New(func(a, b domain.ServiceRequest) bool {
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}
	return a.CreatedAt.After(b.CreatedAt)
}).
	SearchOn(
		func(r domain.ServiceRequest) string { return r.RoomID },
		func(r domain.ServiceRequest) string { return r.GuestName },
		func(r domain.ServiceRequest) string { return r.Category },
		func(r domain.ServiceRequest) string { return r.Description },
	).
	FilterOn("status", func(r domain.ServiceRequest) string { return string(r.Status) }).
	FilterOn("priority", func(r domain.ServiceRequest) string { return string(r.Priority) }).
	FilterOn("category", func(r domain.ServiceRequest) string { return r.Category })

// Appointments lists visits by calendar day, then wall-clock time. Times are
// compared as parsed clocks so "9:30" sorts before "10:00".
var Appointments = New(func(a, b domain.Appointment) bool {
	return occupancy.Slot(a).Before(occupancy.Slot(b))
}).
	SearchOn(
		func(a domain.Appointment) string { return a.PatientName },
		func(a domain.Appointment) string { return a.DoctorName },
		func(a domain.Appointment) string { return a.Department },
		func(a domain.Appointment) string { return a.Type },
	).
	FilterOn("status", func(a domain.Appointment) string { return string(a.Status) }).
	FilterOn("department", func(a domain.Appointment) string { return a.Department }).
	FilterOn("doctor", func(a domain.Appointment) string { return a.DoctorID }).
	FilterOn("type", func(a domain.Appointment) string { return a.Type })

// Inventory lists items by name.
var Inventory = New(func(a, b domain.InventoryItem) bool { return a.Name < b.Name }).
	SearchOn(
		func(i domain.InventoryItem) string { return i.Name },
		func(i domain.InventoryItem) string { return i.SKU },
		func(i domain.InventoryItem) string { return i.Category },
		func(i domain.InventoryItem) string { return i.Supplier },
	).
	FilterOn("category", func(i domain.InventoryItem) string { return i.Category }).
	FilterOn("location", func(i domain.InventoryItem) string { return i.Location }).
	FilterOn("stock", stockLevel)

func stockLevel(i domain.InventoryItem) string {
	switch {
	case i.OutOfStock():
		return StockOut
	case i.LowStock():
		return StockLow
	default:
		return StockOK
	}
}

// Staff lists staff members by name.
var Staff = New(func(a, b domain.StaffMember) bool { return a.Name < b.Name }).
	SearchOn(
		func(s domain.StaffMember) string { return s.Name },
		func(s domain.StaffMember) string { return s.Role },
		func(s domain.StaffMember) string { return s.Department },
		func(s domain.StaffMember) string { return s.Email },
	).
	FilterOn("status", func(s domain.StaffMember) string { return string(s.Status) }).
	FilterOn("role", func(s domain.StaffMember) string { return s.Role }).
	FilterOn("department", func(s domain.StaffMember) string { return s.Department }).
	FilterOn("shift", func(s domain.StaffMember) string { return s.Shift })

// Reservations lists bookings by check-in day.
var Reservations = New(func(a, b domain.Reservation) bool {
	if !a.CheckIn.Equal(b.CheckIn) {
		return a.CheckIn.Before(b.CheckIn)
	}
	return a.ID < b.ID
}).
	SearchOn(
		func(r domain.Reservation) string { return r.ID },
		func(r domain.Reservation) string { return r.GuestName },
		func(r domain.Reservation) string { return r.GuestEmail },
		func(r domain.Reservation) string { return r.RoomID },
	).
	FilterOn("status", func(r domain.Reservation) string { return string(r.Status) }).
	FilterOn("payment", func(r domain.Reservation) string { return string(r.PaymentStatus) }).
	FilterOn("room", func(r domain.Reservation) string { return r.RoomID })
