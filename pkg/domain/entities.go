// Package domain defines the operational records managed by the admin store
// (rooms, reservations, appointments, housekeeping, requests, inventory and
// staff) together with their status vocabularies and error taxonomy.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityType identifies the type of record stored in the admin store.
type EntityType string

// Supported entity type identifiers used in change records, audit entries and errors.
const (
	// EntityRoom identifies a hotel room.
	EntityRoom EntityType = "room"
	// EntityRoomFlag identifies an explicit housekeeping/maintenance flag on a room.
	EntityRoomFlag EntityType = "room_flag"
	// EntityReservation identifies a hotel reservation.
	EntityReservation EntityType = "reservation"
	// EntityDoctor identifies a hospital doctor.
	EntityDoctor EntityType = "doctor"
	// EntityAppointment identifies a hospital appointment.
	EntityAppointment EntityType = "appointment"
	// EntityTask identifies a housekeeping task.
	EntityTask EntityType = "housekeeping_task"
	// EntityServiceRequest identifies a guest service request.
	EntityServiceRequest EntityType = "service_request"
	// EntityInventoryItem identifies an inventory item.
	EntityInventoryItem EntityType = "inventory_item"
	// EntityStaff identifies a staff member.
	EntityStaff EntityType = "staff_member"
)

// RoomStatus is the derived occupancy state of a room.
type RoomStatus string

// Room statuses. Only cleaning and maintenance may be set explicitly (via a RoomFlag).
const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomCleaning    RoomStatus = "cleaning"
	RoomMaintenance RoomStatus = "maintenance"
)

// ReservationStatus enumerates the reservation lifecycle.
type ReservationStatus string

// Reservation lifecycle states.
const (
	ReservationConfirmed  ReservationStatus = "confirmed"
	ReservationCheckedIn  ReservationStatus = "checked-in"
	ReservationCheckedOut ReservationStatus = "checked-out"
	ReservationCancelled  ReservationStatus = "cancelled"
	ReservationNoShow     ReservationStatus = "no-show"
)

// PaymentStatus describes the settlement state of a reservation.
type PaymentStatus string

// Payment states.
const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// AppointmentStatus enumerates the appointment lifecycle.
type AppointmentStatus string

// Appointment lifecycle states.
const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in-progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentNoShow     AppointmentStatus = "no-show"
)

// DoctorStatus is the derived availability of a doctor.
type DoctorStatus string

// Doctor statuses.
const (
	DoctorAvailable      DoctorStatus = "available"
	DoctorInConsultation DoctorStatus = "in-consultation"
	DoctorOffDuty        DoctorStatus = "off-duty"
)

// WorkStatus is shared by housekeeping tasks and service requests.
type WorkStatus string

// Work item states. Cancelled is only reachable for service requests.
const (
	WorkPending    WorkStatus = "pending"
	WorkAssigned   WorkStatus = "assigned"
	WorkInProgress WorkStatus = "in-progress"
	WorkCompleted  WorkStatus = "completed"
	WorkCancelled  WorkStatus = "cancelled"
)

// Priority orders work items; urgent is handled first.
type Priority string

// Priorities from most to least pressing.
const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of a priority (urgent=0 … low=3). Unknown values rank as normal.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// StaffStatus is the duty status of a staff member.
type StaffStatus string

// Staff duty states.
const (
	StaffOnDuty  StaffStatus = "on-duty"
	StaffOffDuty StaffStatus = "off-duty"
	StaffBreak   StaffStatus = "break"
	StaffBusy    StaffStatus = "busy"
	StaffOnLeave StaffStatus = "on-leave"
)

// Valid reports whether s is a known staff status.
func (s StaffStatus) Valid() bool {
	switch s {
	case StaffOnDuty, StaffOffDuty, StaffBreak, StaffBusy, StaffOnLeave:
		return true
	}
	return false
}

// Room is a bookable hotel room. Status and the reservation references are
// derived from the reservation set and room flags; they are never persisted.
type Room struct {
	ID                   string          `json:"id"`
	Number               string          `json:"number"`
	Floor                int             `json:"floor"`
	Type                 string          `json:"type"`
	NightlyPrice         decimal.Decimal `json:"nightly_price"`
	Capacity             int             `json:"capacity"`
	Amenities            []string        `json:"amenities,omitempty"`
	Status               RoomStatus      `json:"status"`
	CurrentReservationID string          `json:"current_reservation_id,omitempty"`
	NextReservationID    string          `json:"next_reservation_id,omitempty"`
}

// RoomFlag is an explicit admin marker putting a room into cleaning or maintenance.
type RoomFlag struct {
	RoomID string     `json:"room_id"`
	Status RoomStatus `json:"status"`
	Note   string     `json:"note,omitempty"`
	SetBy  string     `json:"set_by"`
	SetAt  time.Time  `json:"set_at"`
}

// Reservation books a room for a guest over a range of calendar days.
type Reservation struct {
	ID            string            `json:"id"`
	GuestName     string            `json:"guest_name"`
	GuestEmail    string            `json:"guest_email,omitempty"`
	RoomID        string            `json:"room_id"`
	CheckIn       time.Time         `json:"check_in"`
	CheckOut      time.Time         `json:"check_out"`
	Guests        int               `json:"guests"`
	Status        ReservationStatus `json:"status"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	PaymentStatus PaymentStatus     `json:"payment_status"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	CheckedInAt   *time.Time        `json:"checked_in_at,omitempty"`
	CheckedOutAt  *time.Time        `json:"checked_out_at,omitempty"`
	CancelledAt   *time.Time        `json:"cancelled_at,omitempty"`
}

// Doctor is a hospital resource whose status is derived from appointments.
type Doctor struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Specialty            string       `json:"specialty"`
	Department           string       `json:"department"`
	OnDuty               bool         `json:"on_duty"`
	Status               DoctorStatus `json:"status"`
	CurrentAppointmentID string       `json:"current_appointment_id,omitempty"`
}

// Insurance carries the payer details attached to an appointment.
type Insurance struct {
	Provider     string `json:"provider,omitempty"`
	PolicyNumber string `json:"policy_number,omitempty"`
	Verified     bool   `json:"verified"`
}

// Appointment books a patient with a doctor on a calendar day at a wall-clock time.
type Appointment struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patient_id"`
	PatientName string            `json:"patient_name"`
	DoctorID    string            `json:"doctor_id"`
	DoctorName  string            `json:"doctor_name"`
	Department  string            `json:"department,omitempty"`
	Date        time.Time         `json:"date"`
	Time        string            `json:"time"`
	Type        string            `json:"type"`
	Status      AppointmentStatus `json:"status"`
	Insurance   Insurance         `json:"insurance"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	StartedAt   *time.Time        `json:"started_at,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	CancelledAt *time.Time        `json:"cancelled_at,omitempty"`
}

// ChecklistItem is one step of a housekeeping checklist.
type ChecklistItem struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

// HousekeepingTask is a unit of room work assigned to staff.
type HousekeepingTask struct {
	ID           string          `json:"id"`
	RoomID       string          `json:"room_id"`
	Type         string          `json:"type"`
	Priority     Priority        `json:"priority"`
	Status       WorkStatus      `json:"status"`
	Checklist    []ChecklistItem `json:"checklist,omitempty"`
	AssigneeID   string          `json:"assignee_id,omitempty"`
	AssigneeName string          `json:"assignee_name,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	ScheduledAt  time.Time       `json:"scheduled_at"`
	CreatedAt    time.Time       `json:"created_at"`
	AssignedAt   *time.Time      `json:"assigned_at,omitempty"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}

// ServiceRequest is a guest-originated request routed to staff.
type ServiceRequest struct {
	ID           string     `json:"id"`
	RoomID       string     `json:"room_id"`
	GuestName    string     `json:"guest_name,omitempty"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Priority     Priority   `json:"priority"`
	Status       WorkStatus `json:"status"`
	AssigneeID   string     `json:"assignee_id,omitempty"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	AssignedAt   *time.Time `json:"assigned_at,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

// StaffMember is an employee who can be assigned work.
type StaffMember struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Role       string      `json:"role"`
	Department string      `json:"department,omitempty"`
	Status     StaffStatus `json:"status"`
	Shift      string      `json:"shift"`
	Email      string      `json:"email,omitempty"`
}

// Action enumerates the kinds of change captured in a transaction.
type Action string

// Change actions.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Change records that an entity was touched inside a transaction.
type Change struct {
	Entity EntityType
	Action Action
	ID     string
}
