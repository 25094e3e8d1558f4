// Package kpi aggregates dashboard metrics over the current collections.
// Values are computed fresh on every call; nothing is cached.
package kpi

import (
	"time"

	"github.com/shopspring/decimal"

	"opsdesk/pkg/domain"
)

// ExpiryHorizon is how far ahead an expiry date counts as "expiring soon".
const ExpiryHorizon = 90 * 24 * time.Hour

// KPIs is the dashboard summary for one calendar day.
type KPIs struct {
	Day time.Time `json:"day"`

	TotalRooms       int `json:"total_rooms"`
	OccupiedRooms    int `json:"occupied_rooms"`
	AvailableRooms   int `json:"available_rooms"`
	CleaningRooms    int `json:"cleaning_rooms"`
	MaintenanceRooms int `json:"maintenance_rooms"`
	OccupancyRate    int `json:"occupancy_rate"`
	TodayCheckIns    int `json:"today_check_ins"`
	TodayCheckOuts   int `json:"today_check_outs"`

	PendingTasks    int `json:"pending_tasks"`
	InProgressTasks int `json:"in_progress_tasks"`
	OpenRequests    int `json:"open_requests"`
	UrgentRequests  int `json:"urgent_requests"`

	LowStockItems  int             `json:"low_stock_items"`
	ExpiringSoon   int             `json:"expiring_soon"`
	ExpiredItems   int             `json:"expired_items"`
	InventoryValue decimal.Decimal `json:"inventory_value"`

	StaffTotal  int `json:"staff_total"`
	StaffOnDuty int `json:"staff_on_duty"`

	TodayAppointments     int `json:"today_appointments"`
	CompletedToday        int `json:"completed_today"`
	DoctorsAvailable      int `json:"doctors_available"`
	DoctorsInConsultation int `json:"doctors_in_consultation"`
}

// Compute scans view and returns the metrics for the calendar day of now in loc.
func Compute(view domain.StateView, now time.Time, loc *time.Location) KPIs {
	today := domain.Today(now, loc)
	k := KPIs{Day: today, InventoryValue: decimal.Zero}

	rooms := view.ListRooms()
	k.TotalRooms = len(rooms)
	for _, r := range rooms {
		switch r.Status {
		case domain.RoomOccupied:
			k.OccupiedRooms++
		case domain.RoomCleaning:
			k.CleaningRooms++
		case domain.RoomMaintenance:
			k.MaintenanceRooms++
		default:
			k.AvailableRooms++
		}
	}
	k.OccupancyRate = Percent(k.OccupiedRooms, k.TotalRooms)

	for _, r := range view.ListReservations() {
		if domain.CivilDate(r.CheckIn).Equal(today) &&
			(r.Status == domain.ReservationConfirmed || r.Status == domain.ReservationCheckedIn) {
			k.TodayCheckIns++
		}
		if domain.CivilDate(r.CheckOut).Equal(today) &&
			(r.Status == domain.ReservationCheckedIn || r.Status == domain.ReservationCheckedOut) {
			k.TodayCheckOuts++
		}
	}

	for _, t := range view.ListTasks() {
		switch t.Status {
		case domain.WorkPending:
			k.PendingTasks++
		case domain.WorkInProgress:
			k.InProgressTasks++
		}
	}
	for _, r := range view.ListServiceRequests() {
		if r.Status == domain.WorkCompleted || r.Status == domain.WorkCancelled {
			continue
		}
		k.OpenRequests++
		if r.Priority == domain.PriorityUrgent {
			k.UrgentRequests++
		}
	}

	horizon := today.Add(ExpiryHorizon)
	for _, item := range view.ListInventory() {
		if item.LowStock() {
			k.LowStockItems++
		}
		if item.ExpiresAt != nil {
			expiry := domain.CivilDate(*item.ExpiresAt)
			switch {
			case expiry.Before(today):
				k.ExpiredItems++
			case !expiry.After(horizon):
				k.ExpiringSoon++
			}
		}
		k.InventoryValue = k.InventoryValue.Add(item.Value())
	}

	staff := view.ListStaff()
	k.StaffTotal = len(staff)
	for _, s := range staff {
		if s.Status == domain.StaffOnDuty {
			k.StaffOnDuty++
		}
	}

	for _, a := range view.ListAppointments() {
		if !domain.CivilDate(a.Date).Equal(today) {
			continue
		}
		if a.Status != domain.AppointmentCancelled {
			k.TodayAppointments++
		}
		if a.Status == domain.AppointmentCompleted {
			k.CompletedToday++
		}
	}
	for _, d := range view.ListDoctors() {
		switch d.Status {
		case domain.DoctorAvailable:
			k.DoctorsAvailable++
		case domain.DoctorInConsultation:
			k.DoctorsInConsultation++
		}
	}
	return k
}

// Percent returns part/total as a whole percentage rounded half up, or 0
// when total is zero.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*200 + total) / (total * 2)
}
