package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"opsdesk/internal/infra/persistence/memory"
	"opsdesk/pkg/domain"
)

func invalid(entity domain.EntityType, format string, args ...any) error {
	return domain.ErrInvalidEntity{Entity: entity, Reason: fmt.Sprintf(format, args...)}
}

// CreateReservation books a room. The stay must span at least one night and
// the party must fit the room. A zero TotalAmount is priced at nights times
// the nightly rate.
func (s *Service) CreateReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	var out domain.Reservation
	err := s.mutate(ctx, OpCreateReservation, &out.ID, func(tx *memory.Transaction) error {
		if strings.TrimSpace(r.GuestName) == "" {
			return invalid(domain.EntityReservation, "guest name is required")
		}
		room, ok := tx.FindRoom(r.RoomID)
		if !ok {
			return domain.ErrNotFound{Entity: domain.EntityRoom, ID: r.RoomID}
		}
		checkIn, checkOut := domain.CivilDate(r.CheckIn), domain.CivilDate(r.CheckOut)
		if !checkOut.After(checkIn) {
			return invalid(domain.EntityReservation, "check-out must be after check-in")
		}
		if r.Guests < 1 {
			return invalid(domain.EntityReservation, "at least one guest is required")
		}
		if room.Capacity > 0 && r.Guests > room.Capacity {
			return invalid(domain.EntityReservation, "room %s holds %d guests, got %d", room.Number, room.Capacity, r.Guests)
		}
		r.Status = domain.ReservationConfirmed
		if r.PaymentStatus == "" {
			r.PaymentStatus = domain.PaymentPending
		}
		if r.TotalAmount.IsZero() {
			nights := int64(checkOut.Sub(checkIn) / (24 * time.Hour))
			r.TotalAmount = room.NightlyPrice.Mul(decimal.NewFromInt(nights))
		}
		r.CheckedInAt, r.CheckedOutAt, r.CancelledAt = nil, nil, nil
		created, err := tx.CreateReservation(r)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return out, nil
}

// ScheduleAppointment books a patient with a doctor. The doctor's name and
// department are copied onto the appointment.
func (s *Service) ScheduleAppointment(ctx context.Context, a domain.Appointment) (domain.Appointment, error) {
	var out domain.Appointment
	err := s.mutate(ctx, OpScheduleAppointment, &out.ID, func(tx *memory.Transaction) error {
		if strings.TrimSpace(a.PatientName) == "" {
			return invalid(domain.EntityAppointment, "patient name is required")
		}
		if a.Date.IsZero() {
			return invalid(domain.EntityAppointment, "date is required")
		}
		clock, err := time.Parse("15:04", strings.TrimSpace(a.Time))
		if err != nil {
			return invalid(domain.EntityAppointment, "time %q is not HH:MM", a.Time)
		}
		a.Time = clock.Format("15:04")
		doctor, ok := tx.FindDoctor(a.DoctorID)
		if !ok {
			return domain.ErrNotFound{Entity: domain.EntityDoctor, ID: a.DoctorID}
		}
		a.DoctorName = doctor.Name
		if a.Department == "" {
			a.Department = doctor.Department
		}
		a.Status = domain.AppointmentScheduled
		a.StartedAt, a.CompletedAt, a.CancelledAt = nil, nil, nil
		created, err := tx.CreateAppointment(a)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

// CreateTask opens a pending housekeeping task on an existing room.
func (s *Service) CreateTask(ctx context.Context, t domain.HousekeepingTask) (domain.HousekeepingTask, error) {
	var out domain.HousekeepingTask
	err := s.mutate(ctx, OpCreateTask, &out.ID, func(tx *memory.Transaction) error {
		if _, ok := tx.FindRoom(t.RoomID); !ok {
			return domain.ErrNotFound{Entity: domain.EntityRoom, ID: t.RoomID}
		}
		if strings.TrimSpace(t.Type) == "" {
			return invalid(domain.EntityTask, "type is required")
		}
		if t.Priority == "" {
			t.Priority = domain.PriorityNormal
		}
		if t.ScheduledAt.IsZero() {
			t.ScheduledAt = tx.Now()
		}
		t.Status = domain.WorkPending
		t.AssigneeID, t.AssigneeName = "", ""
		t.AssignedAt, t.StartedAt, t.CompletedAt = nil, nil, nil
		created, err := tx.CreateTask(t)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.HousekeepingTask{}, err
	}
	return out, nil
}

// CreateServiceRequest files a pending guest request for an existing room.
func (s *Service) CreateServiceRequest(ctx context.Context, r domain.ServiceRequest) (domain.ServiceRequest, error) {
	var out domain.ServiceRequest
	err := s.mutate(ctx, OpCreateRequest, &out.ID, func(tx *memory.Transaction) error {
		if _, ok := tx.FindRoom(r.RoomID); !ok {
			return domain.ErrNotFound{Entity: domain.EntityRoom, ID: r.RoomID}
		}
		if strings.TrimSpace(r.Description) == "" {
			return invalid(domain.EntityServiceRequest, "description is required")
		}
		if r.Priority == "" {
			r.Priority = domain.PriorityNormal
		}
		r.Status = domain.WorkPending
		r.AssigneeID, r.AssigneeName = "", ""
		r.AssignedAt, r.StartedAt, r.CompletedAt, r.CancelledAt = nil, nil, nil, nil
		created, err := tx.CreateServiceRequest(r)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.ServiceRequest{}, err
	}
	return out, nil
}

// TaskPatch lists the task fields that may change without a transition. Nil
// fields are left as they are.
type TaskPatch struct {
	Notes       *string
	Priority    *domain.Priority
	ScheduledAt *time.Time
}

// UpdateTask applies patch to a task in any status.
func (s *Service) UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (domain.HousekeepingTask, error) {
	var out domain.HousekeepingTask
	err := s.mutate(ctx, OpUpdateTask, &taskID, func(tx *memory.Transaction) error {
		var err error
		out, err = tx.UpdateTask(taskID, func(t *domain.HousekeepingTask) error {
			if patch.Priority != nil {
				switch *patch.Priority {
				case domain.PriorityUrgent, domain.PriorityHigh, domain.PriorityNormal, domain.PriorityLow:
				default:
					return invalid(domain.EntityTask, "unknown priority %q", *patch.Priority)
				}
				t.Priority = *patch.Priority
			}
			if patch.Notes != nil {
				t.Notes = *patch.Notes
			}
			if patch.ScheduledAt != nil {
				t.ScheduledAt = *patch.ScheduledAt
			}
			return nil
		})
		return err
	})
	if err != nil {
		return domain.HousekeepingTask{}, err
	}
	return out, nil
}

// ToggleChecklistItem flips the completion mark of one checklist step.
func (s *Service) ToggleChecklistItem(ctx context.Context, taskID string, index int) (domain.HousekeepingTask, error) {
	var out domain.HousekeepingTask
	err := s.mutate(ctx, OpToggleChecklistItem, &taskID, func(tx *memory.Transaction) error {
		var err error
		out, err = tx.UpdateTask(taskID, func(t *domain.HousekeepingTask) error {
			if index < 0 || index >= len(t.Checklist) {
				return invalid(domain.EntityTask, "checklist index %d out of range", index)
			}
			t.Checklist[index].Completed = !t.Checklist[index].Completed
			return nil
		})
		return err
	})
	if err != nil {
		return domain.HousekeepingTask{}, err
	}
	return out, nil
}

// InventoryPatch lists the editable inventory attributes. Stock levels only
// move through Restock.
type InventoryPatch struct {
	MinStock  *int
	MaxStock  *int
	Location  *string
	Supplier  *string
	UnitCost  *decimal.Decimal
	ExpiresAt *time.Time
}

// UpdateInventoryItem applies patch to an item. Thresholds must stay
// non-negative with min not above max.
func (s *Service) UpdateInventoryItem(ctx context.Context, itemID string, patch InventoryPatch) (domain.InventoryItem, error) {
	var out domain.InventoryItem
	err := s.mutate(ctx, OpUpdateInventoryItem, &itemID, func(tx *memory.Transaction) error {
		var err error
		out, err = tx.UpdateInventoryItem(itemID, func(i *domain.InventoryItem) error {
			minStock, maxStock := i.MinStock, i.MaxStock
			if patch.MinStock != nil {
				minStock = *patch.MinStock
			}
			if patch.MaxStock != nil {
				maxStock = *patch.MaxStock
			}
			if minStock < 0 || maxStock < 0 || minStock > maxStock {
				return invalid(domain.EntityInventoryItem, "stock thresholds %d..%d", minStock, maxStock)
			}
			if patch.UnitCost != nil && patch.UnitCost.IsNegative() {
				return invalid(domain.EntityInventoryItem, "unit cost must not be negative")
			}
			i.MinStock, i.MaxStock = minStock, maxStock
			if patch.Location != nil {
				i.Location = *patch.Location
			}
			if patch.Supplier != nil {
				i.Supplier = *patch.Supplier
			}
			if patch.UnitCost != nil {
				i.UnitCost = *patch.UnitCost
			}
			if patch.ExpiresAt != nil {
				i.ExpiresAt = stamp(*patch.ExpiresAt)
			}
			return nil
		})
		return err
	})
	if err != nil {
		return domain.InventoryItem{}, err
	}
	return out, nil
}

// Restock adds quantity to an item's stock and prepends a ledger entry signed
// by actor. Non-positive quantities fail with ErrInvalidQuantity and leave the
// item unchanged.
func (s *Service) Restock(ctx context.Context, itemID string, quantity int, actor string) (domain.InventoryItem, error) {
	if strings.TrimSpace(actor) == "" {
		actor = systemActor
	}
	var out domain.InventoryItem
	err := s.mutate(ctx, OpRestock, &itemID, func(tx *memory.Transaction) error {
		var err error
		out, err = tx.UpdateInventoryItem(itemID, func(i *domain.InventoryItem) error {
			return i.Restock(quantity, actor, tx.Now())
		})
		return err
	})
	if err != nil {
		return domain.InventoryItem{}, err
	}
	return out, nil
}

// SetStaffStatus changes a staff member's duty status.
func (s *Service) SetStaffStatus(ctx context.Context, staffID string, status domain.StaffStatus) (domain.StaffMember, error) {
	var out domain.StaffMember
	err := s.mutate(ctx, OpSetStaffStatus, &staffID, func(tx *memory.Transaction) error {
		if !status.Valid() {
			return invalid(domain.EntityStaff, "unknown status %q", status)
		}
		var err error
		out, err = tx.UpdateStaff(staffID, func(m *domain.StaffMember) error {
			m.Status = status
			return nil
		})
		return err
	})
	if err != nil {
		return domain.StaffMember{}, err
	}
	return out, nil
}

// UpdateReservationPayment records the payment state of a reservation. An
// empty method keeps the current one.
func (s *Service) UpdateReservationPayment(ctx context.Context, reservationID string, status domain.PaymentStatus, method string) (domain.Reservation, error) {
	var out domain.Reservation
	err := s.mutate(ctx, OpUpdatePayment, &reservationID, func(tx *memory.Transaction) error {
		switch status {
		case domain.PaymentPending, domain.PaymentPaid, domain.PaymentRefunded:
		default:
			return invalid(domain.EntityReservation, "unknown payment status %q", status)
		}
		var err error
		out, err = tx.UpdateReservation(reservationID, func(r *domain.Reservation) error {
			r.PaymentStatus = status
			if method != "" {
				r.PaymentMethod = method
			}
			return nil
		})
		return err
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return out, nil
}

// FlagRoom puts a room into cleaning or maintenance, replacing any earlier
// flag. A checked-in guest still makes the room occupied; the flag shows once
// the room is free.
func (s *Service) FlagRoom(ctx context.Context, roomID string, status domain.RoomStatus, note, actor string) (domain.RoomFlag, error) {
	if strings.TrimSpace(actor) == "" {
		actor = systemActor
	}
	var out domain.RoomFlag
	err := s.mutate(ctx, OpFlagRoom, &roomID, func(tx *memory.Transaction) error {
		var err error
		out, err = tx.SetRoomFlag(domain.RoomFlag{RoomID: roomID, Status: status, Note: note, SetBy: actor})
		return err
	})
	if err != nil {
		return domain.RoomFlag{}, err
	}
	return out, nil
}

// ClearRoomFlag removes a room's flag and reports whether one was set.
func (s *Service) ClearRoomFlag(ctx context.Context, roomID string) (bool, error) {
	var cleared bool
	err := s.mutate(ctx, OpClearRoomFlag, &roomID, func(tx *memory.Transaction) error {
		if _, ok := tx.FindRoom(roomID); !ok {
			return domain.ErrNotFound{Entity: domain.EntityRoom, ID: roomID}
		}
		cleared = tx.ClearRoomFlag(roomID)
		return nil
	})
	return cleared, err
}
