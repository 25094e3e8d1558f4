package core

import (
	"context"
	"time"

	"opsdesk/internal/infra/persistence/memory"
	"opsdesk/internal/workflow"
	"opsdesk/pkg/domain"
)

// systemActor signs flags and ledger entries raised by the store itself.
const systemActor = "system"

func stamp(t time.Time) *time.Time { return &t }

func (s *Service) advanceTask(ctx context.Context, op, id string, to domain.WorkStatus,
	apply func(tx *memory.Transaction, t *domain.HousekeepingTask) error,
	after func(tx *memory.Transaction, t domain.HousekeepingTask) error,
) (domain.HousekeepingTask, error) {
	var out domain.HousekeepingTask
	err := s.mutate(ctx, op, &id, func(tx *memory.Transaction) error {
		updated, err := tx.UpdateTask(id, func(t *domain.HousekeepingTask) error {
			if err := workflow.Validate(domain.EntityTask, t.ID, string(t.Status), string(to)); err != nil {
				return err
			}
			if apply != nil {
				if err := apply(tx, t); err != nil {
					return err
				}
			}
			t.Status = to
			return nil
		})
		if err != nil {
			return err
		}
		if after != nil {
			if err := after(tx, updated); err != nil {
				return err
			}
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.HousekeepingTask{}, err
	}
	return out, nil
}

// AssignTask moves a pending task to assigned and records the assignee's
// current name alongside the id.
func (s *Service) AssignTask(ctx context.Context, taskID, staffID string) (domain.HousekeepingTask, error) {
	return s.advanceTask(ctx, OpAssignTask, taskID, domain.WorkAssigned, func(tx *memory.Transaction, t *domain.HousekeepingTask) error {
		staff, ok := tx.FindStaff(staffID)
		if !ok {
			return domain.ErrNotFound{Entity: domain.EntityStaff, ID: staffID}
		}
		t.AssigneeID = staff.ID
		t.AssigneeName = staff.Name
		t.AssignedAt = stamp(tx.Now())
		return nil
	}, nil)
}

// StartTask moves an assigned task to in-progress.
func (s *Service) StartTask(ctx context.Context, taskID string) (domain.HousekeepingTask, error) {
	return s.advanceTask(ctx, OpStartTask, taskID, domain.WorkInProgress, func(tx *memory.Transaction, t *domain.HousekeepingTask) error {
		t.StartedAt = stamp(tx.Now())
		return nil
	}, nil)
}

// CompleteTask finishes an in-progress task. A cleaning flag on the task's
// room is cleared; maintenance flags are left alone.
func (s *Service) CompleteTask(ctx context.Context, taskID string) (domain.HousekeepingTask, error) {
	return s.advanceTask(ctx, OpCompleteTask, taskID, domain.WorkCompleted, func(tx *memory.Transaction, t *domain.HousekeepingTask) error {
		t.CompletedAt = stamp(tx.Now())
		return nil
	}, func(tx *memory.Transaction, t domain.HousekeepingTask) error {
		if flag, ok := tx.FindRoomFlag(t.RoomID); ok && flag.Status == domain.RoomCleaning {
			tx.ClearRoomFlag(t.RoomID)
		}
		return nil
	})
}

func (s *Service) advanceRequest(ctx context.Context, op, id string, to domain.WorkStatus,
	apply func(tx *memory.Transaction, r *domain.ServiceRequest) error,
) (domain.ServiceRequest, error) {
	var out domain.ServiceRequest
	err := s.mutate(ctx, op, &id, func(tx *memory.Transaction) error {
		var err error
		out, err = tx.UpdateServiceRequest(id, func(r *domain.ServiceRequest) error {
			if err := workflow.Validate(domain.EntityServiceRequest, r.ID, string(r.Status), string(to)); err != nil {
				return err
			}
			if err := apply(tx, r); err != nil {
				return err
			}
			r.Status = to
			return nil
		})
		return err
	})
	if err != nil {
		return domain.ServiceRequest{}, err
	}
	return out, nil
}

// AssignServiceRequest routes a pending request to a staff member.
func (s *Service) AssignServiceRequest(ctx context.Context, requestID, staffID string) (domain.ServiceRequest, error) {
	return s.advanceRequest(ctx, OpAssignRequest, requestID, domain.WorkAssigned, func(tx *memory.Transaction, r *domain.ServiceRequest) error {
		staff, ok := tx.FindStaff(staffID)
		if !ok {
			return domain.ErrNotFound{Entity: domain.EntityStaff, ID: staffID}
		}
		r.AssigneeID = staff.ID
		r.AssigneeName = staff.Name
		r.AssignedAt = stamp(tx.Now())
		return nil
	})
}

// StartServiceRequest moves an assigned request to in-progress.
func (s *Service) StartServiceRequest(ctx context.Context, requestID string) (domain.ServiceRequest, error) {
	return s.advanceRequest(ctx, OpStartRequest, requestID, domain.WorkInProgress, func(tx *memory.Transaction, r *domain.ServiceRequest) error {
		r.StartedAt = stamp(tx.Now())
		return nil
	})
}

// CompleteServiceRequest closes an in-progress request.
func (s *Service) CompleteServiceRequest(ctx context.Context, requestID string) (domain.ServiceRequest, error) {
	return s.advanceRequest(ctx, OpCompleteRequest, requestID, domain.WorkCompleted, func(tx *memory.Transaction, r *domain.ServiceRequest) error {
		r.CompletedAt = stamp(tx.Now())
		return nil
	})
}

// CancelServiceRequest cancels a request that has not been completed.
func (s *Service) CancelServiceRequest(ctx context.Context, requestID string) (domain.ServiceRequest, error) {
	return s.advanceRequest(ctx, OpCancelRequest, requestID, domain.WorkCancelled, func(tx *memory.Transaction, r *domain.ServiceRequest) error {
		r.CancelledAt = stamp(tx.Now())
		return nil
	})
}

func (s *Service) advanceReservation(ctx context.Context, op, id string, to domain.ReservationStatus,
	apply func(tx *memory.Transaction, r *domain.Reservation),
	after func(tx *memory.Transaction, r domain.Reservation) error,
) (domain.Reservation, error) {
	var out domain.Reservation
	err := s.mutate(ctx, op, &id, func(tx *memory.Transaction) error {
		updated, err := tx.UpdateReservation(id, func(r *domain.Reservation) error {
			if err := workflow.Validate(domain.EntityReservation, r.ID, string(r.Status), string(to)); err != nil {
				return err
			}
			apply(tx, r)
			r.Status = to
			return nil
		})
		if err != nil {
			return err
		}
		if after != nil {
			if err := after(tx, updated); err != nil {
				return err
			}
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return out, nil
}

// CheckIn marks a confirmed reservation as checked in; the room becomes occupied.
func (s *Service) CheckIn(ctx context.Context, reservationID string) (domain.Reservation, error) {
	return s.advanceReservation(ctx, OpCheckIn, reservationID, domain.ReservationCheckedIn, func(tx *memory.Transaction, r *domain.Reservation) {
		r.CheckedInAt = stamp(tx.Now())
	}, nil)
}

// CheckOut closes a stay and raises a cleaning flag on the room unless it is
// already flagged for maintenance.
func (s *Service) CheckOut(ctx context.Context, reservationID string) (domain.Reservation, error) {
	return s.advanceReservation(ctx, OpCheckOut, reservationID, domain.ReservationCheckedOut, func(tx *memory.Transaction, r *domain.Reservation) {
		r.CheckedOutAt = stamp(tx.Now())
	}, func(tx *memory.Transaction, r domain.Reservation) error {
		if _, ok := tx.FindRoom(r.RoomID); !ok {
			return nil
		}
		if flag, ok := tx.FindRoomFlag(r.RoomID); ok && flag.Status == domain.RoomMaintenance {
			return nil
		}
		_, err := tx.SetRoomFlag(domain.RoomFlag{
			RoomID: r.RoomID,
			Status: domain.RoomCleaning,
			Note:   "checkout " + r.ID,
			SetBy:  systemActor,
		})
		return err
	})
}

// CancelReservation cancels a confirmed reservation.
func (s *Service) CancelReservation(ctx context.Context, reservationID string) (domain.Reservation, error) {
	return s.advanceReservation(ctx, OpCancelReservation, reservationID, domain.ReservationCancelled, func(tx *memory.Transaction, r *domain.Reservation) {
		r.CancelledAt = stamp(tx.Now())
	}, nil)
}

// MarkReservationNoShow closes a confirmed reservation whose guest never
// arrived. The closing time is kept in CancelledAt.
func (s *Service) MarkReservationNoShow(ctx context.Context, reservationID string) (domain.Reservation, error) {
	return s.advanceReservation(ctx, OpReservationNoShow, reservationID, domain.ReservationNoShow, func(tx *memory.Transaction, r *domain.Reservation) {
		r.CancelledAt = stamp(tx.Now())
	}, nil)
}

func (s *Service) advanceAppointment(ctx context.Context, op, id string, to domain.AppointmentStatus,
	apply func(tx *memory.Transaction, a *domain.Appointment),
) (domain.Appointment, error) {
	var out domain.Appointment
	err := s.mutate(ctx, op, &id, func(tx *memory.Transaction) error {
		var err error
		out, err = tx.UpdateAppointment(id, func(a *domain.Appointment) error {
			if err := workflow.Validate(domain.EntityAppointment, a.ID, string(a.Status), string(to)); err != nil {
				return err
			}
			if apply != nil {
				apply(tx, a)
			}
			a.Status = to
			return nil
		})
		return err
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

// ConfirmAppointment confirms a scheduled appointment.
func (s *Service) ConfirmAppointment(ctx context.Context, appointmentID string) (domain.Appointment, error) {
	return s.advanceAppointment(ctx, OpConfirmAppointment, appointmentID, domain.AppointmentConfirmed, nil)
}

// StartAppointment begins a confirmed consultation; the doctor becomes
// in-consultation.
func (s *Service) StartAppointment(ctx context.Context, appointmentID string) (domain.Appointment, error) {
	return s.advanceAppointment(ctx, OpStartAppointment, appointmentID, domain.AppointmentInProgress, func(tx *memory.Transaction, a *domain.Appointment) {
		a.StartedAt = stamp(tx.Now())
	})
}

// CompleteAppointment ends an in-progress consultation.
func (s *Service) CompleteAppointment(ctx context.Context, appointmentID string) (domain.Appointment, error) {
	return s.advanceAppointment(ctx, OpCompleteAppointment, appointmentID, domain.AppointmentCompleted, func(tx *memory.Transaction, a *domain.Appointment) {
		a.CompletedAt = stamp(tx.Now())
	})
}

// CancelAppointment cancels a scheduled or confirmed appointment.
func (s *Service) CancelAppointment(ctx context.Context, appointmentID string) (domain.Appointment, error) {
	return s.advanceAppointment(ctx, OpCancelAppointment, appointmentID, domain.AppointmentCancelled, func(tx *memory.Transaction, a *domain.Appointment) {
		a.CancelledAt = stamp(tx.Now())
	})
}

// MarkAppointmentNoShow closes a confirmed appointment the patient missed.
func (s *Service) MarkAppointmentNoShow(ctx context.Context, appointmentID string) (domain.Appointment, error) {
	return s.advanceAppointment(ctx, OpAppointmentNoShow, appointmentID, domain.AppointmentNoShow, func(tx *memory.Transaction, a *domain.Appointment) {
		a.CancelledAt = stamp(tx.Now())
	})
}
