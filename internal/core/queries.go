package core

import (
	"context"

	"opsdesk/internal/kpi"
	"opsdesk/internal/listview"
	"opsdesk/pkg/domain"
)

func list[T any](ctx context.Context, s *Service, op string, pick func(domain.StateView) []T) []T {
	var out []T
	_ = s.run(ctx, op, func(ctx context.Context) (string, error) {
		return "", s.store.View(ctx, func(v domain.StateView) error {
			out = pick(v)
			return nil
		})
	})
	return out
}

func filtered[T any](ctx context.Context, s *Service, op string, pick func(domain.StateView) []T, p *listview.Pipeline[T], q listview.Query) ([]T, error) {
	var out []T
	err := s.run(ctx, op, func(ctx context.Context) (string, error) {
		var items []T
		if err := s.store.View(ctx, func(v domain.StateView) error {
			items = pick(v)
			return nil
		}); err != nil {
			return "", err
		}
		var err error
		out, err = p.Apply(items, q)
		return "", err
	})
	return out, err
}

// Rooms lists rooms in collection order with derived status.
func (s *Service) Rooms(ctx context.Context) []domain.Room {
	return list(ctx, s, OpListRooms, domain.StateView.ListRooms)
}

// RoomFlags lists the explicit cleaning and maintenance flags.
func (s *Service) RoomFlags(ctx context.Context) []domain.RoomFlag {
	return list(ctx, s, OpListRoomFlags, domain.StateView.ListRoomFlags)
}

// Reservations lists all reservations.
func (s *Service) Reservations(ctx context.Context) []domain.Reservation {
	return list(ctx, s, OpListReservations, domain.StateView.ListReservations)
}

// Doctors lists doctors with derived status.
func (s *Service) Doctors(ctx context.Context) []domain.Doctor {
	return list(ctx, s, OpListDoctors, domain.StateView.ListDoctors)
}

// Appointments lists all appointments.
func (s *Service) Appointments(ctx context.Context) []domain.Appointment {
	return list(ctx, s, OpListAppointments, domain.StateView.ListAppointments)
}

// Tasks lists housekeeping tasks.
func (s *Service) Tasks(ctx context.Context) []domain.HousekeepingTask {
	return list(ctx, s, OpListTasks, domain.StateView.ListTasks)
}

// ServiceRequests lists guest service requests.
func (s *Service) ServiceRequests(ctx context.Context) []domain.ServiceRequest {
	return list(ctx, s, OpListRequests, domain.StateView.ListServiceRequests)
}

// Inventory lists stocked items.
func (s *Service) Inventory(ctx context.Context) []domain.InventoryItem {
	return list(ctx, s, OpListInventory, domain.StateView.ListInventory)
}

// Staff lists staff members.
func (s *Service) Staff(ctx context.Context) []domain.StaffMember {
	return list(ctx, s, OpListStaff, domain.StateView.ListStaff)
}

// FilterRooms applies the rooms list view (search number/type; filters status, type, floor).
func (s *Service) FilterRooms(ctx context.Context, q listview.Query) ([]domain.Room, error) {
	return filtered(ctx, s, OpListRooms, domain.StateView.ListRooms, listview.Rooms, q)
}

// FilterReservations applies the reservations list view.
func (s *Service) FilterReservations(ctx context.Context, q listview.Query) ([]domain.Reservation, error) {
	return filtered(ctx, s, OpListReservations, domain.StateView.ListReservations, listview.Reservations, q)
}

// FilterAppointments applies the appointments list view.
func (s *Service) FilterAppointments(ctx context.Context, q listview.Query) ([]domain.Appointment, error) {
	return filtered(ctx, s, OpListAppointments, domain.StateView.ListAppointments, listview.Appointments, q)
}

// FilterTasks applies the housekeeping list view.
func (s *Service) FilterTasks(ctx context.Context, q listview.Query) ([]domain.HousekeepingTask, error) {
	return filtered(ctx, s, OpListTasks, domain.StateView.ListTasks, listview.Tasks, q)
}

// FilterServiceRequests applies the requests list view.
func (s *Service) FilterServiceRequests(ctx context.Context, q listview.Query) ([]domain.ServiceRequest, error) {
	return filtered(ctx, s, OpListRequests, domain.StateView.ListServiceRequests, listview.Requests, q)
}

// FilterInventory applies the inventory list view.
func (s *Service) FilterInventory(ctx context.Context, q listview.Query) ([]domain.InventoryItem, error) {
	return filtered(ctx, s, OpListInventory, domain.StateView.ListInventory, listview.Inventory, q)
}

// FilterStaff applies the staff list view.
func (s *Service) FilterStaff(ctx context.Context, q listview.Query) ([]domain.StaffMember, error) {
	return filtered(ctx, s, OpListStaff, domain.StateView.ListStaff, listview.Staff, q)
}

// KPIs recomputes the dashboard metrics from the current state.
func (s *Service) KPIs(ctx context.Context) kpi.KPIs {
	var out kpi.KPIs
	_ = s.run(ctx, OpComputeKPIs, func(ctx context.Context) (string, error) {
		return "", s.store.View(ctx, func(v domain.StateView) error {
			out = kpi.Compute(v, s.opts.clock.Now(), s.opts.location)
			return nil
		})
	})
	return out
}
