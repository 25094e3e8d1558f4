package main

import (
	"io"

	"github.com/spf13/cobra"

	"opsdesk/internal/kpi"
	"opsdesk/internal/listview"
	"opsdesk/pkg/domain"
)

type queryFlags struct {
	search  string
	filters map[string]string
}

func (q *queryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&q.search, "search", "", "case-insensitive text search")
	cmd.Flags().StringToStringVar(&q.filters, "filter", nil, "field=value filter, repeatable (value all disables it)")
}

func (q *queryFlags) query() listview.Query {
	return listview.Query{Search: q.search, Filters: q.filters}
}

func kpisCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kpis",
		Short: "Show today's dashboard metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := a.svc.KPIs(cmd.Context())
			return a.render(k, func(w io.Writer) { kpiTable(w, k) })
		},
	}
}

func kpiTable(w io.Writer, k kpi.KPIs) {
	row(w, "day", day(k.Day))
	row(w, "rooms", k.TotalRooms)
	row(w, "occupied", k.OccupiedRooms)
	row(w, "available", k.AvailableRooms)
	row(w, "cleaning", k.CleaningRooms)
	row(w, "maintenance", k.MaintenanceRooms)
	row(w, "occupancy %", k.OccupancyRate)
	row(w, "check-ins today", k.TodayCheckIns)
	row(w, "check-outs today", k.TodayCheckOuts)
	row(w, "pending tasks", k.PendingTasks)
	row(w, "tasks in progress", k.InProgressTasks)
	row(w, "open requests", k.OpenRequests)
	row(w, "urgent requests", k.UrgentRequests)
	row(w, "low stock items", k.LowStockItems)
	row(w, "expiring soon", k.ExpiringSoon)
	row(w, "expired", k.ExpiredItems)
	row(w, "inventory value", k.InventoryValue.StringFixed(2))
	row(w, "staff on duty", k.StaffOnDuty, "of", k.StaffTotal)
	row(w, "appointments today", k.TodayAppointments)
	row(w, "completed today", k.CompletedToday)
	row(w, "doctors available", k.DoctorsAvailable)
	row(w, "doctors in consultation", k.DoctorsInConsultation)
}

// listCmd builds a filtered list view over one collection.
func listCmd[T any](a *app, use, short string,
	fetch func(a *app, cmd *cobra.Command, q listview.Query) ([]T, error),
	table func(w io.Writer, items []T),
) *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := fetch(a, cmd, q.query())
			if err != nil {
				return err
			}
			if items == nil {
				items = []T{}
			}
			return a.render(items, func(w io.Writer) { table(w, items) })
		},
	}
	q.bind(cmd)
	return cmd
}

func roomsCmd(a *app) *cobra.Command {
	return listCmd(a, "rooms", "List rooms (filters: status, type, floor)",
		func(a *app, cmd *cobra.Command, q listview.Query) ([]domain.Room, error) {
			return a.svc.FilterRooms(cmd.Context(), q)
		},
		func(w io.Writer, rooms []domain.Room) {
			row(w, "ID", "NUMBER", "FLOOR", "TYPE", "STATUS", "PRICE", "CURRENT", "NEXT")
			for _, r := range rooms {
				row(w, r.ID, r.Number, r.Floor, r.Type, r.Status, r.NightlyPrice.StringFixed(2), orDash(r.CurrentReservationID), orDash(r.NextReservationID))
			}
		})
}

func reservationsCmd(a *app) *cobra.Command {
	return listCmd(a, "reservations", "List reservations by check-in (filters: status, payment, room)",
		func(a *app, cmd *cobra.Command, q listview.Query) ([]domain.Reservation, error) {
			return a.svc.FilterReservations(cmd.Context(), q)
		},
		func(w io.Writer, items []domain.Reservation) {
			row(w, "ID", "GUEST", "ROOM", "CHECK-IN", "CHECK-OUT", "STATUS", "TOTAL", "PAYMENT")
			for _, r := range items {
				row(w, r.ID, r.GuestName, r.RoomID, day(r.CheckIn), day(r.CheckOut), r.Status, r.TotalAmount.StringFixed(2), r.PaymentStatus)
			}
		})
}

func tasksCmd(a *app) *cobra.Command {
	return listCmd(a, "tasks", "List housekeeping tasks (filters: status, priority, type)",
		func(a *app, cmd *cobra.Command, q listview.Query) ([]domain.HousekeepingTask, error) {
			return a.svc.FilterTasks(cmd.Context(), q)
		},
		func(w io.Writer, items []domain.HousekeepingTask) {
			row(w, "ID", "ROOM", "TYPE", "PRIORITY", "STATUS", "ASSIGNEE", "SCHEDULED")
			for _, t := range items {
				row(w, t.ID, t.RoomID, t.Type, t.Priority, t.Status, orDash(t.AssigneeName), clock(t.ScheduledAt))
			}
		})
}

func requestsCmd(a *app) *cobra.Command {
	return listCmd(a, "requests", "List guest service requests (filters: status, priority, category)",
		func(a *app, cmd *cobra.Command, q listview.Query) ([]domain.ServiceRequest, error) {
			return a.svc.FilterServiceRequests(cmd.Context(), q)
		},
		func(w io.Writer, items []domain.ServiceRequest) {
			row(w, "ID", "ROOM", "CATEGORY", "PRIORITY", "STATUS", "ASSIGNEE", "DESCRIPTION")
			for _, r := range items {
				row(w, r.ID, r.RoomID, r.Category, r.Priority, r.Status, orDash(r.AssigneeName), r.Description)
			}
		})
}

func appointmentsCmd(a *app) *cobra.Command {
	return listCmd(a, "appointments", "List appointments (filters: status, department, doctor, type)",
		func(a *app, cmd *cobra.Command, q listview.Query) ([]domain.Appointment, error) {
			return a.svc.FilterAppointments(cmd.Context(), q)
		},
		func(w io.Writer, items []domain.Appointment) {
			row(w, "ID", "DATE", "TIME", "PATIENT", "DOCTOR", "TYPE", "STATUS")
			for _, ap := range items {
				row(w, ap.ID, day(ap.Date), ap.Time, ap.PatientName, ap.DoctorName, ap.Type, ap.Status)
			}
		})
}

func doctorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctors",
		Short: "List doctors with their current status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doctors := a.svc.Doctors(cmd.Context())
			return a.render(doctors, func(w io.Writer) {
				row(w, "ID", "NAME", "DEPARTMENT", "STATUS", "APPOINTMENT")
				for _, d := range doctors {
					row(w, d.ID, d.Name, d.Department, d.Status, orDash(d.CurrentAppointmentID))
				}
			})
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the persisted snapshot (--json for the full document)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := a.svc.Snapshot()
			return a.render(snap, func(w io.Writer) {
				row(w, "version", snap.Version)
				row(w, "reservations", len(snap.Reservations))
				row(w, "appointments", len(snap.Appointments))
				row(w, "tasks", len(snap.Tasks))
				row(w, "requests", len(snap.Requests))
				row(w, "inventory", len(snap.Inventory))
				row(w, "staff", len(snap.Staff))
				row(w, "room flags", len(snap.RoomFlags))
			})
		},
	}
}

func inventoryCmd(a *app) *cobra.Command {
	cmd := listCmd(a, "inventory", "List inventory (filters: category, stock=ok|low|out)",
		func(a *app, cmd *cobra.Command, q listview.Query) ([]domain.InventoryItem, error) {
			return a.svc.FilterInventory(cmd.Context(), q)
		},
		func(w io.Writer, items []domain.InventoryItem) {
			row(w, "ID", "NAME", "CATEGORY", "STOCK", "MIN", "MAX", "VALUE", "LAST RESTOCK")
			for _, i := range items {
				last := "-"
				if i.LastRestocked != nil {
					last = clock(*i.LastRestocked)
				}
				row(w, i.ID, i.Name, i.Category, i.CurrentStock, i.MinStock, i.MaxStock, i.Value().StringFixed(2), last)
			}
		})
	cmd.AddCommand(inventoryUpdateCmd(a))
	return cmd
}

func staffCmd(a *app) *cobra.Command {
	cmd := listCmd(a, "staff", "List staff (filters: status, role, department, shift)",
		func(a *app, cmd *cobra.Command, q listview.Query) ([]domain.StaffMember, error) {
			return a.svc.FilterStaff(cmd.Context(), q)
		},
		func(w io.Writer, items []domain.StaffMember) {
			row(w, "ID", "NAME", "ROLE", "DEPARTMENT", "STATUS", "SHIFT")
			for _, m := range items {
				row(w, m.ID, m.Name, m.Role, orDash(m.Department), m.Status, m.Shift)
			}
		})
	cmd.AddCommand(staffStatusCmd(a))
	return cmd
}
