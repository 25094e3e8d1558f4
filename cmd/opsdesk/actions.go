package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"opsdesk/internal/core"
	"opsdesk/pkg/domain"
)

// done prints the updated record as JSON or a one-line summary.
func (a *app) done(v any, format string, args ...any) error {
	return a.render(v, func(w io.Writer) { fmt.Fprintf(w, format+"\n", args...) })
}

// idAction wires a subcommand that moves one record by id. apply is a
// method expression such as (*core.Service).StartTask.
func idAction[T any](a *app, use, short string, apply func(s *core.Service, ctx context.Context, id string) (T, error), summary func(T) string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := apply(a.svc, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.done(v, "%s", summary(v))
		},
	}
}

func taskSummary(t domain.HousekeepingTask) string {
	return fmt.Sprintf("task %s %s (%s)", t.ID, t.Status, orDash(t.AssigneeName))
}

func requestSummary(r domain.ServiceRequest) string {
	return fmt.Sprintf("request %s %s (%s)", r.ID, r.Status, orDash(r.AssigneeName))
}

func reservationSummary(r domain.Reservation) string {
	return fmt.Sprintf("reservation %s %s room %s", r.ID, r.Status, r.RoomID)
}

func appointmentSummary(ap domain.Appointment) string {
	return fmt.Sprintf("appointment %s %s %s %s", ap.ID, ap.Status, day(ap.Date), ap.Time)
}

func restockCmd(a *app) *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   "restock <item> <quantity>",
		Short: "Add stock to an inventory item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity %q: %w", args[1], err)
			}
			item, err := a.svc.Restock(cmd.Context(), args[0], qty, actor)
			if err != nil {
				return err
			}
			return a.done(item, "%s now at %d %s", item.Name, item.CurrentStock, item.Unit)
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "name recorded in the restock ledger")
	return cmd
}

func inventoryUpdateCmd(a *app) *cobra.Command {
	var (
		minStock, maxStock       int
		location, supplier, cost string
		expires                  string
	)
	cmd := &cobra.Command{
		Use:   "update <item>",
		Short: "Change thresholds, location, supplier, cost or expiry of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch core.InventoryPatch
			flags := cmd.Flags()
			if flags.Changed("min") {
				patch.MinStock = &minStock
			}
			if flags.Changed("max") {
				patch.MaxStock = &maxStock
			}
			if flags.Changed("location") {
				patch.Location = &location
			}
			if flags.Changed("supplier") {
				patch.Supplier = &supplier
			}
			if flags.Changed("cost") {
				d, err := decimal.NewFromString(cost)
				if err != nil {
					return fmt.Errorf("cost %q: %w", cost, err)
				}
				patch.UnitCost = &d
			}
			if flags.Changed("expires") {
				t, err := a.parseDay(expires)
				if err != nil {
					return err
				}
				patch.ExpiresAt = &t
			}
			item, err := a.svc.UpdateInventoryItem(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return a.done(item, "item %s updated", item.ID)
		},
	}
	cmd.Flags().IntVar(&minStock, "min", 0, "reorder threshold")
	cmd.Flags().IntVar(&maxStock, "max", 0, "target stock level")
	cmd.Flags().StringVar(&location, "location", "", "storage location")
	cmd.Flags().StringVar(&supplier, "supplier", "", "supplier name")
	cmd.Flags().StringVar(&cost, "cost", "", "unit cost")
	cmd.Flags().StringVar(&expires, "expires", "", "expiry date YYYY-MM-DD")
	return cmd
}

func staffStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <staff> <status>",
		Short: "Change a staff member's duty status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.svc.SetStaffStatus(cmd.Context(), args[0], domain.StaffStatus(args[1]))
			if err != nil {
				return err
			}
			return a.done(m, "%s is %s", m.Name, m.Status)
		},
	}
}

func taskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "task", Short: "Work on housekeeping tasks"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "assign <task> <staff>",
			Short: "Assign a pending task",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := a.svc.AssignTask(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return a.done(t, "%s", taskSummary(t))
			},
		},
		idAction(a, "start", "Start an assigned task", (*core.Service).StartTask, taskSummary),
		idAction(a, "complete", "Complete an in-progress task", (*core.Service).CompleteTask, taskSummary),
		&cobra.Command{
			Use:   "toggle <task> <index>",
			Short: "Flip one checklist item (0-based)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("index %q: %w", args[1], err)
				}
				t, err := a.svc.ToggleChecklistItem(cmd.Context(), args[0], idx)
				if err != nil {
					return err
				}
				return a.done(t, "%s", taskSummary(t))
			},
		},
		taskCreateCmd(a),
		taskUpdateCmd(a),
	)
	return cmd
}

func taskCreateCmd(a *app) *cobra.Command {
	var room, kind, priority, notes, scheduled string
	var checklist []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new housekeeping task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			task := domain.HousekeepingTask{
				RoomID:   room,
				Type:     kind,
				Priority: domain.Priority(priority),
				Notes:    notes,
			}
			for _, label := range checklist {
				task.Checklist = append(task.Checklist, domain.ChecklistItem{Label: label})
			}
			if scheduled != "" {
				at, err := a.parseClock(scheduled)
				if err != nil {
					return err
				}
				task.ScheduledAt = at
			}
			t, err := a.svc.CreateTask(cmd.Context(), task)
			if err != nil {
				return err
			}
			return a.done(t, "%s", taskSummary(t))
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "room id")
	cmd.Flags().StringVar(&kind, "type", "cleaning", "task type")
	cmd.Flags().StringVar(&priority, "priority", "", "urgent, high, normal or low")
	cmd.Flags().StringVar(&notes, "notes", "", "free text notes")
	cmd.Flags().StringVar(&scheduled, "at", "", "scheduled time YYYY-MM-DD HH:MM (default now)")
	cmd.Flags().StringSliceVar(&checklist, "check", nil, "checklist item, repeatable")
	_ = cmd.MarkFlagRequired("room")
	return cmd
}

func taskUpdateCmd(a *app) *cobra.Command {
	var priority, notes, scheduled string
	cmd := &cobra.Command{
		Use:   "update <task>",
		Short: "Change notes, priority or schedule of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch core.TaskPatch
			if cmd.Flags().Changed("priority") {
				p := domain.Priority(priority)
				patch.Priority = &p
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if cmd.Flags().Changed("at") {
				at, err := a.parseClock(scheduled)
				if err != nil {
					return err
				}
				patch.ScheduledAt = &at
			}
			t, err := a.svc.UpdateTask(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return a.done(t, "%s", taskSummary(t))
		},
	}
	cmd.Flags().StringVar(&priority, "priority", "", "urgent, high, normal or low")
	cmd.Flags().StringVar(&notes, "notes", "", "free text notes")
	cmd.Flags().StringVar(&scheduled, "at", "", "scheduled time YYYY-MM-DD HH:MM")
	return cmd
}

func requestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "request", Short: "Work on guest service requests"}
	var room, guest, category, description, priority string
	create := &cobra.Command{
		Use:   "create",
		Short: "File a new service request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.svc.CreateServiceRequest(cmd.Context(), domain.ServiceRequest{
				RoomID:      room,
				GuestName:   guest,
				Category:    category,
				Description: description,
				Priority:    domain.Priority(priority),
			})
			if err != nil {
				return err
			}
			return a.done(r, "%s", requestSummary(r))
		},
	}
	create.Flags().StringVar(&room, "room", "", "room id")
	create.Flags().StringVar(&guest, "guest", "", "guest name")
	create.Flags().StringVar(&category, "category", "general", "request category")
	create.Flags().StringVar(&description, "description", "", "what the guest asked for")
	create.Flags().StringVar(&priority, "priority", "", "urgent, high, normal or low")
	_ = create.MarkFlagRequired("room")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "assign <request> <staff>",
			Short: "Assign a pending request",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := a.svc.AssignServiceRequest(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return a.done(r, "%s", requestSummary(r))
			},
		},
		idAction(a, "start", "Start an assigned request", (*core.Service).StartServiceRequest, requestSummary),
		idAction(a, "complete", "Complete an in-progress request", (*core.Service).CompleteServiceRequest, requestSummary),
		idAction(a, "cancel", "Cancel an open request", (*core.Service).CancelServiceRequest, requestSummary),
		create,
	)
	return cmd
}

func reservationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "reservation", Short: "Manage reservations"}
	var guest, email, room, checkIn, checkOut, method string
	var guests int
	create := &cobra.Command{
		Use:   "create",
		Short: "Book a room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := a.parseDay(checkIn)
			if err != nil {
				return err
			}
			out, err := a.parseDay(checkOut)
			if err != nil {
				return err
			}
			r, err := a.svc.CreateReservation(cmd.Context(), domain.Reservation{
				GuestName:     guest,
				GuestEmail:    email,
				RoomID:        room,
				CheckIn:       in,
				CheckOut:      out,
				Guests:        guests,
				PaymentMethod: method,
			})
			if err != nil {
				return err
			}
			return a.done(r, "%s total %s", reservationSummary(r), r.TotalAmount.StringFixed(2))
		},
	}
	create.Flags().StringVar(&guest, "guest", "", "guest name")
	create.Flags().StringVar(&email, "email", "", "guest email")
	create.Flags().StringVar(&room, "room", "", "room id")
	create.Flags().StringVar(&checkIn, "check-in", "", "arrival day YYYY-MM-DD")
	create.Flags().StringVar(&checkOut, "check-out", "", "departure day YYYY-MM-DD")
	create.Flags().IntVar(&guests, "guests", 1, "party size")
	create.Flags().StringVar(&method, "payment-method", "", "card, cash, bank transfer")
	for _, name := range []string{"guest", "room", "check-in", "check-out"} {
		_ = create.MarkFlagRequired(name)
	}

	var payMethod string
	pay := &cobra.Command{
		Use:   "pay <reservation> <pending|paid|refunded>",
		Short: "Record the payment state of a reservation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.svc.UpdateReservationPayment(cmd.Context(), args[0], domain.PaymentStatus(args[1]), payMethod)
			if err != nil {
				return err
			}
			return a.done(r, "reservation %s payment %s", r.ID, r.PaymentStatus)
		},
	}
	pay.Flags().StringVar(&payMethod, "method", "", "payment method")

	cmd.AddCommand(
		idAction(a, "checkin", "Check a guest in", (*core.Service).CheckIn, reservationSummary),
		idAction(a, "checkout", "Check a guest out and flag the room for cleaning", (*core.Service).CheckOut, reservationSummary),
		idAction(a, "cancel", "Cancel a confirmed reservation", (*core.Service).CancelReservation, reservationSummary),
		idAction(a, "no-show", "Close a reservation whose guest never arrived", (*core.Service).MarkReservationNoShow, reservationSummary),
		create,
		pay,
	)
	return cmd
}

func appointmentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "appointment", Short: "Manage hospital appointments"}
	var patientID, patient, doctor, date, at, kind, notes string
	schedule := &cobra.Command{
		Use:   "schedule",
		Short: "Book a patient with a doctor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.parseDay(date)
			if err != nil {
				return err
			}
			ap, err := a.svc.ScheduleAppointment(cmd.Context(), domain.Appointment{
				PatientID:   patientID,
				PatientName: patient,
				DoctorID:    doctor,
				Date:        d,
				Time:        at,
				Type:        kind,
				Notes:       notes,
			})
			if err != nil {
				return err
			}
			return a.done(ap, "%s", appointmentSummary(ap))
		},
	}
	schedule.Flags().StringVar(&patientID, "patient-id", "", "patient record id")
	schedule.Flags().StringVar(&patient, "patient", "", "patient name")
	schedule.Flags().StringVar(&doctor, "doctor", "", "doctor id")
	schedule.Flags().StringVar(&date, "date", "", "day YYYY-MM-DD")
	schedule.Flags().StringVar(&at, "time", "", "wall-clock time HH:MM")
	schedule.Flags().StringVar(&kind, "type", "consultation", "visit type")
	schedule.Flags().StringVar(&notes, "notes", "", "free text notes")
	for _, name := range []string{"patient", "doctor", "date", "time"} {
		_ = schedule.MarkFlagRequired(name)
	}

	cmd.AddCommand(
		idAction(a, "confirm", "Confirm a scheduled appointment", (*core.Service).ConfirmAppointment, appointmentSummary),
		idAction(a, "start", "Start a confirmed appointment", (*core.Service).StartAppointment, appointmentSummary),
		idAction(a, "complete", "Complete an appointment in progress", (*core.Service).CompleteAppointment, appointmentSummary),
		idAction(a, "cancel", "Cancel an appointment", (*core.Service).CancelAppointment, appointmentSummary),
		idAction(a, "no-show", "Mark a confirmed appointment as missed", (*core.Service).MarkAppointmentNoShow, appointmentSummary),
		schedule,
	)
	return cmd
}

func roomCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "room", Short: "Flag rooms for cleaning or maintenance"}
	var note, actor string
	flag := &cobra.Command{
		Use:   "flag <room> <cleaning|maintenance>",
		Short: "Put a room into cleaning or maintenance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.svc.FlagRoom(cmd.Context(), args[0], domain.RoomStatus(args[1]), note, actor)
			if err != nil {
				return err
			}
			return a.done(f, "room %s flagged %s by %s", f.RoomID, f.Status, f.SetBy)
		},
	}
	flag.Flags().StringVar(&note, "note", "", "reason shown to staff")
	flag.Flags().StringVar(&actor, "actor", "", "who set the flag")

	unflag := &cobra.Command{
		Use:   "unflag <room>",
		Short: "Clear a room's cleaning or maintenance flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cleared, err := a.svc.ClearRoomFlag(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			result := struct {
				RoomID  string `json:"room_id"`
				Cleared bool   `json:"cleared"`
			}{args[0], cleared}
			if !cleared {
				return a.done(result, "room %s had no flag", args[0])
			}
			return a.done(result, "room %s flag cleared", args[0])
		},
	}
	cmd.AddCommand(flag, unflag)
	return cmd
}

// parseDay reads YYYY-MM-DD as a calendar day in the desk's time zone.
func (a *app) parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, a.cfg.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

func (a *app) parseClock(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, a.cfg.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected YYYY-MM-DD HH:MM)", s)
	}
	return t, nil
}
