package seed

import (
	"time"

	"opsdesk/pkg/domain"
)

// Hotel returns the hotel desk seed: eight rooms over three floors, two
// in-house guests, arrivals today and later in the week, open housekeeping and
// guest requests, a supply room and the front-of-house staff.
func Hotel(now time.Time) domain.Dataset {
	today := domain.CivilDate(now)
	day := func(offset int) time.Time { return today.AddDate(0, 0, offset) }

	rooms := []domain.Room{
		{ID: "room-201", Number: "201", Floor: 2, Type: "standard", NightlyPrice: money("89.00"), Capacity: 2, Amenities: []string{"wifi", "tv"}},
		{ID: "room-202", Number: "202", Floor: 2, Type: "standard", NightlyPrice: money("89.00"), Capacity: 2, Amenities: []string{"wifi", "tv"}},
		{ID: "room-204", Number: "204", Floor: 2, Type: "family", NightlyPrice: money("139.00"), Capacity: 4, Amenities: []string{"wifi", "tv", "sofa bed"}},
		{ID: "room-305", Number: "305", Floor: 3, Type: "deluxe", NightlyPrice: money("149.00"), Capacity: 2, Amenities: []string{"wifi", "tv", "minibar", "balcony"}},
		{ID: "room-306", Number: "306", Floor: 3, Type: "deluxe", NightlyPrice: money("149.00"), Capacity: 3, Amenities: []string{"wifi", "tv", "minibar"}},
		{ID: "room-310", Number: "310", Floor: 3, Type: "standard", NightlyPrice: money("95.00"), Capacity: 2, Amenities: []string{"wifi"}},
		{ID: "room-412", Number: "412", Floor: 4, Type: "suite", NightlyPrice: money("289.00"), Capacity: 4, Amenities: []string{"wifi", "tv", "minibar", "jacuzzi", "lounge"}},
		{ID: "room-414", Number: "414", Floor: 4, Type: "suite", NightlyPrice: money("259.00"), Capacity: 3, Amenities: []string{"wifi", "tv", "minibar"}},
	}

	reservations := []domain.Reservation{
		{
			ID: "res-1001", GuestName: "Maria Lopez", GuestEmail: "maria.lopez@example.com", RoomID: "room-305",
			CheckIn: day(-2), CheckOut: day(1), Guests: 2, Status: domain.ReservationCheckedIn,
			TotalAmount: money("447.00"), PaymentStatus: domain.PaymentPaid, PaymentMethod: "card",
			CreatedAt: at(day(-9), 14, 5), CheckedInAt: ptr(at(day(-2), 15, 20)),
		},
		{
			ID: "res-1002", GuestName: "Kenji Watanabe", GuestEmail: "kenji.w@example.com", RoomID: "room-412",
			CheckIn: day(-1), CheckOut: day(0), Guests: 3, Status: domain.ReservationCheckedIn,
			TotalAmount: money("289.00"), PaymentStatus: domain.PaymentPending, PaymentMethod: "cash",
			CreatedAt: at(day(-20), 9, 40), CheckedInAt: ptr(at(day(-1), 16, 2)),
		},
		{
			ID: "res-1003", GuestName: "Amelia Hart", GuestEmail: "amelia.hart@example.com", RoomID: "room-201",
			CheckIn: day(0), CheckOut: day(3), Guests: 1, Status: domain.ReservationConfirmed,
			TotalAmount: money("267.00"), PaymentStatus: domain.PaymentPaid, PaymentMethod: "card",
			CreatedAt: at(day(-5), 11, 15),
		},
		{
			ID: "res-1004", GuestName: "Omar Haddad", RoomID: "room-306",
			CheckIn: day(2), CheckOut: day(5), Guests: 2, Status: domain.ReservationConfirmed,
			TotalAmount: money("447.00"), PaymentStatus: domain.PaymentPending, PaymentMethod: "bank transfer",
			CreatedAt: at(day(-3), 18, 30),
		},
		{
			ID: "res-1005", GuestName: "Lena Fischer", GuestEmail: "lena.f@example.com", RoomID: "room-204",
			CheckIn: day(-4), CheckOut: day(-1), Guests: 4, Status: domain.ReservationCheckedOut,
			TotalAmount: money("417.00"), PaymentStatus: domain.PaymentPaid, PaymentMethod: "card",
			CreatedAt: at(day(-30), 8, 0), CheckedInAt: ptr(at(day(-4), 14, 0)), CheckedOutAt: ptr(at(day(-1), 10, 45)),
		},
		{
			ID: "res-1006", GuestName: "Priya Nair", RoomID: "room-202",
			CheckIn: day(1), CheckOut: day(2), Guests: 2, Status: domain.ReservationCancelled,
			TotalAmount: money("89.00"), PaymentStatus: domain.PaymentRefunded, PaymentMethod: "card",
			CreatedAt: at(day(-6), 12, 0), CancelledAt: ptr(at(day(-2), 9, 0)),
		},
	}

	flags := []domain.RoomFlag{
		{RoomID: "room-204", Status: domain.RoomCleaning, Note: "post-checkout clean", SetBy: "front desk", SetAt: at(day(-1), 10, 46)},
		{RoomID: "room-414", Status: domain.RoomMaintenance, Note: "AC unit leaking", SetBy: "Tomás Reyes", SetAt: at(day(-1), 17, 10)},
	}

	tasks := []domain.HousekeepingTask{
		{
			ID: "task-1", RoomID: "room-204", Type: "checkout-clean", Priority: domain.PriorityHigh, Status: domain.WorkAssigned,
			Checklist:  checklist("Strip beds", "Clean bathroom", "Restock minibar", "Vacuum"),
			AssigneeID: "staff-3", AssigneeName: "Grace Okafor", ScheduledAt: at(day(0), 9, 0),
			CreatedAt: at(day(-1), 10, 46), AssignedAt: ptr(at(day(-1), 11, 0)),
		},
		{
			ID: "task-2", RoomID: "room-414", Type: "maintenance", Priority: domain.PriorityUrgent, Status: domain.WorkPending,
			Notes: "AC unit leaking onto carpet", ScheduledAt: at(day(0), 8, 0), CreatedAt: at(day(-1), 17, 10),
		},
		{
			ID: "task-3", RoomID: "room-305", Type: "turndown", Priority: domain.PriorityLow, Status: domain.WorkPending,
			Checklist: checklist("Turn down bed", "Refresh towels"), ScheduledAt: at(day(0), 19, 0), CreatedAt: at(day(0), 7, 0),
		},
		{
			ID: "task-4", RoomID: "room-201", Type: "inspection", Priority: domain.PriorityNormal, Status: domain.WorkInProgress,
			Checklist:  []domain.ChecklistItem{{Label: "Check linens", Completed: true}, {Label: "Test TV"}},
			AssigneeID: "staff-4", AssigneeName: "Daniel Kim", ScheduledAt: at(day(0), 11, 0),
			CreatedAt: at(day(-1), 18, 0), AssignedAt: ptr(at(day(0), 8, 30)), StartedAt: ptr(at(day(0), 10, 50)),
		},
		{
			ID: "task-5", RoomID: "room-310", Type: "deep-clean", Priority: domain.PriorityNormal, Status: domain.WorkCompleted,
			AssigneeID: "staff-3", AssigneeName: "Grace Okafor", ScheduledAt: at(day(-1), 9, 0),
			CreatedAt: at(day(-2), 9, 0), AssignedAt: ptr(at(day(-2), 9, 30)), StartedAt: ptr(at(day(-1), 9, 5)), CompletedAt: ptr(at(day(-1), 11, 40)),
		},
	}

	requests := []domain.ServiceRequest{
		{
			ID: "req-1", RoomID: "room-305", GuestName: "Maria Lopez", Category: "amenities", Description: "Extra pillows and a blanket",
			Priority: domain.PriorityNormal, Status: domain.WorkPending, CreatedAt: at(day(0), 7, 45),
		},
		{
			ID: "req-2", RoomID: "room-412", GuestName: "Kenji Watanabe", Category: "maintenance", Description: "Shower drain is blocked",
			Priority: domain.PriorityUrgent, Status: domain.WorkAssigned, AssigneeID: "staff-5", AssigneeName: "Tomás Reyes",
			CreatedAt: at(day(0), 6, 55), AssignedAt: ptr(at(day(0), 7, 5)),
		},
		{
			ID: "req-3", RoomID: "room-412", GuestName: "Kenji Watanabe", Category: "transport", Description: "Taxi to the airport at 11:00",
			Priority: domain.PriorityHigh, Status: domain.WorkPending, CreatedAt: at(day(-1), 21, 10),
		},
		{
			ID: "req-4", RoomID: "room-305", GuestName: "Maria Lopez", Category: "room service", Description: "Late checkout request",
			Priority: domain.PriorityLow, Status: domain.WorkCompleted, AssigneeID: "staff-1", AssigneeName: "Sofia Rossi",
			CreatedAt: at(day(-1), 9, 0), AssignedAt: ptr(at(day(-1), 9, 10)), StartedAt: ptr(at(day(-1), 9, 12)), CompletedAt: ptr(at(day(-1), 9, 20)),
		},
	}

	inventory := []domain.InventoryItem{
		{
			ID: "inv-1", Name: "Bath towels", SKU: "LIN-TWL-01", Category: "linen", CurrentStock: 140, MinStock: 80, MaxStock: 240,
			Unit: "piece", UnitCost: money("6.50"), Location: "Linen room B1", Supplier: "Textilia",
			LastRestocked: ptr(at(day(-12), 10, 0)), RestockHistory: []domain.RestockEntry{{At: at(day(-12), 10, 0), Quantity: 60, Actor: "Sofia Rossi"}},
		},
		{
			ID: "inv-2", Name: "Shampoo minis", SKU: "AMN-SHP-30", Category: "amenities", CurrentStock: 45, MinStock: 60, MaxStock: 400,
			Unit: "bottle", UnitCost: money("0.45"), Location: "Store room 2", Supplier: "Aroma Supply", RestockHistory: []domain.RestockEntry{},
		},
		{
			ID: "inv-3", Name: "Coffee capsules", SKU: "FNB-COF-10", Category: "food & beverage", CurrentStock: 0, MinStock: 50, MaxStock: 500,
			Unit: "capsule", UnitCost: money("0.38"), Location: "Kitchen pantry", Supplier: "Roastery Co",
			ExpiresAt: ptr(day(120)), RestockHistory: []domain.RestockEntry{},
		},
		{
			ID: "inv-4", Name: "Sparkling water", SKU: "FNB-WTR-33", Category: "food & beverage", CurrentStock: 96, MinStock: 48, MaxStock: 192,
			Unit: "bottle", UnitCost: money("0.90"), Location: "Kitchen pantry", Supplier: "Alpine Springs",
			ExpiresAt: ptr(day(40)), RestockHistory: []domain.RestockEntry{},
		},
		{
			ID: "inv-5", Name: "Glass cleaner", SKU: "CLN-GLS-05", Category: "cleaning", CurrentStock: 12, MinStock: 10, MaxStock: 40,
			Unit: "litre", UnitCost: money("3.20"), Location: "Housekeeping cart bay", Supplier: "CleanPro", RestockHistory: []domain.RestockEntry{},
		},
	}

	staff := []domain.StaffMember{
		{ID: "staff-1", Name: "Sofia Rossi", Role: "front desk", Department: "front office", Status: domain.StaffOnDuty, Shift: "morning", Email: "sofia.rossi@opsdesk.example"},
		{ID: "staff-2", Name: "Liam Walsh", Role: "night auditor", Department: "front office", Status: domain.StaffOffDuty, Shift: "night"},
		{ID: "staff-3", Name: "Grace Okafor", Role: "housekeeper", Department: "housekeeping", Status: domain.StaffOnDuty, Shift: "morning"},
		{ID: "staff-4", Name: "Daniel Kim", Role: "housekeeping supervisor", Department: "housekeeping", Status: domain.StaffBusy, Shift: "morning"},
		{ID: "staff-5", Name: "Tomás Reyes", Role: "maintenance", Department: "engineering", Status: domain.StaffOnDuty, Shift: "afternoon"},
		{ID: "staff-6", Name: "Hannah Berg", Role: "concierge", Department: "front office", Status: domain.StaffBreak, Shift: "afternoon"},
	}

	return domain.Dataset{
		Rooms:        rooms,
		RoomFlags:    flags,
		Reservations: reservations,
		Tasks:        tasks,
		Requests:     requests,
		Inventory:    inventory,
		Staff:        staff,
	}
}
