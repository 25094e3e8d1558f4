package seed

import (
	"time"

	"opsdesk/pkg/domain"
)

// Hospital returns the hospital desk seed: outpatient doctors, today's
// appointment book, pharmacy and ward supplies, and clinic staff.
func Hospital(now time.Time) domain.Dataset {
	today := domain.CivilDate(now)
	day := func(offset int) time.Time { return today.AddDate(0, 0, offset) }

	doctors := []domain.Doctor{
		{ID: "doc-1", Name: "Dr. Alice Moreau", Specialty: "cardiology", Department: "cardiology", OnDuty: true},
		{ID: "doc-2", Name: "Dr. Ben Adeyemi", Specialty: "general practice", Department: "outpatients", OnDuty: true},
		{ID: "doc-3", Name: "Dr. Chen Wei", Specialty: "pediatrics", Department: "pediatrics", OnDuty: true},
		{ID: "doc-4", Name: "Dr. Dana Ivanova", Specialty: "dermatology", Department: "dermatology", OnDuty: false},
	}

	appointments := []domain.Appointment{
		{
			ID: "apt-1", PatientID: "pat-101", PatientName: "George Miller", DoctorID: "doc-1", DoctorName: "Dr. Alice Moreau",
			Department: "cardiology", Date: day(0), Time: "09:00", Type: "follow-up", Status: domain.AppointmentCompleted,
			Insurance: domain.Insurance{Provider: "MediCare Plus", PolicyNumber: "MCP-55120", Verified: true},
			CreatedAt: at(day(-14), 10, 0), StartedAt: ptr(at(day(0), 9, 2)), CompletedAt: ptr(at(day(0), 9, 31)),
		},
		{
			ID: "apt-2", PatientID: "pat-102", PatientName: "Nora Lindqvist", DoctorID: "doc-2", DoctorName: "Dr. Ben Adeyemi",
			Department: "outpatients", Date: day(0), Time: "10:30", Type: "consultation", Status: domain.AppointmentInProgress,
			Insurance: domain.Insurance{Provider: "HealthFirst", PolicyNumber: "HF-88231", Verified: true},
			CreatedAt: at(day(-3), 16, 20), StartedAt: ptr(at(day(0), 10, 34)),
		},
		{
			ID: "apt-3", PatientID: "pat-103", PatientName: "Samuel Osei", DoctorID: "doc-3", DoctorName: "Dr. Chen Wei",
			Department: "pediatrics", Date: day(0), Time: "14:00", Type: "vaccination", Status: domain.AppointmentConfirmed,
			Insurance: domain.Insurance{Provider: "KidsCare", PolicyNumber: "KC-10293"},
			Notes:     "Guardian: Ama Osei", CreatedAt: at(day(-7), 9, 15),
		},
		{
			ID: "apt-4", PatientID: "pat-104", PatientName: "Rita Costa", DoctorID: "doc-1", DoctorName: "Dr. Alice Moreau",
			Department: "cardiology", Date: day(0), Time: "15:30", Type: "ecg", Status: domain.AppointmentScheduled,
			CreatedAt: at(day(-1), 12, 0),
		},
		{
			ID: "apt-5", PatientID: "pat-105", PatientName: "Yusuf Demir", DoctorID: "doc-2", DoctorName: "Dr. Ben Adeyemi",
			Department: "outpatients", Date: day(0), Time: "08:15", Type: "consultation", Status: domain.AppointmentCancelled,
			CreatedAt: at(day(-2), 8, 0), CancelledAt: ptr(at(day(-1), 19, 0)),
		},
		{
			ID: "apt-6", PatientID: "pat-106", PatientName: "Ingrid Sand", DoctorID: "doc-4", DoctorName: "Dr. Dana Ivanova",
			Department: "dermatology", Date: day(1), Time: "11:00", Type: "consultation", Status: domain.AppointmentScheduled,
			Insurance: domain.Insurance{Provider: "HealthFirst", PolicyNumber: "HF-90011"}, CreatedAt: at(day(-4), 13, 45),
		},
	}

	inventory := []domain.InventoryItem{
		{
			ID: "med-1", Name: "Amoxicillin 500mg", SKU: "RX-AMX-500", Category: "pharmacy", CurrentStock: 320, MinStock: 200, MaxStock: 1000,
			Unit: "capsule", UnitCost: money("0.12"), Location: "Pharmacy shelf A3", Supplier: "PharmaLink",
			ExpiresAt: ptr(day(60)), RestockHistory: []domain.RestockEntry{},
		},
		{
			ID: "med-2", Name: "Saline 0.9% 500ml", SKU: "IV-SAL-500", Category: "iv fluids", CurrentStock: 18, MinStock: 40, MaxStock: 160,
			Unit: "bag", UnitCost: money("1.85"), Location: "Ward store 1", Supplier: "MedSupply", ExpiresAt: ptr(day(300)),
			LastRestocked: ptr(at(day(-20), 8, 0)), RestockHistory: []domain.RestockEntry{{At: at(day(-20), 8, 0), Quantity: 40, Actor: "Ruth Mensah"}},
		},
		{
			ID: "med-3", Name: "Nitrile gloves (M)", SKU: "PPE-GLV-M", Category: "ppe", CurrentStock: 900, MinStock: 500, MaxStock: 3000,
			Unit: "glove", UnitCost: money("0.06"), Location: "Central store", Supplier: "SafeHands", RestockHistory: []domain.RestockEntry{},
		},
		{
			ID: "med-4", Name: "Insulin glargine pen", SKU: "RX-INS-GLA", Category: "pharmacy", CurrentStock: 0, MinStock: 10, MaxStock: 60,
			Unit: "pen", UnitCost: money("24.90"), Location: "Pharmacy fridge 1", Supplier: "PharmaLink",
			ExpiresAt: ptr(day(-3)), RestockHistory: []domain.RestockEntry{},
		},
	}

	staff := []domain.StaffMember{
		{ID: "hstaff-1", Name: "Ruth Mensah", Role: "charge nurse", Department: "outpatients", Status: domain.StaffOnDuty, Shift: "morning", Email: "ruth.mensah@opsdesk.example"},
		{ID: "hstaff-2", Name: "Pavel Novak", Role: "pharmacist", Department: "pharmacy", Status: domain.StaffOnDuty, Shift: "morning"},
		{ID: "hstaff-3", Name: "Julia Santos", Role: "receptionist", Department: "front desk", Status: domain.StaffBreak, Shift: "afternoon"},
		{ID: "hstaff-4", Name: "Ahmed Karim", Role: "nurse", Department: "pediatrics", Status: domain.StaffOnLeave, Shift: "night"},
	}

	return domain.Dataset{
		Doctors:      doctors,
		Appointments: appointments,
		Inventory:    inventory,
		Staff:        staff,
	}
}
