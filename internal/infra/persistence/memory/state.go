package memory

import (
	"sort"
	"time"

	"opsdesk/pkg/domain"
)

// SnapshotVersion is the schema version written by ExportState.
const SnapshotVersion = 1

// Snapshot is the persisted subset of the store. Rooms and doctors are
// reference data rebuilt from seed on every load and are never included.
type Snapshot struct {
	Version      int                       `json:"version"`
	Reservations []domain.Reservation      `json:"reservations"`
	Appointments []domain.Appointment      `json:"appointments"`
	Tasks        []domain.HousekeepingTask `json:"tasks"`
	Requests     []domain.ServiceRequest   `json:"requests"`
	Inventory    []domain.InventoryItem    `json:"inventory"`
	Staff        []domain.StaffMember      `json:"staff"`
	RoomFlags    []domain.RoomFlag         `json:"room_flags"`
}

type memoryState struct {
	rooms        *Collection[domain.Room]
	flags        *Collection[domain.RoomFlag]
	reservations *Collection[domain.Reservation]
	doctors      *Collection[domain.Doctor]
	appointments *Collection[domain.Appointment]
	tasks        *Collection[domain.HousekeepingTask]
	requests     *Collection[domain.ServiceRequest]
	inventory    *Collection[domain.InventoryItem]
	staff        *Collection[domain.StaffMember]
}

func newMemoryState() memoryState {
	return memoryState{
		rooms:        NewCollection(domain.EntityRoom, func(r domain.Room) string { return r.ID }, cloneRoom),
		flags:        NewCollection(domain.EntityRoomFlag, func(f domain.RoomFlag) string { return f.RoomID }, cloneRoomFlag),
		reservations: NewCollection(domain.EntityReservation, func(r domain.Reservation) string { return r.ID }, cloneReservation),
		doctors:      NewCollection(domain.EntityDoctor, func(d domain.Doctor) string { return d.ID }, cloneDoctor),
		appointments: NewCollection(domain.EntityAppointment, func(a domain.Appointment) string { return a.ID }, cloneAppointment),
		tasks:        NewCollection(domain.EntityTask, func(t domain.HousekeepingTask) string { return t.ID }, cloneTask),
		requests:     NewCollection(domain.EntityServiceRequest, func(r domain.ServiceRequest) string { return r.ID }, cloneRequest),
		inventory:    NewCollection(domain.EntityInventoryItem, func(i domain.InventoryItem) string { return i.ID }, cloneInventoryItem),
		staff:        NewCollection(domain.EntityStaff, func(s domain.StaffMember) string { return s.ID }, cloneStaff),
	}
}

func memoryStateFromDataset(ds domain.Dataset) memoryState {
	state := newMemoryState()
	state.rooms.Replace(ds.Rooms)
	state.flags.Replace(ds.RoomFlags)
	state.reservations.Replace(ds.Reservations)
	state.doctors.Replace(ds.Doctors)
	state.appointments.Replace(ds.Appointments)
	state.tasks.Replace(ds.Tasks)
	state.requests.Replace(ds.Requests)
	state.inventory.Replace(ds.Inventory)
	state.staff.Replace(ds.Staff)
	return state
}

func (s memoryState) clone() memoryState {
	return memoryState{
		rooms:        s.rooms.copy(),
		flags:        s.flags.copy(),
		reservations: s.reservations.copy(),
		doctors:      s.doctors.copy(),
		appointments: s.appointments.copy(),
		tasks:        s.tasks.copy(),
		requests:     s.requests.copy(),
		inventory:    s.inventory.copy(),
		staff:        s.staff.copy(),
	}
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	return Snapshot{
		Version:      SnapshotVersion,
		Reservations: state.reservations.List(),
		Appointments: state.appointments.List(),
		Tasks:        state.tasks.List(),
		Requests:     state.requests.List(),
		Inventory:    state.inventory.List(),
		Staff:        state.staff.List(),
		RoomFlags:    state.flags.List(),
	}
}

// applySnapshot replaces the persisted collections of state, keeping rooms
// and doctors. Flags for rooms that no longer exist are dropped.
func applySnapshot(state *memoryState, s Snapshot) {
	state.reservations.Replace(s.Reservations)
	state.appointments.Replace(s.Appointments)
	state.tasks.Replace(s.Tasks)
	state.requests.Replace(s.Requests)
	state.inventory.Replace(s.Inventory)
	state.staff.Replace(s.Staff)
	flags := make([]domain.RoomFlag, 0, len(s.RoomFlags))
	for _, f := range s.RoomFlags {
		if _, ok := state.rooms.Get(f.RoomID); ok {
			flags = append(flags, f)
		}
	}
	state.flags.Replace(flags)
}

// migrateSnapshot normalises snapshots written by older or damaged clients.
func migrateSnapshot(snapshot Snapshot) Snapshot {
	if snapshot.Reservations == nil {
		snapshot.Reservations = []domain.Reservation{}
	}
	if snapshot.Appointments == nil {
		snapshot.Appointments = []domain.Appointment{}
	}
	if snapshot.Tasks == nil {
		snapshot.Tasks = []domain.HousekeepingTask{}
	}
	if snapshot.Requests == nil {
		snapshot.Requests = []domain.ServiceRequest{}
	}
	if snapshot.Inventory == nil {
		snapshot.Inventory = []domain.InventoryItem{}
	}
	if snapshot.Staff == nil {
		snapshot.Staff = []domain.StaffMember{}
	}
	if snapshot.RoomFlags == nil {
		snapshot.RoomFlags = []domain.RoomFlag{}
	}

	for i, item := range snapshot.Inventory {
		if item.CurrentStock < 0 {
			item.CurrentStock = 0
		}
		if item.RestockHistory == nil {
			item.RestockHistory = []domain.RestockEntry{}
		}
		history := cloneSlice(item.RestockHistory)
		sort.SliceStable(history, func(a, b int) bool { return history[a].At.After(history[b].At) })
		item.RestockHistory = history
		snapshot.Inventory[i] = item
	}

	flags := snapshot.RoomFlags[:0:0]
	for _, f := range snapshot.RoomFlags {
		if f.RoomID == "" || (f.Status != domain.RoomCleaning && f.Status != domain.RoomMaintenance) {
			continue
		}
		flags = append(flags, f)
	}
	snapshot.RoomFlags = flags

	for i, task := range snapshot.Tasks {
		if task.Priority == "" {
			task.Priority = domain.PriorityNormal
		}
		snapshot.Tasks[i] = task
	}
	for i, req := range snapshot.Requests {
		if req.Priority == "" {
			req.Priority = domain.PriorityNormal
		}
		snapshot.Requests[i] = req
	}

	snapshot.Version = SnapshotVersion
	return snapshot
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneRoom(r domain.Room) domain.Room {
	r.Amenities = cloneSlice(r.Amenities)
	return r
}

func cloneRoomFlag(f domain.RoomFlag) domain.RoomFlag { return f }
func cloneDoctor(d domain.Doctor) domain.Doctor       { return d }
func cloneStaff(s domain.StaffMember) domain.StaffMember {
	return s
}

func cloneReservation(r domain.Reservation) domain.Reservation {
	r.CheckedInAt = cloneTime(r.CheckedInAt)
	r.CheckedOutAt = cloneTime(r.CheckedOutAt)
	r.CancelledAt = cloneTime(r.CancelledAt)
	return r
}

func cloneAppointment(a domain.Appointment) domain.Appointment {
	a.StartedAt = cloneTime(a.StartedAt)
	a.CompletedAt = cloneTime(a.CompletedAt)
	a.CancelledAt = cloneTime(a.CancelledAt)
	return a
}

func cloneTask(t domain.HousekeepingTask) domain.HousekeepingTask {
	t.Checklist = cloneSlice(t.Checklist)
	t.AssignedAt = cloneTime(t.AssignedAt)
	t.StartedAt = cloneTime(t.StartedAt)
	t.CompletedAt = cloneTime(t.CompletedAt)
	return t
}

func cloneRequest(r domain.ServiceRequest) domain.ServiceRequest {
	r.AssignedAt = cloneTime(r.AssignedAt)
	r.StartedAt = cloneTime(r.StartedAt)
	r.CompletedAt = cloneTime(r.CompletedAt)
	r.CancelledAt = cloneTime(r.CancelledAt)
	return r
}

func cloneInventoryItem(i domain.InventoryItem) domain.InventoryItem {
	i.ExpiresAt = cloneTime(i.ExpiresAt)
	i.LastRestocked = cloneTime(i.LastRestocked)
	i.RestockHistory = cloneSlice(i.RestockHistory)
	return i
}
