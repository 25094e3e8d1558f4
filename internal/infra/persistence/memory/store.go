// Package memory provides the in-memory transactional state behind the admin
// store. It owns every collection, recomputes derived occupancy on commit and
// converts to and from the persisted Snapshot form.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"opsdesk/internal/occupancy"
	"opsdesk/pkg/domain"
)

// Store is a single-writer, multi-reader holder of the admin collections.
type Store struct {
	mu    sync.RWMutex
	state memoryState
	nowFn func() time.Time
	loc   *time.Location
}

// Option configures a Store.
type Option func(*Store)

// WithNow overrides the clock used for transaction timestamps and calendar days.
func WithNow(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.nowFn = fn
		}
	}
}

// WithLocation sets the time zone that defines "today".
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewStore constructs a store seeded with ds. Derived fields are computed
// immediately so the first read is consistent.
func NewStore(ds domain.Dataset, opts ...Option) *Store {
	s := &Store{
		state: memoryStateFromDataset(ds),
		nowFn: func() time.Time { return time.Now().UTC() },
		loc:   time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recompute(&s.state, true, true)
	return s
}

// ExportState clones the persisted collections.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the persisted collections with snapshot and rebuilds
// room and doctor status from the result.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.clone()
	applySnapshot(&next, migrateSnapshot(snapshot))
	s.recompute(&next, true, true)
	s.state = next
}

func (s *Store) recompute(state *memoryState, rooms, doctors bool) {
	if rooms {
		today := domain.Today(s.nowFn(), s.loc)
		state.rooms.Replace(occupancy.Rooms(state.rooms.List(), state.reservations.List(), state.flags.List(), today))
	}
	if doctors {
		state.doctors.Replace(occupancy.Doctors(state.doctors.List(), state.appointments.List()))
	}
}

// RunInTransaction executes fn against a private copy of the state. When fn
// succeeds, derived status is refreshed for whatever the changes touched and
// the copy replaces the live state; on error nothing is committed.
func (s *Store) RunInTransaction(_ context.Context, fn func(tx *Transaction) error) ([]domain.Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Transaction{
		state: s.state.clone(),
		now:   s.nowFn(),
	}
	if err := fn(tx); err != nil {
		return nil, err
	}

	var rooms, doctors bool
	for _, change := range tx.changes {
		switch change.Entity {
		case domain.EntityReservation, domain.EntityRoomFlag:
			rooms = true
		case domain.EntityAppointment:
			doctors = true
		}
	}
	s.recompute(&tx.state, rooms, doctors)
	s.state = tx.state
	return tx.changes, nil
}

// View executes fn against a read-only copy of the state. Room status is
// re-derived for the current day so a date change is visible without a write.
func (s *Store) View(_ context.Context, fn func(domain.StateView) error) error {
	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()
	s.recompute(&snapshot, true, false)
	return fn(stateView{state: &snapshot})
}

type stateView struct {
	state *memoryState
}

func (v stateView) ListRooms() []domain.Room                     { return v.state.rooms.List() }
func (v stateView) ListRoomFlags() []domain.RoomFlag             { return v.state.flags.List() }
func (v stateView) ListReservations() []domain.Reservation       { return v.state.reservations.List() }
func (v stateView) ListDoctors() []domain.Doctor                 { return v.state.doctors.List() }
func (v stateView) ListAppointments() []domain.Appointment       { return v.state.appointments.List() }
func (v stateView) ListTasks() []domain.HousekeepingTask         { return v.state.tasks.List() }
func (v stateView) ListServiceRequests() []domain.ServiceRequest { return v.state.requests.List() }
func (v stateView) ListInventory() []domain.InventoryItem        { return v.state.inventory.List() }
func (v stateView) ListStaff() []domain.StaffMember              { return v.state.staff.List() }

// Transaction is a mutation set applied to a private copy of the store state.
type Transaction struct {
	state   memoryState
	changes []domain.Change
	now     time.Time
}

// Now is the timestamp shared by every write in the transaction.
func (tx *Transaction) Now() time.Time { return tx.now }

func (tx *Transaction) record(entity domain.EntityType, action domain.Action, id string) {
	tx.changes = append(tx.changes, domain.Change{Entity: entity, Action: action, ID: id})
}

func update[T any](tx *Transaction, c *Collection[T], entity domain.EntityType, id string, fn func(*T) error) (T, error) {
	v, err := c.Apply(id, fn)
	if err != nil {
		return v, err
	}
	tx.record(entity, domain.ActionUpdate, id)
	return v, nil
}

func insert[T any](tx *Transaction, c *Collection[T], entity domain.EntityType, id string, v T) (T, error) {
	if err := c.Insert(v); err != nil {
		var zero T
		return zero, err
	}
	tx.record(entity, domain.ActionCreate, id)
	out, _ := c.Get(id)
	return out, nil
}

func newID() string { return uuid.NewString() }

// FindRoom looks up a room.
func (tx *Transaction) FindRoom(id string) (domain.Room, bool) { return tx.state.rooms.Get(id) }

// FindDoctor looks up a doctor.
func (tx *Transaction) FindDoctor(id string) (domain.Doctor, bool) { return tx.state.doctors.Get(id) }

// FindStaff looks up a staff member.
func (tx *Transaction) FindStaff(id string) (domain.StaffMember, bool) { return tx.state.staff.Get(id) }

// FindRoomFlag returns the explicit flag on a room, if any.
func (tx *Transaction) FindRoomFlag(roomID string) (domain.RoomFlag, bool) {
	return tx.state.flags.Get(roomID)
}

// CreateReservation stores a new reservation, generating an id when empty.
func (tx *Transaction) CreateReservation(r domain.Reservation) (domain.Reservation, error) {
	if r.ID == "" {
		r.ID = newID()
	}
	r.CreatedAt = tx.now
	return insert(tx, tx.state.reservations, domain.EntityReservation, r.ID, r)
}

// UpdateReservation mutates a reservation in place.
func (tx *Transaction) UpdateReservation(id string, fn func(*domain.Reservation) error) (domain.Reservation, error) {
	return update(tx, tx.state.reservations, domain.EntityReservation, id, fn)
}

// CreateAppointment stores a new appointment, generating an id when empty.
func (tx *Transaction) CreateAppointment(a domain.Appointment) (domain.Appointment, error) {
	if a.ID == "" {
		a.ID = newID()
	}
	a.CreatedAt = tx.now
	return insert(tx, tx.state.appointments, domain.EntityAppointment, a.ID, a)
}

// UpdateAppointment mutates an appointment in place.
func (tx *Transaction) UpdateAppointment(id string, fn func(*domain.Appointment) error) (domain.Appointment, error) {
	return update(tx, tx.state.appointments, domain.EntityAppointment, id, fn)
}

// CreateTask stores a new housekeeping task, generating an id when empty.
func (tx *Transaction) CreateTask(t domain.HousekeepingTask) (domain.HousekeepingTask, error) {
	if t.ID == "" {
		t.ID = newID()
	}
	t.CreatedAt = tx.now
	return insert(tx, tx.state.tasks, domain.EntityTask, t.ID, t)
}

// UpdateTask mutates a housekeeping task in place.
func (tx *Transaction) UpdateTask(id string, fn func(*domain.HousekeepingTask) error) (domain.HousekeepingTask, error) {
	return update(tx, tx.state.tasks, domain.EntityTask, id, fn)
}

// CreateServiceRequest stores a new service request, generating an id when empty.
func (tx *Transaction) CreateServiceRequest(r domain.ServiceRequest) (domain.ServiceRequest, error) {
	if r.ID == "" {
		r.ID = newID()
	}
	r.CreatedAt = tx.now
	return insert(tx, tx.state.requests, domain.EntityServiceRequest, r.ID, r)
}

// UpdateServiceRequest mutates a service request in place.
func (tx *Transaction) UpdateServiceRequest(id string, fn func(*domain.ServiceRequest) error) (domain.ServiceRequest, error) {
	return update(tx, tx.state.requests, domain.EntityServiceRequest, id, fn)
}

// UpdateInventoryItem mutates an inventory item in place.
func (tx *Transaction) UpdateInventoryItem(id string, fn func(*domain.InventoryItem) error) (domain.InventoryItem, error) {
	return update(tx, tx.state.inventory, domain.EntityInventoryItem, id, fn)
}

// UpdateStaff mutates a staff member in place.
func (tx *Transaction) UpdateStaff(id string, fn func(*domain.StaffMember) error) (domain.StaffMember, error) {
	return update(tx, tx.state.staff, domain.EntityStaff, id, fn)
}

// SetRoomFlag puts or replaces the explicit flag on a room.
func (tx *Transaction) SetRoomFlag(flag domain.RoomFlag) (domain.RoomFlag, error) {
	if _, ok := tx.state.rooms.Get(flag.RoomID); !ok {
		return domain.RoomFlag{}, domain.ErrNotFound{Entity: domain.EntityRoom, ID: flag.RoomID}
	}
	if flag.Status != domain.RoomCleaning && flag.Status != domain.RoomMaintenance {
		return domain.RoomFlag{}, domain.ErrInvalidEntity{Entity: domain.EntityRoomFlag, Reason: "status must be cleaning or maintenance"}
	}
	action := domain.ActionCreate
	if _, exists := tx.state.flags.Get(flag.RoomID); exists {
		action = domain.ActionUpdate
	}
	flag.SetAt = tx.now
	tx.state.flags.Put(flag)
	tx.record(domain.EntityRoomFlag, action, flag.RoomID)
	return flag, nil
}

// ClearRoomFlag removes the flag on a room and reports whether one existed.
func (tx *Transaction) ClearRoomFlag(roomID string) bool {
	if !tx.state.flags.Delete(roomID) {
		return false
	}
	tx.record(domain.EntityRoomFlag, domain.ActionDelete, roomID)
	return true
}
