// Package workflow holds the status machines for tasks, service requests,
// appointments and reservations.
package workflow

import (
	"sort"

	"opsdesk/pkg/domain"
)

// Machine is a table of permitted status edges for one entity type.
type Machine struct {
	entity   domain.EntityType
	terminal map[string]struct{}
	edges    map[string]map[string]struct{}
}

func newMachine(entity domain.EntityType, terminal []string, edges map[string][]string) Machine {
	m := Machine{
		entity:   entity,
		terminal: toSet(terminal...),
		edges:    make(map[string]map[string]struct{}, len(edges)),
	}
	for from, targets := range edges {
		m.edges[from] = toSet(targets...)
	}
	return m
}

func toSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

var machines = map[domain.EntityType]Machine{
	domain.EntityTask: newMachine(domain.EntityTask,
		[]string{string(domain.WorkCompleted)},
		map[string][]string{
			string(domain.WorkPending):    {string(domain.WorkAssigned)},
			string(domain.WorkAssigned):   {string(domain.WorkInProgress)},
			string(domain.WorkInProgress): {string(domain.WorkCompleted)},
		}),
	// requests may be withdrawn until completed
	domain.EntityServiceRequest: newMachine(domain.EntityServiceRequest,
		[]string{string(domain.WorkCompleted), string(domain.WorkCancelled)},
		map[string][]string{
			string(domain.WorkPending):    {string(domain.WorkAssigned), string(domain.WorkCancelled)},
			string(domain.WorkAssigned):   {string(domain.WorkInProgress), string(domain.WorkCancelled)},
			string(domain.WorkInProgress): {string(domain.WorkCompleted), string(domain.WorkCancelled)},
		}),
	domain.EntityAppointment: newMachine(domain.EntityAppointment,
		[]string{string(domain.AppointmentCompleted), string(domain.AppointmentCancelled), string(domain.AppointmentNoShow)},
		map[string][]string{
			string(domain.AppointmentScheduled): {string(domain.AppointmentConfirmed), string(domain.AppointmentCancelled)},
			string(domain.AppointmentConfirmed): {
				string(domain.AppointmentInProgress),
				string(domain.AppointmentCancelled),
				string(domain.AppointmentNoShow),
			},
			string(domain.AppointmentInProgress): {string(domain.AppointmentCompleted)},
		}),
	domain.EntityReservation: newMachine(domain.EntityReservation,
		[]string{string(domain.ReservationCheckedOut), string(domain.ReservationCancelled), string(domain.ReservationNoShow)},
		map[string][]string{
			string(domain.ReservationConfirmed): {
				string(domain.ReservationCheckedIn),
				string(domain.ReservationCancelled),
				string(domain.ReservationNoShow),
			},
			string(domain.ReservationCheckedIn): {string(domain.ReservationCheckedOut)},
		}),
}

// For returns the machine registered for entity.
func For(entity domain.EntityType) (Machine, bool) {
	m, ok := machines[entity]
	return m, ok
}

// Allowed reports whether from -> to is a permitted edge.
func (m Machine) Allowed(from, to string) bool {
	targets, ok := m.edges[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// Terminal reports whether no edge leaves state.
func (m Machine) Terminal(state string) bool {
	_, ok := m.terminal[state]
	return ok
}

// Next lists the states reachable from state in a stable order.
func (m Machine) Next(state string) []string {
	targets := m.edges[state]
	out := make([]string, 0, len(targets))
	for t := range targets {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Check returns domain.ErrInvalidTransition when from -> to is not an edge of m.
func (m Machine) Check(id, from, to string) error {
	if m.Allowed(from, to) {
		return nil
	}
	return domain.ErrInvalidTransition{Entity: m.entity, ID: id, From: from, To: to}
}

// Validate checks a transition for entity. Entities without a machine accept any move.
func Validate(entity domain.EntityType, id, from, to string) error {
	m, ok := For(entity)
	if !ok {
		return nil
	}
	return m.Check(id, from, to)
}
