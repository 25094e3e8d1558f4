package core

import (
	"context"
	"errors"
	"time"

	"opsdesk/pkg/domain"
)

// Operation names used in traces, metrics and audit entries.
const (
	OpAssignTask          = "assign_task"
	OpStartTask           = "start_task"
	OpCompleteTask        = "complete_task"
	OpCreateTask          = "create_task"
	OpUpdateTask          = "update_task"
	OpToggleChecklistItem = "toggle_checklist_item"
	OpAssignRequest       = "assign_service_request"
	OpStartRequest        = "start_service_request"
	OpCompleteRequest     = "complete_service_request"
	OpCancelRequest       = "cancel_service_request"
	OpCreateRequest       = "create_service_request"
	OpCheckIn             = "check_in_reservation"
	OpCheckOut            = "check_out_reservation"
	OpCancelReservation   = "cancel_reservation"
	OpReservationNoShow   = "mark_reservation_no_show"
	OpCreateReservation   = "create_reservation"
	OpUpdatePayment       = "update_reservation_payment"
	OpConfirmAppointment  = "confirm_appointment"
	OpStartAppointment    = "start_appointment"
	OpCompleteAppointment = "complete_appointment"
	OpCancelAppointment   = "cancel_appointment"
	OpAppointmentNoShow   = "mark_appointment_no_show"
	OpScheduleAppointment = "schedule_appointment"
	OpRestock             = "restock_item"
	OpUpdateInventoryItem = "update_inventory_item"
	OpSetStaffStatus      = "set_staff_status"
	OpFlagRoom            = "flag_room"
	OpClearRoomFlag       = "clear_room_flag"
	OpListRooms           = "list_rooms"
	OpListReservations    = "list_reservations"
	OpListDoctors         = "list_doctors"
	OpListAppointments    = "list_appointments"
	OpListTasks           = "list_tasks"
	OpListRequests        = "list_service_requests"
	OpListInventory       = "list_inventory"
	OpListStaff           = "list_staff"
	OpListRoomFlags       = "list_room_flags"
	OpComputeKPIs         = "compute_kpis"
	OpLoadSnapshot        = "load_snapshot"
)

type operationMeta struct {
	entity domain.EntityType
	action domain.Action
}

// auditedOperations lists every mutation. Reads are traced and measured but
// not audited.
var auditedOperations = map[string]operationMeta{
	OpAssignTask:          {domain.EntityTask, domain.ActionUpdate},
	OpStartTask:           {domain.EntityTask, domain.ActionUpdate},
	OpCompleteTask:        {domain.EntityTask, domain.ActionUpdate},
	OpCreateTask:          {domain.EntityTask, domain.ActionCreate},
	OpUpdateTask:          {domain.EntityTask, domain.ActionUpdate},
	OpToggleChecklistItem: {domain.EntityTask, domain.ActionUpdate},
	OpAssignRequest:       {domain.EntityServiceRequest, domain.ActionUpdate},
	OpStartRequest:        {domain.EntityServiceRequest, domain.ActionUpdate},
	OpCompleteRequest:     {domain.EntityServiceRequest, domain.ActionUpdate},
	OpCancelRequest:       {domain.EntityServiceRequest, domain.ActionUpdate},
	OpCreateRequest:       {domain.EntityServiceRequest, domain.ActionCreate},
	OpCheckIn:             {domain.EntityReservation, domain.ActionUpdate},
	OpCheckOut:            {domain.EntityReservation, domain.ActionUpdate},
	OpCancelReservation:   {domain.EntityReservation, domain.ActionUpdate},
	OpReservationNoShow:   {domain.EntityReservation, domain.ActionUpdate},
	OpCreateReservation:   {domain.EntityReservation, domain.ActionCreate},
	OpUpdatePayment:       {domain.EntityReservation, domain.ActionUpdate},
	OpConfirmAppointment:  {domain.EntityAppointment, domain.ActionUpdate},
	OpStartAppointment:    {domain.EntityAppointment, domain.ActionUpdate},
	OpCompleteAppointment: {domain.EntityAppointment, domain.ActionUpdate},
	OpCancelAppointment:   {domain.EntityAppointment, domain.ActionUpdate},
	OpAppointmentNoShow:   {domain.EntityAppointment, domain.ActionUpdate},
	OpScheduleAppointment: {domain.EntityAppointment, domain.ActionCreate},
	OpRestock:             {domain.EntityInventoryItem, domain.ActionUpdate},
	OpUpdateInventoryItem: {domain.EntityInventoryItem, domain.ActionUpdate},
	OpSetStaffStatus:      {domain.EntityStaff, domain.ActionUpdate},
	OpFlagRoom:            {domain.EntityRoomFlag, domain.ActionUpdate},
	OpClearRoomFlag:       {domain.EntityRoomFlag, domain.ActionDelete},
}

func (s *Service) recordAudit(ctx context.Context, op, entityID string, err error, duration time.Duration) {
	meta, ok := auditedOperations[op]
	if !ok {
		return
	}
	entry := AuditEntry{
		Operation: op,
		Entity:    meta.entity,
		Action:    meta.action,
		EntityID:  entityID,
		Status:    AuditStatusSuccess,
		Duration:  duration,
		Timestamp: s.opts.clock.Now(),
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.Error = err.Error()
	}
	s.opts.audit.Record(ctx, entry)
}

// run wraps every public operation: it opens a span, times the call, reports
// metrics, audits mutations and logs failures. fn returns the id of the
// entity it acted on.
func (s *Service) run(ctx context.Context, op string, fn func(ctx context.Context) (string, error)) error {
	ctx, span := s.opts.tracer.Start(ctx, op)
	start := time.Now()
	id, err := fn(ctx)
	duration := time.Since(start)
	span.End(err)
	s.opts.metrics.Observe(ctx, op, err == nil, duration)
	s.recordAudit(ctx, op, id, err, duration)
	if err != nil {
		s.opts.logger.Warn("operation failed", "operation", op, "id", id, "error", err, "kind", errorKind(err))
		return err
	}
	if _, audited := auditedOperations[op]; audited {
		s.opts.logger.Info("operation applied", "operation", op, "id", id, "duration", duration)
	}
	return nil
}

func errorKind(err error) string {
	var (
		notFound   domain.ErrNotFound
		transition domain.ErrInvalidTransition
		quantity   domain.ErrInvalidQuantity
		invalid    domain.ErrInvalidEntity
	)
	switch {
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &transition):
		return "invalid_transition"
	case errors.As(err, &quantity):
		return "invalid_quantity"
	case errors.As(err, &invalid):
		return "invalid_entity"
	}
	return "internal"
}
