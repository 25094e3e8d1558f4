package domain

// Dataset is a complete set of collections used to initialise a store.
type Dataset struct {
	Rooms        []Room             `json:"rooms"`
	RoomFlags    []RoomFlag         `json:"room_flags"`
	Reservations []Reservation      `json:"reservations"`
	Doctors      []Doctor           `json:"doctors"`
	Appointments []Appointment      `json:"appointments"`
	Tasks        []HousekeepingTask `json:"tasks"`
	Requests     []ServiceRequest   `json:"requests"`
	Inventory    []InventoryItem    `json:"inventory"`
	Staff        []StaffMember      `json:"staff"`
}

// StateView provides read-only access to the current collections. Returned
// slices are copies owned by the caller.
type StateView interface {
	ListRooms() []Room
	ListRoomFlags() []RoomFlag
	ListReservations() []Reservation
	ListDoctors() []Doctor
	ListAppointments() []Appointment
	ListTasks() []HousekeepingTask
	ListServiceRequests() []ServiceRequest
	ListInventory() []InventoryItem
	ListStaff() []StaffMember
}
