package request

type CreateBookingRequest struct {
	UserName   string `json:"user_name" validate:"required,min=1,max=100"`
	ScheduleID string `json:"schedule_id" validate:"required,uuid4"`
	// Range is checked against the bus capacity in the service, so 0 and
	// too-large values classify as out-of-range rather than missing.
	SeatNumber int `json:"seat_number"`
}
