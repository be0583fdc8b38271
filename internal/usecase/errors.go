package usecase

import "errors"

// Every failure a service returns is classified as exactly one of these
// before it leaves the usecase layer; handlers map them to HTTP statuses
// with errors.Is and no raw store error escapes.
var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrBusNotFound      = errors.New("bus not found for schedule")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrSeatOutOfRange   = errors.New("seat number out of range")
	ErrInvalidInput     = errors.New("invalid input")
	ErrSeatTaken        = errors.New("seat already booked")
	ErrUnavailable      = errors.New("booking store unavailable")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)
