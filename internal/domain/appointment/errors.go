package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrTimeUnavailable     = errors.New("requested time is not available")
	ErrSlotTaken           = errors.New("appointment slot is already booked")
)
