package services

import "errors"

// Every failure the engine can report at a request boundary. Handlers map
// these onto HTTP statuses; anything else is a store failure and surfaces
// as a 500 after the transaction has rolled back.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrForbidden     = errors.New("caller is not allowed to perform this operation")
	ErrInvalidRange  = errors.New("end time must be after start time")
	ErrPastStart     = errors.New("cannot create availability in the past")
	ErrPastSlot      = errors.New("cannot book a time slot in the past")
	ErrAlreadyBooked = errors.New("this slot is already booked")
	ErrEmailTaken    = errors.New("email already registered")
	ErrInvalidStatus = errors.New("booking status does not allow this transition")
)
