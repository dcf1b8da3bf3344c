package apperrors

import "errors"

var (
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrSeatNotFound      = errors.New("seat not found")
	ErrNoTicketSelected  = errors.New("no ticket selected")
	ErrSeatNotOccupiable = errors.New("seat is not occupiable")
	ErrReleaseDisabled   = errors.New("selected ticket occupies no seat")
	ErrInvalidMarkup     = errors.New("invalid seating markup")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrInvalidInput      = errors.New("invalid input")
	ErrPageNotLoaded     = errors.New("page not loaded")
)
