package event

import "errors"

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInterestNotFound  = errors.New("interest not found")
	ErrNotEventOwner     = errors.New("only the event creator can do this")
	ErrEventNotOpen      = errors.New("event is not open for interest")
	ErrAlreadyInterested = errors.New("interest already registered")
	ErrCapacityExceeded  = errors.New("event has reached its influencer limit")
	ErrInvalidStatus     = errors.New("invalid event status")
)
