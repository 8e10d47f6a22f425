package admin

import "errors"

var (
	ErrProfileNotFound = errors.New("influencer profile not found")
	ErrAlreadyReviewed = errors.New("influencer profile already reviewed")
)
