package influencer

import "errors"

var (
	ErrNotFound      = errors.New("influencer not found")
	ErrProfileExists = errors.New("influencer profile already exists")
	ErrForbidden     = errors.New("forbidden")
)
