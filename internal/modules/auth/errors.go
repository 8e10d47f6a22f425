package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountPending      = errors.New("account pending approval")
	ErrAccountRejected     = errors.New("account rejected")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidRole         = errors.New("invalid role")
	ErrRoleRequired        = errors.New("role is required for new accounts")
	ErrFederatedNotAllowed = errors.New("account cannot sign in through the identity provider")
)

// RejectedError carries the admin's reason, if any, for a rejected influencer.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return ErrAccountRejected.Error()
	}
	return ErrAccountRejected.Error() + ": " + e.Reason
}

func (e *RejectedError) Unwrap() error { return ErrAccountRejected }
