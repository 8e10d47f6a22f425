package domain

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleBrand      UserRole = "BRAND"
	RoleInfluencer UserRole = "INFLUENCER"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleBrand, RoleInfluencer:
		return true
	}
	return false
}

// User is the identity record. PasswordHash is nil for accounts that only
// sign in through an external identity provider.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash *string   `json:"-" gorm:"column:password_hash"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role" gorm:"type:varchar(16);not null;index"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
