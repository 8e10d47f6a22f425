package domain

import "time"

// BrandProfile is created together with a BRAND user and edited from the brand dashboard.
type BrandProfile struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	UserID       int64     `json:"user_id" gorm:"uniqueIndex;not null"`
	CompanyName  string    `json:"company_name" gorm:"not null"`
	Website      string    `json:"website,omitempty"`
	Logo         string    `json:"logo,omitempty"`
	Industry     string    `json:"industry,omitempty"`
	Location     string    `json:"location,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (BrandProfile) TableName() string { return "brand_profiles" }
