package domain

import "time"

// Upload is a stored image owned by the user that uploaded it.
type Upload struct {
	PublicID     string    `json:"public_id" gorm:"column:public_id;primaryKey"`
	UserID       int64     `json:"user_id" gorm:"index"`
	OriginalName string    `json:"original_name"`
	FilePath     string    `json:"-"`
	URL          string    `json:"url"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Upload) TableName() string { return "uploads" }

// Models lists every persisted entity for AutoMigrate.
func Models() []any {
	return []any{
		&User{},
		&BrandProfile{},
		&InfluencerProfile{},
		&Event{},
		&EventInterest{},
		&Upload{},
	}
}
