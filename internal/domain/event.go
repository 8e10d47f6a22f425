package domain

import "time"

type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPublished EventStatus = "PUBLISHED"
	EventCancelled EventStatus = "CANCELLED"
	EventCompleted EventStatus = "COMPLETED"
)

type Event struct {
	ID             int64       `json:"id" gorm:"primaryKey"`
	CreatedByID    int64       `json:"created_by_id" gorm:"index;not null"`
	Title          string      `json:"title" gorm:"not null"`
	Description    string      `json:"description,omitempty" gorm:"type:text"`
	Location       string      `json:"location,omitempty"`
	Date           *time.Time  `json:"date,omitempty"`
	Status         EventStatus `json:"status" gorm:"type:varchar(16);not null;default:'DRAFT';index"`
	MaxInfluencers *int        `json:"max_influencers,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (Event) TableName() string { return "events" }

// EventInterest is an influencer's request to take part in an event.
// Only the event creator flips Approved.
type EventInterest struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	EventID      int64     `json:"event_id" gorm:"not null;uniqueIndex:idx_event_interest"`
	InfluencerID int64     `json:"influencer_id" gorm:"not null;uniqueIndex:idx_event_interest"`
	Message      string    `json:"message,omitempty"`
	Approved     bool      `json:"approved" gorm:"not null;default:false;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Event *Event `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

func (EventInterest) TableName() string { return "event_interests" }
