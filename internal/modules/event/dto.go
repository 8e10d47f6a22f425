package event

import (
	"time"

	"brandlink/internal/domain"
)

type CreateEventRequest struct {
	Title          string             `json:"title" validate:"required,max=255"`
	Description    string             `json:"description,omitempty" validate:"max=5000"`
	Location       string             `json:"location,omitempty" validate:"max=255"`
	Date           *time.Time         `json:"date,omitempty"`
	Status         domain.EventStatus `json:"status,omitempty" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	MaxInfluencers *int               `json:"maxInfluencers,omitempty" validate:"omitempty,min=1"`
}

type UpdateStatusRequest struct {
	Status domain.EventStatus `json:"status" validate:"required,oneof=DRAFT PUBLISHED CANCELLED COMPLETED"`
}

type InterestRequest struct {
	Message string `json:"message,omitempty" validate:"max=1000"`
}

type EventListResponse struct {
	Events []domain.Event `json:"events"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}
