package event

import (
	"context"

	"brandlink/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	UpdateStatus(ctx context.Context, id int64, status domain.EventStatus) error
	ListByStatus(ctx context.Context, status domain.EventStatus, offset, limit int) ([]domain.Event, int64, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]domain.Event, error)
	CreateInterest(ctx context.Context, in *domain.EventInterest) error
	GetInterestByID(ctx context.Context, id int64) (*domain.EventInterest, error)
	ListInterests(ctx context.Context, eventID int64) ([]domain.EventInterest, error)
	ApproveInterest(ctx context.Context, interestID int64) (*domain.EventInterest, error)
	DeleteInterest(ctx context.Context, id int64) error
}
