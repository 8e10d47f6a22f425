package admin

import (
	"context"
	"time"

	"brandlink/internal/domain"
)

type InfluencerRepository interface {
	Review(ctx context.Context, id int64, status domain.ApprovalStatus, reason string, reviewerID int64, at time.Time) (*domain.InfluencerProfile, error)
	ListByStatus(ctx context.Context, status domain.ApprovalStatus, offset, limit int) ([]domain.InfluencerProfile, int64, error)
	CountByStatus(ctx context.Context) (map[domain.ApprovalStatus]int64, error)
}

type UserCounter interface {
	CountByRole(ctx context.Context) (map[domain.UserRole]int64, error)
}

type EventCounter interface {
	CountByStatus(ctx context.Context, status domain.EventStatus) (int64, error)
}
