package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"brandlink/internal/domain"
	"brandlink/internal/pkg/metrics"
	"brandlink/internal/pkg/pagination"
	"brandlink/internal/repository"

	"github.com/rs/zerolog/log"
)

type Service struct {
	influencers InfluencerRepository
	users       UserCounter
	events      EventCounter
	now         func() time.Time
}

func NewService(influencers InfluencerRepository, users UserCounter, events EventCounter) *Service {
	return &Service{
		influencers: influencers,
		users:       users,
		events:      events,
		now:         time.Now,
	}
}

// -------------------- Influencer moderation --------------------

func (s *Service) ApproveInfluencer(ctx context.Context, profileID, adminID int64) (*domain.InfluencerProfile, error) {
	return s.review(ctx, profileID, adminID, domain.ApprovalApproved, "")
}

func (s *Service) RejectInfluencer(ctx context.Context, profileID, adminID int64, reason string) (*domain.InfluencerProfile, error) {
	return s.review(ctx, profileID, adminID, domain.ApprovalRejected, strings.TrimSpace(reason))
}

// review applies a one-way transition out of PENDING.
func (s *Service) review(ctx context.Context, profileID, adminID int64, status domain.ApprovalStatus, reason string) (*domain.InfluencerProfile, error) {
	p, err := s.influencers.Review(ctx, profileID, status, reason, adminID, s.now().UTC())
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			return nil, ErrProfileNotFound
		case errors.Is(err, repository.ErrNotPending):
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	metrics.ApprovalDecisions.WithLabelValues(string(status)).Inc()
	log.Info().
		Int64("profile_id", p.ID).
		Int64("user_id", p.UserID).
		Int64("admin_id", adminID).
		Str("status", string(status)).
		Msg("influencer reviewed")
	return p, nil
}

func (s *Service) ListInfluencers(ctx context.Context, status domain.ApprovalStatus, page, limit int) ([]domain.InfluencerProfile, int64, error) {
	page, limit = pagination.Normalize(page, limit)
	return s.influencers.ListByStatus(ctx, status, pagination.Offset(page, limit), limit)
}

// -------------------- Statistics --------------------

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.influencers.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	published, err := s.events.CountByStatus(ctx, domain.EventPublished)
	if err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		UsersByRole:         byRole,
		InfluencersByStatus: byStatus,
		PendingInfluencers:  byStatus[domain.ApprovalPending],
		PublishedEvents:     published,
	}, nil
}
