package influencer

import (
	"context"

	"brandlink/internal/domain"
	"brandlink/internal/pkg/pagination"
	"brandlink/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type Repository interface {
	Create(ctx context.Context, p *domain.InfluencerProfile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.InfluencerProfile, error)
	FindApprovedByID(ctx context.Context, id int64) (*domain.InfluencerProfile, error)
	ListApproved(ctx context.Context, f repository.InfluencerFilter) ([]domain.InfluencerProfile, int64, error)
	Update(ctx context.Context, p *domain.InfluencerProfile) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Status reports the approval state of the influencer owning userID.
// Only the user themselves may ask.
func (s *Service) Status(ctx context.Context, requesterID, userID int64) (*StatusResponse, error) {
	if requesterID != userID {
		return nil, ErrForbidden
	}
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &StatusResponse{Status: domain.StateOf(p), RejectionReason: p.RejectionReason}, nil
}

// GetApproved returns the profile only when it is APPROVED; anything else
// is indistinguishable from a missing profile.
func (s *Service) GetApproved(ctx context.Context, id int64) (*PublicProfile, error) {
	p, err := s.repo.FindApprovedByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	out := toPublic(p)
	return &out, nil
}

func (s *Service) ListApproved(ctx context.Context, niche, query string, page, limit int) ([]PublicProfile, int64, error) {
	page, limit = pagination.Normalize(page, limit)
	rows, total, err := s.repo.ListApproved(ctx, repository.InfluencerFilter{
		Niche:  niche,
		Query:  query,
		Offset: pagination.Offset(page, limit),
		Limit:  limit,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]PublicProfile, 0, len(rows))
	for i := range rows {
		out = append(out, toPublic(&rows[i]))
	}
	return out, total, nil
}

func (s *Service) GetOwn(ctx context.Context, userID int64) (*domain.InfluencerProfile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// CreateProfile finishes onboarding for an influencer without a profile.
// The new profile always starts PENDING.
func (s *Service) CreateProfile(ctx context.Context, userID int64, req ProfileRequest) (*domain.InfluencerProfile, error) {
	p := &domain.InfluencerProfile{UserID: userID, ApprovalStatus: domain.ApprovalPending}
	apply(p, req)

	if err := s.repo.Create(ctx, p); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrProfileExists
		}
		return nil, err
	}
	log.Info().Int64("user_id", userID).Int64("profile_id", p.ID).Msg("influencer profile submitted")
	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req ProfileRequest) (*domain.InfluencerProfile, error) {
	p, err := s.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}
	apply(p, req)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func apply(p *domain.InfluencerProfile, req ProfileRequest) {
	p.Nickname = req.Nickname
	p.Bio = req.Bio
	p.InstagramHandle = req.InstagramHandle
	p.InstagramFollowers = req.InstagramFollowers
	p.TikTokHandle = req.TikTokHandle
	p.TikTokFollowers = req.TikTokFollowers
	p.Niches = datatypes.JSONSlice[string](domain.NormalizeNiches(req.Niches))
	p.RecountAudience()
}
