package event

import (
	"context"
	"errors"
	"strings"

	"brandlink/internal/domain"
	"brandlink/internal/pkg/pagination"
	"brandlink/internal/repository"

	"github.com/rs/zerolog/log"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, creatorID int64, req CreateEventRequest) (*domain.Event, error) {
	status := req.Status
	if status == "" {
		status = domain.EventDraft
	}
	e := &domain.Event{
		CreatedByID:    creatorID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Location:       req.Location,
		Date:           req.Date,
		Status:         status,
		MaxInfluencers: req.MaxInfluencers,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	log.Info().Int64("event_id", e.ID).Int64("brand_id", creatorID).Str("status", string(status)).Msg("event created")
	return e, nil
}

// Get returns published events to anyone signed in; other statuses only to
// the creator and admins.
func (s *Service) Get(ctx context.Context, id, viewerID int64, viewerRole string) (*domain.Event, error) {
	e, err := s.loadEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Status != domain.EventPublished && e.CreatedByID != viewerID && viewerRole != string(domain.RoleAdmin) {
		return nil, ErrEventNotFound
	}
	return e, nil
}

func (s *Service) ListPublished(ctx context.Context, page, limit int) ([]domain.Event, int64, error) {
	page, limit = pagination.Normalize(page, limit)
	return s.repo.ListByStatus(ctx, domain.EventPublished, pagination.Offset(page, limit), limit)
}

func (s *Service) ListMine(ctx context.Context, creatorID int64) ([]domain.Event, error) {
	return s.repo.ListByCreator(ctx, creatorID)
}

func (s *Service) UpdateStatus(ctx context.Context, id, userID int64, status domain.EventStatus) (*domain.Event, error) {
	switch status {
	case domain.EventDraft, domain.EventPublished, domain.EventCancelled, domain.EventCompleted:
	default:
		return nil, ErrInvalidStatus
	}
	e, err := s.loadEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.CreatedByID != userID {
		return nil, ErrNotEventOwner
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	e.Status = status
	return e, nil
}

// ExpressInterest registers an influencer for a published event.
func (s *Service) ExpressInterest(ctx context.Context, eventID, influencerID int64, message string) (*domain.EventInterest, error) {
	e, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.Status != domain.EventPublished {
		return nil, ErrEventNotOpen
	}

	in := &domain.EventInterest{
		EventID:      eventID,
		InfluencerID: influencerID,
		Message:      strings.TrimSpace(message),
	}
	if err := s.repo.CreateInterest(ctx, in); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrAlreadyInterested
		}
		return nil, err
	}
	return in, nil
}

func (s *Service) ListInterests(ctx context.Context, eventID, userID int64) ([]domain.EventInterest, error) {
	e, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.CreatedByID != userID {
		return nil, ErrNotEventOwner
	}
	return s.repo.ListInterests(ctx, eventID)
}

// ApproveInterest is allowed only to the event creator and never pushes the
// approved count past the event's MaxInfluencers.
func (s *Service) ApproveInterest(ctx context.Context, interestID, userID int64) (*domain.EventInterest, error) {
	if _, err := s.ownedInterest(ctx, interestID, userID); err != nil {
		return nil, err
	}

	in, err := s.repo.ApproveInterest(ctx, interestID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCapacityExceeded):
			return nil, ErrCapacityExceeded
		case repository.IsNotFound(err):
			return nil, ErrInterestNotFound
		}
		return nil, err
	}
	log.Info().Int64("interest_id", in.ID).Int64("event_id", in.EventID).Msg("event interest approved")
	return in, nil
}

// RejectInterest removes the interest row.
func (s *Service) RejectInterest(ctx context.Context, interestID, userID int64) error {
	if _, err := s.ownedInterest(ctx, interestID, userID); err != nil {
		return err
	}
	return s.repo.DeleteInterest(ctx, interestID)
}

func (s *Service) ownedInterest(ctx context.Context, interestID, userID int64) (*domain.EventInterest, error) {
	in, err := s.repo.GetInterestByID(ctx, interestID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInterestNotFound
		}
		return nil, err
	}
	if in.Event == nil {
		return nil, ErrEventNotFound
	}
	if in.Event.CreatedByID != userID {
		return nil, ErrNotEventOwner
	}
	return in, nil
}

func (s *Service) loadEvent(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}
