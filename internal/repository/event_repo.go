package repository

import (
	"context"

	"brandlink/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var e domain.Event
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) ListByStatus(ctx context.Context, status domain.EventStatus, offset, limit int) ([]domain.Event, int64, error) {
	offset, limit = normalizePage(offset, limit)

	q := r.db.WithContext(ctx).Model(&domain.Event{}).Where("status = ?", status)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Event
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id int64, status domain.EventStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Event{}).Where("id = ?", id).Update("status", status).Error
}

// ListByCreator returns every event of one brand, newest first.
func (r *EventRepository) ListByCreator(ctx context.Context, creatorID int64) ([]domain.Event, error) {
	var out []domain.Event
	err := r.db.WithContext(ctx).
		Where("created_by_id = ?", creatorID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *EventRepository) CountByStatus(ctx context.Context, status domain.EventStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Event{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *EventRepository) CreateInterest(ctx context.Context, in *domain.EventInterest) error {
	if err := r.db.WithContext(ctx).Create(in).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *EventRepository) GetInterestByID(ctx context.Context, id int64) (*domain.EventInterest, error) {
	var in domain.EventInterest
	if err := r.db.WithContext(ctx).Preload("Event").First(&in, id).Error; err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *EventRepository) ListInterests(ctx context.Context, eventID int64) ([]domain.EventInterest, error) {
	var out []domain.EventInterest
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *EventRepository) CountApproved(ctx context.Context, eventID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.EventInterest{}).
		Where("event_id = ? AND approved = ?", eventID, true).
		Count(&n).Error
	return n, err
}

// ApproveInterest marks an interest approved while holding a row lock on its
// event, so concurrent approvals for the same event are serialised and the
// max_influencers cap holds. Approving an approved interest is a no-op.
func (r *EventRepository) ApproveInterest(ctx context.Context, interestID int64) (*domain.EventInterest, error) {
	var out domain.EventInterest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, interestID).Error; err != nil {
			return err
		}

		var event domain.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, out.EventID).Error; err != nil {
			return err
		}

		if out.Approved {
			return nil
		}

		if event.MaxInfluencers != nil {
			var approved int64
			if err := tx.Model(&domain.EventInterest{}).
				Where("event_id = ? AND approved = ?", event.ID, true).
				Count(&approved).Error; err != nil {
				return err
			}
			if approved >= int64(*event.MaxInfluencers) {
				return ErrCapacityExceeded
			}
		}

		if err := tx.Model(&domain.EventInterest{}).
			Where("id = ?", out.ID).
			Update("approved", true).Error; err != nil {
			return err
		}
		out.Approved = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *EventRepository) DeleteInterest(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.EventInterest{}, id).Error
}
