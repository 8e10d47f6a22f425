package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"brandlink/internal/domain"

	"gorm.io/gorm"
)

type InfluencerFilter struct {
	Niche  string
	Query  string
	Offset int
	Limit  int
}

type InfluencerRepository struct {
	db *gorm.DB
}

func NewInfluencerRepository(db *gorm.DB) *InfluencerRepository {
	return &InfluencerRepository{db: db}
}

func (r *InfluencerRepository) Create(ctx context.Context, p *domain.InfluencerProfile) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *InfluencerRepository) GetByID(ctx context.Context, id int64) (*domain.InfluencerProfile, error) {
	var p domain.InfluencerProfile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *InfluencerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.InfluencerProfile, error) {
	var p domain.InfluencerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindApprovedByID filters by status in the query itself, so hidden and
// missing profiles both surface as gorm.ErrRecordNotFound.
func (r *InfluencerRepository) FindApprovedByID(ctx context.Context, id int64) (*domain.InfluencerProfile, error) {
	var p domain.InfluencerProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ? AND approval_status = ?", id, domain.ApprovalApproved).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListApproved returns approved profiles, largest audience first.
func (r *InfluencerRepository) ListApproved(ctx context.Context, f InfluencerFilter) ([]domain.InfluencerProfile, int64, error) {
	offset, limit := normalizePage(f.Offset, f.Limit)

	q := r.db.WithContext(ctx).
		Model(&domain.InfluencerProfile{}).
		Where("approval_status = ?", domain.ApprovalApproved)

	if niche := strings.ToLower(strings.TrimSpace(f.Niche)); niche != "" {
		// niches is a JSON array column; match the encoded element in its text form.
		element, err := json.Marshal(niche)
		if err != nil {
			return nil, 0, err
		}
		q = q.Where(`CAST(niches AS TEXT) LIKE ? ESCAPE '\'`, "%"+escapeLike(string(element))+"%")
	}
	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := "%" + escapeLike(query) + "%"
		q = q.Where(`LOWER(nickname) LIKE ? ESCAPE '\' OR LOWER(instagram_handle) LIKE ? ESCAPE '\' OR LOWER(tiktok_handle) LIKE ? ESCAPE '\'`, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.InfluencerProfile
	if err := q.
		Preload("User").
		Order("audience_size DESC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListByStatus is the moderation queue view.
func (r *InfluencerRepository) ListByStatus(ctx context.Context, status domain.ApprovalStatus, offset, limit int) ([]domain.InfluencerProfile, int64, error) {
	offset, limit = normalizePage(offset, limit)

	q := r.db.WithContext(ctx).Model(&domain.InfluencerProfile{})
	if status != "" {
		q = q.Where("approval_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.InfluencerProfile
	if err := q.
		Preload("User").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *InfluencerRepository) CountByStatus(ctx context.Context) (map[domain.ApprovalStatus]int64, error) {
	type row struct {
		ApprovalStatus domain.ApprovalStatus
		Total          int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&domain.InfluencerProfile{}).
		Select("approval_status, COUNT(*) AS total").
		Group("approval_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[domain.ApprovalStatus]int64, len(rows))
	for _, rw := range rows {
		out[rw.ApprovalStatus] = rw.Total
	}
	return out, nil
}

// Review moves a PENDING profile to APPROVED or REJECTED with a single
// conditional update. A profile that already left PENDING is never touched.
func (r *InfluencerRepository) Review(ctx context.Context, id int64, status domain.ApprovalStatus, reason string, reviewerID int64, at time.Time) (*domain.InfluencerProfile, error) {
	updates := map[string]interface{}{
		"approval_status":  status,
		"rejection_reason": "",
		"reviewed_by":      reviewerID,
		"updated_at":       at,
	}
	if status == domain.ApprovalApproved {
		updates["approved_at"] = at
	} else {
		updates["rejection_reason"] = reason
	}

	var out *domain.InfluencerProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.InfluencerProfile{}).
			Where("id = ? AND approval_status = ?", id, domain.ApprovalPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}

		var p domain.InfluencerProfile
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}
		out = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the profile fields an influencer may edit. Approval columns
// are not writable through this path.
func (r *InfluencerRepository) Update(ctx context.Context, p *domain.InfluencerProfile) error {
	return r.db.WithContext(ctx).
		Model(&domain.InfluencerProfile{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"nickname":            p.Nickname,
			"bio":                 p.Bio,
			"instagram_handle":    p.InstagramHandle,
			"instagram_followers": p.InstagramFollowers,
			"tiktok_handle":       p.TikTokHandle,
			"tiktok_followers":    p.TikTokFollowers,
			"audience_size":       p.AudienceSize,
			"niches":              p.Niches,
		}).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern that
// declares ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
