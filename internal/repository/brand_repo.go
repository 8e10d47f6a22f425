package repository

import (
	"context"

	"brandlink/internal/domain"

	"gorm.io/gorm"
)

type BrandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

func (r *BrandRepository) Create(ctx context.Context, p *domain.BrandProfile) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *BrandRepository) GetByUserID(ctx context.Context, userID int64) (*domain.BrandProfile, error) {
	var p domain.BrandProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Update writes the editable columns of a brand profile.
func (r *BrandRepository) Update(ctx context.Context, p *domain.BrandProfile) error {
	return r.db.WithContext(ctx).
		Model(&domain.BrandProfile{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"company_name":  p.CompanyName,
			"website":       p.Website,
			"logo":          p.Logo,
			"industry":      p.Industry,
			"location":      p.Location,
			"contact_phone": p.ContactPhone,
			"description":   p.Description,
		}).Error
}
