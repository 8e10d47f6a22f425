package repository

import (
	"context"
	"strings"

	"brandlink/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB {
	return r.db
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// CreateWithProfile inserts the user and its role profile in one transaction.
// setOwner receives the new user id before the profile row is written.
func (r *UserRepository) CreateWithProfile(ctx context.Context, u *domain.User, profile any, setOwner func(userID int64)) error {
	u.Email = normalizeEmail(u.Email)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		setOwner(u.ID)
		return tx.Create(profile).Error
	})
	if isUniqueConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateDisplay changes name and image only; role is immutable after creation.
func (r *UserRepository) UpdateDisplay(ctx context.Context, id int64, name, image string) error {
	updates := map[string]any{}
	if name != "" {
		updates["name"] = name
	}
	if image != "" {
		updates["image"] = image
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[domain.UserRole]int64, error) {
	type row struct {
		Role  domain.UserRole
		Total int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[domain.UserRole]int64, len(rows))
	for _, rw := range rows {
		out[rw.Role] = rw.Total
	}
	return out, nil
}
