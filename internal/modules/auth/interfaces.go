package auth

import (
	"context"

	"brandlink/internal/domain"
	"brandlink/internal/pkg/jwt"
)

// UserRepository is the slice of the identity store auth needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	CreateWithProfile(ctx context.Context, u *domain.User, profile any, setOwner func(userID int64)) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateDisplay(ctx context.Context, id int64, name, image string) error
}

type InfluencerReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.InfluencerProfile, error)
}

type TokenIssuer interface {
	Issue(id jwt.Identity) (string, *jwt.Session, error)
	Update(token, name, image string) (string, *jwt.Session, error)
}
