package auth

import (
	"context"
	"errors"
	"strings"

	"brandlink/internal/domain"
	"brandlink/internal/pkg/jwt"
	"brandlink/internal/pkg/metrics"
	"brandlink/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Service contains the credential verifier and account creation logic.
type Service struct {
	users       UserRepository
	influencers InfluencerReader
	tokens      TokenIssuer
	bcryptCost  int
}

func NewService(users UserRepository, influencers InfluencerReader, tokens TokenIssuer) *Service {
	return &Service{
		users:       users,
		influencers: influencers,
		tokens:      tokens,
		bcryptCost:  bcrypt.DefaultCost,
	}
}

// VerifyCredentials checks an email/password pair and, for influencers, the
// approval latch. Unknown email, password-less account and wrong password all
// return ErrInvalidCredentials.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*jwt.Identity, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.checkApproval(ctx, user); err != nil {
		return nil, err
	}

	return identityOf(user), nil
}

// checkApproval blocks PENDING and REJECTED influencers. A missing profile
// passes: those users are sent to onboarding by the approval gate.
func (s *Service) checkApproval(ctx context.Context, user *domain.User) error {
	if user.Role != domain.RoleInfluencer {
		return nil
	}
	profile, err := s.influencers.GetByUserID(ctx, user.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil
		}
		return err
	}
	switch profile.ApprovalStatus {
	case domain.ApprovalPending:
		return ErrAccountPending
	case domain.ApprovalRejected:
		return &RejectedError{Reason: profile.RejectionReason}
	}
	return nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	id, err := s.VerifyCredentials(ctx, req.Email, req.Password)
	metrics.LoginAttempts.WithLabelValues(loginOutcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	return s.issue(id)
}

// FederatedLogin finds or creates a password-less user for an identity
// asserted by a trusted provider and issues a session for it. Admin accounts
// and accounts with a password never sign in this way.
func (s *Service) FederatedLogin(ctx context.Context, req FederatedRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	switch {
	case err == nil:
		if user.Role == domain.RoleAdmin || user.HasPassword() {
			metrics.LoginAttempts.WithLabelValues("federated_refused").Inc()
			log.Warn().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("federated sign-in refused")
			return nil, ErrFederatedNotAllowed
		}
		if err := s.checkApproval(ctx, user); err != nil {
			metrics.LoginAttempts.WithLabelValues(loginOutcome(err)).Inc()
			return nil, err
		}
	case repository.IsNotFound(err):
		if req.Role == "" {
			return nil, ErrRoleRequired
		}
		if req.Role != domain.RoleBrand && req.Role != domain.RoleInfluencer {
			return nil, ErrInvalidRole
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = strings.SplitN(req.Email, "@", 2)[0]
		}
		user = &domain.User{
			Email: req.Email,
			Name:  name,
			Role:  req.Role,
			Image: req.Image,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, ErrEmailAlreadyExists
			}
			return nil, err
		}
		log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("federated user created")
	default:
		return nil, err
	}

	metrics.LoginAttempts.WithLabelValues("federated").Inc()
	return s.issue(identityOf(user))
}

func (s *Service) issue(id *jwt.Identity) (*LoginResult, error) {
	token, sess, err := s.tokens.Issue(*id)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: publicFromIdentity(id), Token: token, Session: sess}, nil
}

// Register creates a user for the given role with a minimal profile.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	switch req.Role {
	case domain.RoleBrand:
		return s.RegisterBrand(ctx, RegisterBrandRequest{
			Name:        req.Name,
			Email:       req.Email,
			Password:    req.Password,
			CompanyName: req.Name,
		})
	case domain.RoleInfluencer:
		return s.RegisterInfluencer(ctx, RegisterInfluencerRequest{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Nickname: req.Name,
		})
	default:
		return nil, ErrInvalidRole
	}
}

func (s *Service) RegisterBrand(ctx context.Context, req RegisterBrandRequest) (*domain.User, error) {
	profile := &domain.BrandProfile{
		CompanyName:  strings.TrimSpace(req.CompanyName),
		Website:      req.Website,
		Industry:     req.Industry,
		Location:     req.Location,
		ContactPhone: req.ContactPhone,
		Description:  req.Description,
	}
	return s.createWithProfile(ctx, req.Name, req.Email, req.Password, domain.RoleBrand, profile, func(id int64) {
		profile.UserID = id
	})
}

// RegisterInfluencer creates the user and a PENDING profile in one transaction.
func (s *Service) RegisterInfluencer(ctx context.Context, req RegisterInfluencerRequest) (*domain.User, error) {
	profile := &domain.InfluencerProfile{
		Nickname:           strings.TrimSpace(req.Nickname),
		Bio:                req.Bio,
		InstagramHandle:    req.InstagramHandle,
		InstagramFollowers: req.InstagramFollowers,
		TikTokHandle:       req.TikTokHandle,
		TikTokFollowers:    req.TikTokFollowers,
		Niches:             datatypes.JSONSlice[string](domain.NormalizeNiches(req.Niches)),
		ApprovalStatus:     domain.ApprovalPending,
	}
	profile.RecountAudience()
	return s.createWithProfile(ctx, req.Name, req.Email, req.Password, domain.RoleInfluencer, profile, func(id int64) {
		profile.UserID = id
	})
}

func (s *Service) createWithProfile(ctx context.Context, name, email, password string, role domain.UserRole, profile any, setOwner func(int64)) (*domain.User, error) {
	email = normalizeEmail(email)
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: &hash,
		Name:         strings.TrimSpace(name),
		Role:         role,
	}
	if err := s.users.CreateWithProfile(ctx, user, profile, setOwner); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	log.Info().Int64("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	user.PasswordHash = nil
	return user, nil
}

// UpdateSession persists new display fields and re-signs the token with
// the same subject, role and validity window.
func (s *Service) UpdateSession(ctx context.Context, token string, sess *jwt.Session, req UpdateSessionRequest) (string, *jwt.Session, error) {
	name := strings.TrimSpace(req.Name)
	image := strings.TrimSpace(req.Image)
	if err := s.users.UpdateDisplay(ctx, sess.UserID, name, image); err != nil {
		return "", nil, err
	}
	return s.tokens.Update(token, name, image)
}

func (s *Service) hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func identityOf(u *domain.User) *jwt.Identity {
	return &jwt.Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
		Image: u.Image,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid"
	case errors.Is(err, ErrAccountPending):
		return "pending"
	case errors.Is(err, ErrAccountRejected):
		return "rejected"
	default:
		return "error"
	}
}
