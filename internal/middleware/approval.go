package middleware

import (
	"context"
	"net/http"
	"strings"

	"brandlink/internal/domain"
	"brandlink/internal/pkg/metrics"
	"brandlink/internal/pkg/response"
	"brandlink/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	OnboardingPath = "/influencer/onboarding"
	PendingPath    = "/influencer/pending"
	RejectedPath   = "/influencer/rejected"
)

type ApprovalLookup interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.InfluencerProfile, error)
}

// ApprovalRedirect returns where an influencer in the given state is sent,
// or "" when the state grants access.
func ApprovalRedirect(state domain.ApprovalState) string {
	switch state {
	case domain.StateApproved:
		return ""
	case domain.StateNoProfile:
		return OnboardingPath
	case domain.StateRejected:
		return RejectedPath
	default:
		return PendingPath
	}
}

// InfluencerState loads the profile of an influencer user and maps it to its
// approval state. A missing row is NO_PROFILE, not an error.
func InfluencerState(ctx context.Context, approvals ApprovalLookup, userID int64) (domain.ApprovalState, *domain.InfluencerProfile, error) {
	p, err := approvals.GetByUserID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return domain.StateNoProfile, nil, nil
		}
		return "", nil, err
	}
	return domain.StateOf(p), p, nil
}

func approvalGate(c *gin.Context, approvals ApprovalLookup, userID int64, page bool) bool {
	state, _, err := InfluencerState(c.Request.Context(), approvals, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("approval lookup failed")
		response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return false
	}

	target := ApprovalRedirect(state)
	if target == "" {
		return true
	}

	metrics.AccessDenials.WithLabelValues("approval_" + strings.ToLower(string(state))).Inc()
	if page {
		c.Redirect(http.StatusFound, target)
		c.Abort()
		return false
	}
	response.ErrorWithDetails(c, http.StatusForbidden, "APPROVAL_REQUIRED", "Influencer account is not approved", gin.H{"status": state})
	c.Abort()
	return false
}
