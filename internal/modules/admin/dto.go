package admin

import "brandlink/internal/domain"

type RejectInfluencerRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=1000"`
}

type InfluencerListResponse struct {
	Influencers []domain.InfluencerProfile `json:"influencers"`
	Total       int64                      `json:"total"`
	Page        int                        `json:"page"`
	Limit       int                        `json:"limit"`
}

type StatisticsResponse struct {
	UsersByRole         map[domain.UserRole]int64       `json:"users_by_role"`
	InfluencersByStatus map[domain.ApprovalStatus]int64 `json:"influencers_by_status"`
	PendingInfluencers  int64                           `json:"pending_influencers"`
	PublishedEvents     int64                           `json:"published_events"`
}
