package influencer

import "brandlink/internal/domain"

type ProfileRequest struct {
	Nickname           string   `json:"nickname" validate:"required,max=100"`
	Bio                string   `json:"bio,omitempty" validate:"max=2000"`
	InstagramHandle    string   `json:"instagramHandle,omitempty" validate:"max=100"`
	InstagramFollowers int64    `json:"instagramFollowers,omitempty" validate:"min=0"`
	TikTokHandle       string   `json:"tiktokHandle,omitempty" validate:"max=100"`
	TikTokFollowers    int64    `json:"tiktokFollowers,omitempty" validate:"min=0"`
	Niches             []string `json:"niches,omitempty" validate:"max=10"`
}

type StatusResponse struct {
	Status          domain.ApprovalState `json:"status"`
	RejectionReason string               `json:"rejectionReason,omitempty"`
}

// PublicProfile is what brands and admins see of an approved influencer.
type PublicProfile struct {
	ID                 int64    `json:"id"`
	UserID             int64    `json:"userId"`
	Name               string   `json:"name"`
	Image              string   `json:"image,omitempty"`
	Nickname           string   `json:"nickname"`
	Bio                string   `json:"bio,omitempty"`
	InstagramHandle    string   `json:"instagramHandle,omitempty"`
	InstagramFollowers int64    `json:"instagramFollowers"`
	TikTokHandle       string   `json:"tiktokHandle,omitempty"`
	TikTokFollowers    int64    `json:"tiktokFollowers"`
	AudienceSize       int64    `json:"audienceSize"`
	Niches             []string `json:"niches"`
}

type ListResponse struct {
	Influencers []PublicProfile `json:"influencers"`
	Total       int64           `json:"total"`
	Page        int             `json:"page"`
	Limit       int             `json:"limit"`
}

func toPublic(p *domain.InfluencerProfile) PublicProfile {
	out := PublicProfile{
		ID:                 p.ID,
		UserID:             p.UserID,
		Nickname:           p.Nickname,
		Bio:                p.Bio,
		InstagramHandle:    p.InstagramHandle,
		InstagramFollowers: p.InstagramFollowers,
		TikTokHandle:       p.TikTokHandle,
		TikTokFollowers:    p.TikTokFollowers,
		AudienceSize:       p.AudienceSize,
		Niches:             []string(p.Niches),
	}
	if out.Niches == nil {
		out.Niches = []string{}
	}
	if p.User != nil {
		out.Name = p.User.Name
		out.Image = p.User.Image
	}
	return out
}
