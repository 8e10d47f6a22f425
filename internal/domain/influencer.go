package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// ApprovalState extends ApprovalStatus with the state of an influencer
// account that has not created its profile yet.
type ApprovalState string

const (
	StateNoProfile ApprovalState = "NO_PROFILE"
	StatePending   ApprovalState = ApprovalState(ApprovalPending)
	StateApproved  ApprovalState = ApprovalState(ApprovalApproved)
	StateRejected  ApprovalState = ApprovalState(ApprovalRejected)
)

type InfluencerProfile struct {
	ID                 int64                       `json:"id" gorm:"primaryKey"`
	UserID             int64                       `json:"user_id" gorm:"uniqueIndex;not null"`
	Nickname           string                      `json:"nickname"`
	Bio                string                      `json:"bio,omitempty" gorm:"type:text"`
	InstagramHandle    string                      `json:"instagram_handle,omitempty"`
	InstagramFollowers int64                       `json:"instagram_followers"`
	TikTokHandle       string                      `json:"tiktok_handle,omitempty" gorm:"column:tiktok_handle"`
	TikTokFollowers    int64                       `json:"tiktok_followers" gorm:"column:tiktok_followers"`
	AudienceSize       int64                       `json:"audience_size" gorm:"index"`
	Niches             datatypes.JSONSlice[string] `json:"niches"`
	ApprovalStatus     ApprovalStatus              `json:"approval_status" gorm:"type:varchar(16);not null;default:'PENDING';index"`
	RejectionReason    string                      `json:"rejection_reason,omitempty"`
	ApprovedAt         *time.Time                  `json:"approved_at,omitempty"`
	ReviewedBy         *int64                      `json:"reviewed_by,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (InfluencerProfile) TableName() string { return "influencer_profiles" }

// StateOf maps an optional profile to its approval state.
func StateOf(p *InfluencerProfile) ApprovalState {
	if p == nil {
		return StateNoProfile
	}
	switch p.ApprovalStatus {
	case ApprovalApproved:
		return StateApproved
	case ApprovalRejected:
		return StateRejected
	default:
		return StatePending
	}
}

// RecountAudience sets AudienceSize from the per-platform follower counts.
func (p *InfluencerProfile) RecountAudience() {
	p.AudienceSize = p.InstagramFollowers + p.TikTokFollowers
}

// NormalizeNiches lower-cases, trims and de-duplicates niche tags.
func NormalizeNiches(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, n := range in {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
