package auth

import (
	"brandlink/internal/domain"
	"brandlink/internal/pkg/jwt"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=255"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	Role     domain.UserRole `json:"role" validate:"required,oneof=BRAND INFLUENCER"`
}

type RegisterBrandRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	CompanyName  string `json:"companyName" validate:"required,max=255"`
	Website      string `json:"website,omitempty" validate:"omitempty,url"`
	Industry     string `json:"industry,omitempty"`
	Location     string `json:"location,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Description  string `json:"description,omitempty"`
}

type RegisterInfluencerRequest struct {
	Name               string   `json:"name" validate:"required,min=2,max=255"`
	Email              string   `json:"email" validate:"required,email"`
	Password           string   `json:"password" validate:"required,min=8,max=72"`
	Nickname           string   `json:"nickname" validate:"required,max=100"`
	Bio                string   `json:"bio,omitempty" validate:"max=2000"`
	InstagramHandle    string   `json:"instagramHandle,omitempty"`
	InstagramFollowers int64    `json:"instagramFollowers,omitempty" validate:"min=0"`
	TikTokHandle       string   `json:"tiktokHandle,omitempty"`
	TikTokFollowers    int64    `json:"tiktokFollowers,omitempty" validate:"min=0"`
	Niches             []string `json:"niches,omitempty" validate:"max=10"`
}

type FederatedRequest struct {
	Email string          `json:"email" validate:"required,email"`
	Name  string          `json:"name" validate:"max=255"`
	Image string          `json:"image,omitempty" validate:"omitempty,url"`
	Role  domain.UserRole `json:"role,omitempty" validate:"omitempty,oneof=BRAND INFLUENCER"`
}

type UpdateSessionRequest struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Image string `json:"image,omitempty" validate:"omitempty,max=2048"`
}

type UserPublic struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image,omitempty"`
}

type LoginResult struct {
	User    UserPublic
	Token   string
	Session *jwt.Session
}

func publicFromUser(u *domain.User) UserPublic {
	return UserPublic{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role), Image: u.Image}
}

func publicFromIdentity(id *jwt.Identity) UserPublic {
	return UserPublic{ID: id.ID, Email: id.Email, Name: id.Name, Role: id.Role, Image: id.Image}
}
