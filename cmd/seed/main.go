package main

import (
	"math/rand/v2"
	"time"

	"brandlink/internal/config"
	"brandlink/internal/database"
	"brandlink/internal/domain"
	"brandlink/internal/pkg/logger"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const seedPassword = "password123"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.LogLevel, false)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	// Cleanup old data (children first)
	log.Info().Msg("cleaning old data")
	for _, table := range []string{"event_interests", "events", "uploads", "influencer_profiles", "brand_profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatal().Err(err).Str("table", table).Msg("cleanup failed")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash failed")
	}
	pw := string(hash)

	err = db.Transaction(func(tx *gorm.DB) error {
		admin := &domain.User{Email: "admin@brandlink.dev", Name: "Admin", Role: domain.RoleAdmin, PasswordHash: &pw}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		// ================== BRANDS ==================
		brands := []struct{ email, name, company, industry string }{
			{"nova@brandlink.dev", "Nova Team", "Nova Cosmetics", "beauty"},
			{"peak@brandlink.dev", "Peak Team", "Peak Outdoor", "sport"},
		}
		var brandUsers []*domain.User
		for _, b := range brands {
			u := &domain.User{Email: b.email, Name: b.name, Role: domain.RoleBrand, PasswordHash: &pw}
			if err := tx.Create(u).Error; err != nil {
				return err
			}
			if err := tx.Create(&domain.BrandProfile{UserID: u.ID, CompanyName: b.company, Industry: b.industry}).Error; err != nil {
				return err
			}
			brandUsers = append(brandUsers, u)
		}

		// ================== INFLUENCERS ==================
		now := time.Now()
		influencers := []struct {
			email, nickname string
			niches          []string
			status          domain.ApprovalStatus
			reason          string
		}{
			{"alma@brandlink.dev", "alma", []string{"beauty", "lifestyle"}, domain.ApprovalApproved, ""},
			{"dias@brandlink.dev", "dias", []string{"sport"}, domain.ApprovalApproved, ""},
			{"aru@brandlink.dev", "aru", []string{"travel"}, domain.ApprovalPending, ""},
			{"timur@brandlink.dev", "timur", []string{"gaming"}, domain.ApprovalRejected, "Audience too small"},
		}
		for _, in := range influencers {
			u := &domain.User{Email: in.email, Name: in.nickname, Role: domain.RoleInfluencer, PasswordHash: &pw}
			if err := tx.Create(u).Error; err != nil {
				return err
			}
			p := &domain.InfluencerProfile{
				UserID:             u.ID,
				Nickname:           in.nickname,
				InstagramHandle:    "@" + in.nickname,
				InstagramFollowers: int64(1000 + rand.IntN(50000)),
				TikTokFollowers:    int64(rand.IntN(20000)),
				Niches:             datatypes.JSONSlice[string](in.niches),
				ApprovalStatus:     in.status,
				RejectionReason:    in.reason,
			}
			if in.status != domain.ApprovalPending {
				p.ApprovedAt = &now
				p.ReviewedBy = &admin.ID
			}
			p.RecountAudience()
			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}

		// ================== EVENTS ==================
		capacity := 2
		date := now.AddDate(0, 0, 14)
		events := []*domain.Event{
			{CreatedByID: brandUsers[0].ID, Title: "Spring collection launch", Location: "Almaty", Date: &date, Status: domain.EventPublished, MaxInfluencers: &capacity},
			{CreatedByID: brandUsers[1].ID, Title: "Trail run meetup", Location: "Medeu", Date: &date, Status: domain.EventPublished},
			{CreatedByID: brandUsers[1].ID, Title: "Winter gear preview", Status: domain.EventDraft},
		}
		for _, e := range events {
			if err := tx.Create(e).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	log.Info().Str("password", seedPassword).Msg("seed completed; all accounts share this password")
}
