// Command cleanup removes upload records whose file is gone from disk and
// interests left on cancelled events.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"brandlink/internal/config"
	"brandlink/internal/database"
	"brandlink/internal/domain"
	"brandlink/internal/pkg/logger"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.LogLevel, cfg.IsProduction())

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	res, err := cleanup(db, cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("cleanup failed")
	}
	log.Info().Int64("event_interests", res.interests).Int("uploads", res.uploads).Msg("cleanup completed")
}

type result struct {
	interests int64
	uploads   int
}

// cleanup resolves upload paths against uploadDir, the same root the upload
// service writes under.
func cleanup(db *gorm.DB, uploadDir string) (result, error) {
	var out result

	res := db.Exec(`DELETE FROM event_interests WHERE event_id IN (SELECT id FROM events WHERE status = ?)`, domain.EventCancelled)
	if res.Error != nil {
		return out, fmt.Errorf("cleanup event_interests: %w", res.Error)
	}
	out.interests = res.RowsAffected

	var uploads []domain.Upload
	if err := db.Find(&uploads).Error; err != nil {
		return out, fmt.Errorf("list uploads: %w", err)
	}
	var missing []string
	for _, u := range uploads {
		path := filepath.Join(uploadDir, filepath.FromSlash(u.FilePath))
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, u.PublicID)
		}
	}
	if len(missing) > 0 {
		if err := db.Where("public_id IN ?", missing).Delete(&domain.Upload{}).Error; err != nil {
			return out, fmt.Errorf("cleanup uploads: %w", err)
		}
	}
	out.uploads = len(missing)
	return out, nil
}
