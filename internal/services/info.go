package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"

	"gorm.io/gorm"
)

// Locator points at out-of-band content. Mode is "file" (local path) or
// "url"; retrieval is up to the transport.
type Locator struct {
	Mode string `json:"mode"`
	Path string `json:"path"`
}

const (
	LocatorFile = "file"
	LocatorURL  = "url"
)

// InfoService resolves the participant-facing misc content: schedule, city
// guide and the safety-team roster.
type InfoService struct {
	db *gorm.DB
}

func NewInfoService(db *gorm.DB) *InfoService {
	return &InfoService{db: db}
}

func (s *InfoService) ScheduleSource() (Locator, error) {
	return s.locator("schedule_source", "file::assets/schedule.png")
}

func (s *InfoService) CityGuide() (Locator, error) {
	return s.locator("city_guide", "file::assets/survival_guide.pdf")
}

func (s *InfoService) locator(name, fallback string) (Locator, error) {
	var entry models.ConfigEntry
	value := fallback
	err := s.db.First(&entry, "name = ?", name).Error
	if err == nil {
		value = entry.Value
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Locator{}, fmt.Errorf("config %s: %w", name, err)
	}
	return parseLocator(value)
}

func parseLocator(value string) (Locator, error) {
	parts := strings.SplitN(value, "::", 2)
	if len(parts) != 2 {
		return Locator{}, fmt.Errorf("malformed locator %q", value)
	}
	mode := parts[0]
	if mode != LocatorFile && mode != LocatorURL {
		return Locator{}, fmt.Errorf("unknown locator mode %q", mode)
	}
	return Locator{Mode: mode, Path: parts[1]}, nil
}

// SafetyTeamFor returns the contacts on duty at the given instant. Hours
// before 06:00 still belong to the previous event day.
func (s *InfoService) SafetyTeamFor(now time.Time) ([]models.SafetyTeam, error) {
	if now.Hour() < 6 {
		now = now.Add(-24 * time.Hour)
	}
	date := now.Format("2006-01-02")

	var team []models.SafetyTeam
	err := s.db.Where("date = ?", date).Find(&team).Error
	return team, err
}
