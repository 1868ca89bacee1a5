package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RosterService owns the participant -> team mapping. Teams have no rows of
// their own; the team set is always computed from participants.
type RosterService struct {
	db *gorm.DB
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{db: db}
}

type TeamSummary struct {
	Team  string `json:"team"`
	Count int64  `json:"count"`
}

// JoinTeam registers the participant or rebinds them to a new team. Prior
// submissions keep the team they were submitted under.
func (s *RosterService) JoinTeam(userID int64, team, username, firstName, lastName string) (*models.Participant, error) {
	team = strings.TrimSpace(team)
	if team == "" {
		return nil, ErrEmptyInput
	}

	p := models.Participant{
		ID:        userID,
		Team:      team,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"team", "username", "first_name", "last_name"}),
	}).Create(&p).Error
	if err != nil {
		return nil, fmt.Errorf("join team: %w", err)
	}
	return &p, nil
}

// Get returns the participant, or nil without error when unknown.
func (s *RosterService) Get(userID int64) (*models.Participant, error) {
	var p models.Participant
	if err := s.db.First(&p, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Teams lists the distinct live team names with member counts.
func (s *RosterService) Teams() ([]TeamSummary, error) {
	var teams []TeamSummary
	err := s.db.Model(&models.Participant{}).
		Select("team, COUNT(*) AS count").
		Group("team").
		Order("team").
		Scan(&teams).Error
	return teams, err
}

// TeamNames returns just the live team name set.
func (s *RosterService) TeamNames() ([]string, error) {
	var names []string
	err := s.db.Model(&models.Participant{}).
		Distinct("team").
		Order("team").
		Pluck("team", &names).Error
	return names, err
}

func (s *RosterService) TeamMembers(team string) ([]models.Participant, error) {
	var members []models.Participant
	err := s.db.Where("team = ?", team).Order("created_at").Find(&members).Error
	return members, err
}

func (s *RosterService) Participants() ([]models.Participant, error) {
	var participants []models.Participant
	err := s.db.Order("team, created_at").Find(&participants).Error
	return participants, err
}
