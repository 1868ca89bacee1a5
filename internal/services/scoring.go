package services

import (
	"fmt"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"

	"gorm.io/gorm"
)

// ScoringService is the read side over the judgement ledger. Scores follow
// the participant's live team binding: a team change moves all point
// attribution on the next query even though submission rows keep the team
// they were submitted under. Listings, in contrast, group by the frozen
// submission team, matching what the judges saw.
type ScoringService struct {
	db *gorm.DB
}

func NewScoringService(db *gorm.DB) *ScoringService {
	return &ScoringService{db: db}
}

type TeamScore struct {
	Team  string `json:"team"`
	Score int64  `json:"score"`
}

type ChallengeScore struct {
	ChallengeName string `json:"challenge_name"`
	Points        int    `json:"points"`
}

type ScoreReport struct {
	Team        string           `json:"team"`
	Breakdown   []ChallengeScore `json:"breakdown"`
	Total       int64            `json:"total"`
	Submissions int64            `json:"submissions"`
}

// Leaderboard returns teams ordered by descending summed points. Invalid
// and unclear judgements carry zero points, so summing over all judgements
// yields the valid total while keeping zero-score teams on the board.
func (s *ScoringService) Leaderboard() ([]TeamScore, error) {
	var rows []TeamScore
	err := s.db.Table("judgements j").
		Select("p.team AS team, SUM(j.points) AS score").
		Joins("JOIN submissions sub ON sub.message_id = j.submission_id").
		Joins("JOIN participants p ON p.id = sub.user_id").
		Group("p.team").
		Order("score DESC").
		Scan(&rows).Error
	return rows, err
}

// ParticipantScore reports the per-challenge breakdown and submission count
// of the participant's current team.
func (s *ScoringService) ParticipantScore(userID int64) (*ScoreReport, error) {
	var participant models.Participant
	if err := s.db.First(&participant, userID).Error; err != nil {
		return nil, ErrNotRegistered
	}
	team := participant.Team

	report := ScoreReport{Team: team}
	err := s.db.Table("judgements j").
		Select("j.challenge_name, j.points").
		Joins("JOIN submissions sub ON sub.message_id = j.submission_id").
		Joins("JOIN participants p ON p.id = sub.user_id").
		Where("p.team = ? AND j.valid = ?", team, true).
		Order("j.challenge_name").
		Scan(&report.Breakdown).Error
	if err != nil {
		return nil, fmt.Errorf("score breakdown: %w", err)
	}
	for _, c := range report.Breakdown {
		report.Total += int64(c.Points)
	}

	err = s.db.Table("submissions sub").
		Joins("JOIN participants p ON p.id = sub.user_id").
		Where("p.team = ?", team).
		Count(&report.Submissions).Error
	if err != nil {
		return nil, fmt.Errorf("submission count: %w", err)
	}

	return &report, nil
}

// Submissions lists every submission joined with its submitter.
func (s *ScoringService) Submissions() ([]SubmissionDetail, error) {
	return s.listSubmissions(s.db)
}

// TeamSubmissions lists submissions made under the given (frozen) team name.
func (s *ScoringService) TeamSubmissions(team string) ([]SubmissionDetail, error) {
	return s.listSubmissions(s.db.Where("sub.team = ?", team))
}

func (s *ScoringService) listSubmissions(tx *gorm.DB) ([]SubmissionDetail, error) {
	var details []SubmissionDetail
	err := tx.Table("submissions sub").
		Select(`sub.message_id, sub.user_id, sub.team, sub.caption, sub.kind, sub.created_at,
			p.username, p.first_name, p.last_name`).
		Joins("LEFT JOIN participants p ON p.id = sub.user_id").
		Order("sub.created_at").
		Scan(&details).Error
	return details, err
}

// Judgements lists every recorded verdict.
func (s *ScoringService) Judgements() ([]models.Judgement, error) {
	var judgements []models.Judgement
	err := s.db.Order("submission_id").Find(&judgements).Error
	return judgements, err
}

// TeamJudgements lists verdicts on submissions made under the given (frozen)
// team name.
func (s *ScoringService) TeamJudgements(team string) ([]models.Judgement, error) {
	var judgements []models.Judgement
	err := s.db.Table("judgements j").
		Select("j.submission_id, j.challenge_name, j.points, j.valid").
		Joins("JOIN submissions sub ON sub.message_id = j.submission_id").
		Where("sub.team = ?", team).
		Order("j.submission_id").
		Scan(&judgements).Error
	return judgements, err
}
