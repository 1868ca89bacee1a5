package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Feedback is the submitter-facing side of the chat transport. All calls are
// best-effort; the ledger never fails because a participant deleted their
// message.
type Feedback interface {
	DirectiveReply(userID, messageID int64, text string) error
	React(userID, messageID int64) error
	ClearReaction(userID, messageID int64) error
}

const pointsPerChallenge = 1

type JudgeResult struct {
	Judgement   models.Judgement `json:"judgement"`
	SubmitterID int64            `json:"submitter_id"`
	Team        string           `json:"team"`
}

// JudgementService records verdicts: one judgement per submission, repeat
// calls overwrite the previous one.
type JudgementService struct {
	db       *gorm.DB
	feedback Feedback
}

func NewJudgementService(db *gorm.DB, feedback Feedback) *JudgementService {
	return &JudgementService{db: db, feedback: feedback}
}

// Judge resolves the submission and the chosen challenge, upserts the
// judgement and sends feedback to the submitter. The submission lookup is
// the cheaper check and takes precedence when both resolutions fail.
func (s *JudgementService) Judge(submissionID int64, choice string) (*JudgeResult, error) {
	var sub models.Submission
	if err := s.db.First(&sub, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("judge: resolve submission: %w", err)
	}

	valid := true
	points := pointsPerChallenge
	switch choice {
	case models.ChallengeUnclear, models.ChallengeInvalid:
		valid = false
		points = 0
	default:
		var challenge models.Challenge
		if err := s.db.First(&challenge, "name = ?", choice).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrChallengeNotFound
			}
			return nil, fmt.Errorf("judge: resolve challenge: %w", err)
		}
	}

	j := models.Judgement{
		SubmissionID:  submissionID,
		ChallengeName: choice,
		Points:        points,
		Valid:         valid,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"challenge_name", "points", "valid"}),
	}).Create(&j).Error
	if err != nil {
		return nil, fmt.Errorf("judge: upsert: %w", err)
	}

	var team string
	err = s.db.Model(&models.Participant{}).
		Select("team").
		Where("id = ?", sub.UserID).
		Scan(&team).Error
	if err != nil {
		log.Printf("judgement: resolve team for %d: %v", sub.UserID, err)
	}

	s.notifySubmitter(sub.UserID, submissionID, choice, valid)

	return &JudgeResult{Judgement: j, SubmitterID: sub.UserID, Team: team}, nil
}

// The submitter may have deleted the original message; feedback failures are
// logged and swallowed.
func (s *JudgementService) notifySubmitter(userID, messageID int64, choice string, valid bool) {
	if valid {
		if err := s.feedback.React(userID, messageID); err != nil {
			log.Printf("judgement: react to %d: %v", messageID, err)
		}
		return
	}

	text := "Your submission is invalid"
	if choice == models.ChallengeUnclear {
		text = "Please resend your submission with a clear caption"
	}
	if err := s.feedback.DirectiveReply(userID, messageID, text); err != nil {
		log.Printf("judgement: reply to %d: %v", messageID, err)
	}
	if err := s.feedback.ClearReaction(userID, messageID); err != nil {
		log.Printf("judgement: clear reaction on %d: %v", messageID, err)
	}
}
