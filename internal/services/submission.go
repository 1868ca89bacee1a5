package services

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"

	"gorm.io/gorm"
)

// MediaStore downloads a media file from the transport and persists it,
// returning the stored path.
type MediaStore interface {
	Store(fileID string) (string, error)
}

// JudgeRoom is the judge-facing side of the chat transport the pipeline
// routes into.
type JudgeRoom interface {
	// Forward copies the original message into the judge chat, threaded into
	// topicID when non-zero. Returns the forwarded message id.
	Forward(topicID, fromChatID, messageID int64) (int64, error)
	// Announce posts the judge-facing summary as a reply to the forward.
	Announce(topicID, replyTo int64, detail SubmissionDetail) error
	// PromptSelection posts the challenge keyboard for the submission.
	PromptSelection(topicID int64, detail SubmissionDetail, remaining []models.Challenge) error
}

// SubmissionDetail is the joined read-back of a submission: the frozen row
// plus the submitter and the open topic of their team (0 when none).
type SubmissionDetail struct {
	MessageID int64     `json:"message_id"`
	UserID    int64     `json:"user_id"`
	Team      string    `json:"team"`
	Caption   string    `json:"caption"`
	Kind      int       `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name,omitempty"`
	TopicID   int64     `json:"topic_id,omitempty"`
}

type SubmissionInput struct {
	MessageID int64
	UserID    int64
	ChatID    int64
	FileID    string
	Kind      int
	Caption   string
}

// SubmissionService validates, persists and routes incoming media proofs.
type SubmissionService struct {
	db     *gorm.DB
	roster *RosterService
	media  MediaStore
	judges JudgeRoom

	enabled atomic.Bool
}

func NewSubmissionService(db *gorm.DB, roster *RosterService, media MediaStore, judges JudgeRoom) *SubmissionService {
	s := &SubmissionService{db: db, roster: roster, media: media, judges: judges}
	s.enabled.Store(true)
	return s
}

// SetEnabled flips the global submissions kill-switch. Readers may observe a
// slightly stale value; that is acceptable.
func (s *SubmissionService) SetEnabled(v bool) { s.enabled.Store(v) }

func (s *SubmissionService) Enabled() bool { return s.enabled.Load() }

// Submit runs the pipeline: guards, media download, insert (team frozen at
// this instant), joined re-read, then best-effort routing to the judge chat.
// Nothing after the insert is rolled back on failure.
func (s *SubmissionService) Submit(in SubmissionInput) (*SubmissionDetail, error) {
	if !s.enabled.Load() {
		return nil, ErrSubmissionsDisabled
	}
	participant, err := s.roster.Get(in.UserID)
	if err != nil {
		return nil, fmt.Errorf("submit: lookup participant: %w", err)
	}
	if participant == nil {
		return nil, ErrNotRegistered
	}

	path, err := s.media.Store(in.FileID)
	if err != nil {
		return nil, fmt.Errorf("submit: store media: %w", err)
	}

	sub := models.Submission{
		MessageID: in.MessageID,
		UserID:    in.UserID,
		Team:      participant.Team,
		Caption:   in.Caption,
		Kind:      in.Kind,
		MediaPath: path,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, fmt.Errorf("submit: insert: %w", err)
	}

	detail, err := s.detail(in.MessageID)
	if err != nil {
		return nil, fmt.Errorf("submit: read back: %w", err)
	}

	// Routing is best-effort from here on: the submission is committed and a
	// judge-chat hiccup must not fail the participant.
	forwarded, err := s.judges.Forward(detail.TopicID, in.ChatID, in.MessageID)
	if err != nil {
		log.Printf("submission: forward %d to judges: %v", in.MessageID, err)
		return detail, nil
	}
	if err := s.judges.Announce(detail.TopicID, forwarded, *detail); err != nil {
		log.Printf("submission: announce %d: %v", in.MessageID, err)
	}

	remaining, err := s.RemainingChallenges(participant.Team)
	if err != nil {
		log.Printf("submission: remaining challenges for %q: %v", participant.Team, err)
		return detail, nil
	}
	if err := s.judges.PromptSelection(detail.TopicID, *detail, remaining); err != nil {
		log.Printf("submission: prompt for %d: %v", in.MessageID, err)
	}

	return detail, nil
}

// RemainingChallenges lists every challenge the team has not yet completed.
// Only valid judgements exclude a challenge; an unclear or invalid attempt
// leaves it open for a retry.
func (s *SubmissionService) RemainingChallenges(team string) ([]models.Challenge, error) {
	done := s.db.Table("judgements j").
		Select("j.challenge_name").
		Joins("JOIN submissions s ON s.message_id = j.submission_id").
		Joins("JOIN participants p ON p.id = s.user_id").
		Where("p.team = ? AND j.valid = ?", team, true)

	var remaining []models.Challenge
	err := s.db.Where("name NOT IN (?)", done).Order("name").Find(&remaining).Error
	return remaining, err
}

// Detail returns the joined view of one submission.
func (s *SubmissionService) Detail(messageID int64) (*SubmissionDetail, error) {
	return s.detail(messageID)
}

func (s *SubmissionService) detail(messageID int64) (*SubmissionDetail, error) {
	var d SubmissionDetail
	err := s.db.Table("submissions s").
		Select(`s.message_id, s.user_id, s.team, s.caption, s.kind, s.created_at,
			p.username, p.first_name, p.last_name, COALESCE(f.topic_id, 0) AS topic_id`).
		Joins("LEFT JOIN participants p ON p.id = s.user_id").
		Joins("LEFT JOIN forum_topics f ON f.name = s.team AND f.open = ?", true).
		Where("s.message_id = ?", messageID).
		Take(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}
