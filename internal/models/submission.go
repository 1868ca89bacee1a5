package models

import "time"

const (
	SubmissionPhoto = 0
	SubmissionVideo = 1
)

// Submission is the immutable record of one media proof. Team holds the
// submitter's team name at submission time and is never updated afterwards.
type Submission struct {
	MessageID int64     `gorm:"primaryKey" json:"message_id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Team      string    `gorm:"size:100;not null;index" json:"team"`
	Caption   string    `json:"caption"`
	Kind      int       `gorm:"not null" json:"kind"`
	MediaPath string    `gorm:"size:255" json:"media_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
