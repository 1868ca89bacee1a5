package models

// Sentinel judgement outcomes. Both score zero points and mark the
// submission invalid; they never appear in the challenges table.
const (
	ChallengeUnclear = "___unclear"
	ChallengeInvalid = "___invalid"
)

// Judgement holds at most one verdict per submission. Re-judging overwrites
// challenge, points and validity (last write wins).
type Judgement struct {
	SubmissionID  int64  `gorm:"primaryKey" json:"submission_id"`
	ChallengeName string `gorm:"size:100;not null" json:"challenge_name"`
	Points        int    `gorm:"not null" json:"points"`
	Valid         bool   `gorm:"not null" json:"valid"`
}
