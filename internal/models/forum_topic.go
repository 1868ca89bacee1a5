package models

// ForumTopic binds a team name to a forum topic in the judge chat. Topics
// are flagged closed when the team disappears, never deleted, so at most one
// open row exists per team name.
type ForumTopic struct {
	TopicID int64  `gorm:"primaryKey" json:"topic_id"`
	Name    string `gorm:"size:100;not null;index" json:"name"`
	Open    bool   `gorm:"not null;default:true" json:"open"`
}
