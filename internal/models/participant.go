package models

import "time"

type Participant struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Team      string    `gorm:"size:100;not null;index" json:"team"`
	Username  string    `gorm:"size:100" json:"username,omitempty"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100" json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName renders "First Last @username", leaving out the optional parts.
func (p Participant) DisplayName() string {
	name := p.FirstName
	if p.LastName != "" {
		name += " " + p.LastName
	}
	if p.Username != "" {
		name += " @" + p.Username
	}
	return name
}
