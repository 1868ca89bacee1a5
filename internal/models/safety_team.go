package models

// SafetyTeam is one on-duty contact for a given event day (YYYY-MM-DD).
type SafetyTeam struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Date  string `gorm:"size:10;not null;index" json:"date"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:50;not null" json:"phone"`
}
