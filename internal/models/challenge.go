package models

// Challenge is a catalog entry seeded out-of-band.
type Challenge struct {
	Name      string `gorm:"primaryKey;size:100" json:"name"`
	ShortName string `gorm:"size:100;not null" json:"short_name"`
}
