package models

// ConfigEntry is a free-form key/value setting, e.g. schedule_source or
// city_guide holding a "mode::path" locator.
type ConfigEntry struct {
	Name  string `gorm:"primaryKey;size:100" json:"name"`
	Value string `gorm:"not null" json:"value"`
}
