package services

import (
	"testing"
	"time"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocator(t *testing.T) {
	loc, err := parseLocator("file::assets/schedule.png")
	require.NoError(t, err)
	assert.Equal(t, Locator{Mode: LocatorFile, Path: "assets/schedule.png"}, loc)

	loc, err = parseLocator("url::https://example.org/map.pdf")
	require.NoError(t, err)
	assert.Equal(t, Locator{Mode: LocatorURL, Path: "https://example.org/map.pdf"}, loc)

	_, err = parseLocator("assets/schedule.png")
	assert.Error(t, err)

	_, err = parseLocator("ftp::assets/schedule.png")
	assert.Error(t, err)
}

func TestLocatorDefaultsAndOverrides(t *testing.T) {
	db := openTestDB(t)
	info := NewInfoService(db)

	loc, err := info.ScheduleSource()
	require.NoError(t, err)
	assert.Equal(t, Locator{Mode: LocatorFile, Path: "assets/schedule.png"}, loc)

	loc, err = info.CityGuide()
	require.NoError(t, err)
	assert.Equal(t, Locator{Mode: LocatorFile, Path: "assets/survival_guide.pdf"}, loc)

	require.NoError(t, db.Create(&models.ConfigEntry{
		Name:  "schedule_source",
		Value: "url::https://example.org/schedule.png",
	}).Error)

	loc, err = info.ScheduleSource()
	require.NoError(t, err)
	assert.Equal(t, Locator{Mode: LocatorURL, Path: "https://example.org/schedule.png"}, loc)
}

func TestSafetyTeamDayRollsBackBeforeSix(t *testing.T) {
	db := openTestDB(t)
	info := NewInfoService(db)

	require.NoError(t, db.Create(&models.SafetyTeam{
		Date: "2026-08-25", Name: "Night shift", Phone: "+49 111",
	}).Error)
	require.NoError(t, db.Create(&models.SafetyTeam{
		Date: "2026-08-26", Name: "Day shift", Phone: "+49 222",
	}).Error)

	// 02:30 still counts as the previous event day.
	team, err := info.SafetyTeamFor(time.Date(2026, 8, 26, 2, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "Night shift", team[0].Name)

	team, err = info.SafetyTeamFor(time.Date(2026, 8, 26, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "Day shift", team[0].Name)

	team, err = info.SafetyTeamFor(time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, team)
}
