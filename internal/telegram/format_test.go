package telegram

import (
	"testing"
	"time"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"
	"github.com/offdroid/spreebreak-2024ws-bot/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionMessage(t *testing.T) {
	created := time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC)
	text := SubmissionMessage(services.SubmissionDetail{
		MessageID: 1337,
		Team:      "Falcons",
		Caption:   "fountain",
		CreatedAt: created,
		Username:  "falco",
		FirstName: "Fae",
		LastName:  "Lko",
	})

	assert.Contains(t, text, "@falco (Fae Lko)")
	assert.Contains(t, text, "Team: Falcons")
	assert.Contains(t, text, "2026-08-26T14:30:00")
	assert.Contains(t, text, "Caption: fountain")
	assert.Contains(t, text, "ID: 1337")
}

func TestSubmissionMessagePlaceholders(t *testing.T) {
	text := SubmissionMessage(services.SubmissionDetail{
		MessageID: 1,
		FirstName: "Fae",
	})

	assert.Contains(t, text, "@- (Fae NO-LASTNAME)")
	assert.Contains(t, text, "Caption: N/P")
}

func TestScoreboardText(t *testing.T) {
	text := scoreboardText([]services.TeamScore{
		{Team: "Otters", Score: 3},
		{Team: "Falcons", Score: 0},
	})

	assert.Contains(t, text, "1. `Otters` with 3 pts.")
	assert.Contains(t, text, "2. `Falcons` with 0 pts.")
}

func TestTeamOverviewText(t *testing.T) {
	empty := teamOverviewText("Falcons", nil)
	assert.Contains(t, empty, "<code>Falcons</code>")
	assert.Contains(t, empty, "No team members yet")

	text := teamOverviewText("Falcons", []models.Participant{
		{FirstName: "Fae", LastName: "Lko"},
	})
	assert.Contains(t, text, "1 Member(s):")
	assert.Contains(t, text, "- Fae Lko")
}

func TestSafetyTeamText(t *testing.T) {
	text := safetyTeamText([]models.SafetyTeam{
		{Name: "Night shift", Phone: "+49 111"},
	})
	assert.Contains(t, text, "Night shift: +49 111")
	assert.Contains(t, text, "+112")
	assert.Contains(t, text, "+110")

	assert.Contains(t, safetyTeamText(nil), "No safety team available")
}
