package telegram

import (
	"fmt"
	"strings"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"
	"github.com/offdroid/spreebreak-2024ws-bot/internal/services"

	"github.com/dustin/go-humanize"
)

// SubmissionMessage renders the judge-facing summary of a submission.
func SubmissionMessage(sub services.SubmissionDetail) string {
	username := sub.Username
	if username == "" {
		username = "-"
	}
	lastName := sub.LastName
	if lastName == "" {
		lastName = "NO-LASTNAME"
	}
	caption := sub.Caption
	if caption == "" {
		caption = "N/P"
	}
	return fmt.Sprintf(
		"Submission from @%s (%s %s)\nTeam: %s\nTime: %s (%s)\nCaption: %s\nID: %d",
		username, sub.FirstName, lastName, sub.Team,
		sub.CreatedAt.Format("2006-01-02T15:04:05"), humanize.Time(sub.CreatedAt),
		caption, sub.MessageID,
	)
}

func teamsText(teams []services.TeamSummary) string {
	lines := make([]string, 0, len(teams))
	for _, t := range teams {
		lines = append(lines, fmt.Sprintf("- %s (#%d)", t.Team, t.Count))
	}
	return "Teams:\n" + strings.Join(lines, "\n")
}

func participantsText(participants []models.Participant, withTeam bool) string {
	lines := make([]string, 0, len(participants))
	for _, p := range participants {
		if withTeam {
			lines = append(lines, fmt.Sprintf("- %s (#%d) -> %s", p.DisplayName(), p.ID, p.Team))
		} else {
			lines = append(lines, fmt.Sprintf("- %s (#%d)", p.DisplayName(), p.ID))
		}
	}
	return "Participants:\n" + strings.Join(lines, "\n")
}

func scoreboardText(scores []services.TeamScore) string {
	lines := make([]string, 0, len(scores))
	for place, s := range scores {
		lines = append(lines, fmt.Sprintf("%d. `%s` with %d pts.", place+1, s.Team, s.Score))
	}
	return "Scoreboard:\n" + strings.Join(lines, "\n")
}

func judgementsText(judgements []models.Judgement) string {
	lines := make([]string, 0, len(judgements))
	for _, j := range judgements {
		lines = append(lines, fmt.Sprintf("- ref=`%d` challenge=`%s` pts=%d valid=%t",
			j.SubmissionID, j.ChallengeName, j.Points, j.Valid))
	}
	return strings.Join(lines, "\n")
}

func submissionsText(subs []services.SubmissionDetail) string {
	lines := make([]string, 0, len(subs))
	for _, s := range subs {
		lines = append(lines, SubmissionMessage(s))
	}
	return strings.Join(lines, "\n\n")
}

func scoreReportText(report *services.ScoreReport) string {
	lines := make([]string, 0, len(report.Breakdown)+2)
	for _, c := range report.Breakdown {
		lines = append(lines, fmt.Sprintf("- %s +%d pts.", c.ChallengeName, c.Points))
	}
	lines = append(lines, "", fmt.Sprintf("Total score from %d submissions: %d",
		report.Submissions, report.Total))
	return strings.Join(lines, "\n")
}

func teamOverviewText(team string, members []models.Participant) string {
	memberLines := "No team members yet"
	if len(members) > 0 {
		lines := make([]string, 0, len(members))
		for _, m := range members {
			lines = append(lines, "- "+m.DisplayName())
		}
		memberLines = strings.Join(lines, "\n")
	}
	return fmt.Sprintf("Overview team <code>%s</code>\n\n%d Member(s):\n%s",
		team, len(members), memberLines)
}

func safetyTeamText(team []models.SafetyTeam) string {
	roster := "No safety team available right now"
	if len(team) > 0 {
		lines := make([]string, 0, len(team))
		for _, t := range team {
			lines = append(lines, fmt.Sprintf("%s: %s", t.Name, t.Phone))
		}
		roster = strings.Join(lines, "\n")
	}
	return fmt.Sprintf("Our safety team right now. Do not hesitate to talk to any other tutors.\n%s\n\n🚑 <b>Fire brigade & ambulance: +112</b>\n👮 Police: +110", roster)
}
