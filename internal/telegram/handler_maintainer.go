package telegram

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/services"
	"github.com/offdroid/spreebreak-2024ws-bot/internal/ws"
)

// handleMaintainerCommand reports whether cmd was a maintainer command.
// Unrecognized commands fall through to the participant set.
func (h *UpdateHandler) handleMaintainerCommand(msg *Message, cmd, args string) bool {
	chatID := msg.Chat.ID
	switch cmd {
	case "enable_submissions":
		status, err := strconv.ParseBool(args)
		if err != nil {
			h.reply(chatID, "Usage: /enable_submissions <true|false>")
			return true
		}
		h.submissions.SetEnabled(status)
		h.reply(chatID, fmt.Sprintf("Submissions enabled: %t", status))

	case "list_teams":
		teams, err := h.roster.Teams()
		if err != nil {
			log.Printf("handler: list teams: %v", err)
			return true
		}
		h.reply(chatID, teamsText(teams))

	case "list_team_members":
		participants, err := h.roster.Participants()
		if err != nil {
			log.Printf("handler: list team members: %v", err)
			return true
		}
		h.reply(chatID, participantsText(participants, true))

	case "list_participants":
		participants, err := h.roster.Participants()
		if err != nil {
			log.Printf("handler: list participants: %v", err)
			return true
		}
		h.reply(chatID, participantsText(participants, false))

	case "scoreboard":
		scores, err := h.scoring.Leaderboard()
		if err != nil {
			log.Printf("handler: scoreboard: %v", err)
			return true
		}
		h.reply(chatID, scoreboardText(scores))

	case "list_team_submissions":
		scores, err := h.scoring.Leaderboard()
		if err != nil {
			log.Printf("handler: list team submissions: %v", err)
			return true
		}
		for _, team := range scores {
			subs, err := h.scoring.TeamSubmissions(team.Team)
			if err != nil {
				log.Printf("handler: submissions for %q: %v", team.Team, err)
				continue
			}
			h.reply(chatID, fmt.Sprintf("Submissions for team `%s`:\n%s", team.Team, submissionsText(subs)))
		}

	case "list_team_submission_judgments":
		scores, err := h.scoring.Leaderboard()
		if err != nil {
			log.Printf("handler: list team judgements: %v", err)
			return true
		}
		for _, team := range scores {
			judgements, err := h.scoring.TeamJudgements(team.Team)
			if err != nil {
				log.Printf("handler: judgements for %q: %v", team.Team, err)
				continue
			}
			h.reply(chatID, fmt.Sprintf("Judgements for team `%s`:\n%s", team.Team, judgementsText(judgements)))
		}

	case "update_team_forums":
		if err := h.topology.Reconcile(); err != nil {
			h.reply(chatID, fmt.Sprintf("Forum update finished with errors:\n%v", err))
			return true
		}
		h.reply(chatID, "Team forums updated")

	case "message_to_participants":
		sent, err := h.broadcast.Broadcast(msg.From.ID, msg.From.FirstName, args)
		if errors.Is(err, services.ErrEmptyInput) {
			h.reply(chatID, "Broadcast error: Empty message")
			return true
		}
		if err != nil {
			log.Printf("handler: broadcast: %v", err)
			return true
		}
		h.reply(chatID, fmt.Sprintf("Message sent to %d participants", sent))

	case "judge":
		h.cmdJudge(chatID, args)

	case "list_submissions":
		subs, err := h.scoring.Submissions()
		if err != nil {
			log.Printf("handler: list submissions: %v", err)
			return true
		}
		h.reply(chatID, "Submissions:\n"+submissionsText(subs))

	case "list_judgements":
		judgements, err := h.scoring.Judgements()
		if err != nil {
			log.Printf("handler: list judgements: %v", err)
			return true
		}
		h.reply(chatID, "Judgements:\n"+judgementsText(judgements))

	default:
		return false
	}
	return true
}

func (h *UpdateHandler) cmdJudge(chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		h.reply(chatID, "Usage: /judge <submission id> <challenge>")
		return
	}
	submissionID, err := parseInt64(fields[0])
	if err != nil {
		h.reply(chatID, "Usage: /judge <submission id> <challenge>")
		return
	}

	result, err := h.judgements.Judge(submissionID, fields[1])
	switch {
	case errors.Is(err, services.ErrSubmissionNotFound):
		h.reply(chatID, "Submission not found")
	case errors.Is(err, services.ErrChallengeNotFound):
		h.reply(chatID, "Challenge not found")
	case err != nil:
		log.Printf("handler: judge %d: %v", submissionID, err)
		h.reply(chatID, "Judging failed, please try again")
	default:
		h.hub.Broadcast(ws.Event{Type: "judgement", Data: result})
		h.reply(chatID, "Submission successfully judged")
	}
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

var markdownEscaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(", ")", "\\)",
	"~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
	"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}", ".", "\\.", "!", "\\!",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
