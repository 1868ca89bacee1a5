package telegram

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/services"
	"github.com/offdroid/spreebreak-2024ws-bot/internal/ws"
)

const participantHelp = `/join_team <name> - Join a team. E.g. /join_team team123
/team_overview - Show the team members.
/score - Shows your team score.
/emergency_information - Current safety team and emergency numbers.
/survival_guide - Get the survival guide.
/schedule - Show the schedule.
/help - Shows this message.`

const maintainerHelp = `/enable_submissions <true|false> - Enable or disable submissions
/list_teams - List teams without team members
/list_team_members - List teams and their respective members
/scoreboard - Leaderboard
/list_team_submissions - [CAUTION] List submissions for each team
/list_team_submission_judgments - [CAUTION] List judged submissions for each team
/update_team_forums - Force update team forums
/message_to_participants <text> - Send a message to all users
/list_participants - List participants
/judge <id> <challenge> - Rate a submission
/list_submissions - [CAUTION] List submissions
/list_judgements - [CAUTION] List judgements`

type UpdateHandler struct {
	client      *Client
	state       *StateManager
	roster      *services.RosterService
	topology    *services.TopologyService
	submissions *services.SubmissionService
	judgements  *services.JudgementService
	scoring     *services.ScoringService
	info        *services.InfoService
	broadcast   *services.BroadcastService
	hub         *ws.Hub
	maintainers map[int64]bool
	judgeChatID int64
}

func NewUpdateHandler(
	client *Client,
	state *StateManager,
	roster *services.RosterService,
	topology *services.TopologyService,
	submissions *services.SubmissionService,
	judgements *services.JudgementService,
	scoring *services.ScoringService,
	info *services.InfoService,
	broadcast *services.BroadcastService,
	hub *ws.Hub,
	maintainers []int64,
	judgeChatID int64,
) *UpdateHandler {
	set := make(map[int64]bool, len(maintainers))
	for _, id := range maintainers {
		set[id] = true
	}
	return &UpdateHandler{
		client:      client,
		state:       state,
		roster:      roster,
		topology:    topology,
		submissions: submissions,
		judgements:  judgements,
		scoring:     scoring,
		info:        info,
		broadcast:   broadcast,
		hub:         hub,
		maintainers: set,
		judgeChatID: judgeChatID,
	}
}

func (h *UpdateHandler) Handle(upd Update) {
	if upd.CallbackQuery != nil {
		h.handleCallback(upd.CallbackQuery)
		return
	}
	if upd.Message != nil {
		h.handleMessage(upd.Message)
	}
}

func (h *UpdateHandler) handleMessage(msg *Message) {
	if msg.From == nil {
		return
	}
	chatID := msg.Chat.ID
	private := msg.Chat.Type == "private"

	if cmd, args := parseCommand(msg.Text); cmd != "" {
		if !private && chatID != h.judgeChatID && cmd != "help" {
			h.reply(chatID, "Please use me in a private chat")
			return
		}
		if h.maintainers[msg.From.ID] && private && h.handleMaintainerCommand(msg, cmd, args) {
			return
		}
		h.handleParticipantCommand(msg, cmd, args)
		return
	}

	if !private {
		if chatID != h.judgeChatID {
			h.reply(chatID, "Please use me in a private chat")
		}
		return
	}

	if len(msg.Photo) > 0 || msg.Video != nil {
		h.onMedia(msg)
		return
	}

	if h.state.Get(msg.From.ID).State == StateEnterTeam {
		h.joinTeam(msg, msg.Text)
		return
	}

	h.smallTalk(chatID, msg.Text)
}

func (h *UpdateHandler) handleParticipantCommand(msg *Message, cmd, args string) {
	chatID := msg.Chat.ID
	switch cmd {
	case "start":
		h.reply(chatID, fmt.Sprintf("Hello %s", msg.From.FirstName))
		h.reply(chatID, "Check /help for ways that I can provide you help.\n\nTo get started with the photo challenge use /join_team followed by the team name. The team name must be identical for all team members.\n\nAny photos or videos you sent me will be submissions to the photo challenge. Please consider adding meaningful captions!")
	case "help":
		text := participantHelp
		if h.maintainers[msg.From.ID] {
			text += "\n\n" + maintainerHelp
		}
		h.reply(chatID, text)
	case "join_team", "join":
		if strings.TrimSpace(args) == "" {
			h.state.Set(msg.From.ID, &UserState{State: StateEnterTeam})
			h.reply(chatID, "Please provide a team name. /join_team followed by the team name")
			return
		}
		h.joinTeam(msg, args)
	case "team_overview":
		h.cmdTeamOverview(msg)
	case "score":
		h.cmdScore(msg)
	case "schedule":
		h.cmdSchedule(chatID)
	case "survival_guide":
		h.cmdSurvivalGuide(chatID)
	case "emergency_information":
		h.cmdEmergencyInformation(chatID)
	default:
		h.reply(chatID, "Unknown command. /help")
	}
}

func (h *UpdateHandler) joinTeam(msg *Message, team string) {
	h.state.Clear(msg.From.ID)

	_, err := h.roster.JoinTeam(msg.From.ID, team, msg.From.Username, msg.From.FirstName, msg.From.LastName)
	if errors.Is(err, services.ErrEmptyInput) {
		h.reply(msg.Chat.ID, "Please provide a team name. /join_team followed by the team name")
		return
	}
	if err != nil {
		log.Printf("handler: join team: %v", err)
		h.reply(msg.Chat.ID, "Something went wrong, please try again")
		return
	}

	h.send(msg.Chat.ID,
		fmt.Sprintf("You joined team `%s`\n\nCheck the team members with /team\\_overview\\.\nDon't change your team \\(name\\) after the first submission; previous submissions will not count anymore", escapeMarkdown(team)),
		&SendOptions{ParseMode: "MarkdownV2"})

	if err := h.topology.Reconcile(); err != nil {
		log.Printf("handler: reconcile after join: %v", err)
	}
}

func (h *UpdateHandler) cmdTeamOverview(msg *Message) {
	participant, err := h.roster.Get(msg.From.ID)
	if err != nil {
		log.Printf("handler: team overview: %v", err)
		return
	}
	if participant == nil {
		h.reply(msg.Chat.ID, "You are not yet part of a team")
		return
	}

	members, err := h.roster.TeamMembers(participant.Team)
	if err != nil {
		log.Printf("handler: team members: %v", err)
		return
	}
	h.send(msg.Chat.ID, teamOverviewText(participant.Team, members), &SendOptions{ParseMode: "HTML"})
}

func (h *UpdateHandler) cmdScore(msg *Message) {
	report, err := h.scoring.ParticipantScore(msg.From.ID)
	if errors.Is(err, services.ErrNotRegistered) {
		h.reply(msg.Chat.ID, "You are not part of a team. Use /join_team to join a team.")
		return
	}
	if err != nil {
		log.Printf("handler: score: %v", err)
		return
	}
	h.reply(msg.Chat.ID, scoreReportText(report))
}

func (h *UpdateHandler) cmdSchedule(chatID int64) {
	loc, err := h.info.ScheduleSource()
	if err != nil {
		log.Printf("handler: schedule source: %v", err)
		h.reply(chatID, "The schedule is not available right now")
		return
	}
	if err := h.client.SendPhoto(chatID, loc.Mode, loc.Path); err != nil {
		log.Printf("handler: send schedule: %v", err)
	}
}

func (h *UpdateHandler) cmdSurvivalGuide(chatID int64) {
	loc, err := h.info.CityGuide()
	if err != nil {
		log.Printf("handler: city guide source: %v", err)
		h.reply(chatID, "The survival guide is not available right now")
		return
	}
	if err := h.client.SendDocument(chatID, loc.Mode, loc.Path); err != nil {
		log.Printf("handler: send survival guide: %v", err)
	}
}

func (h *UpdateHandler) cmdEmergencyInformation(chatID int64) {
	team, err := h.info.SafetyTeamFor(time.Now())
	if err != nil {
		log.Printf("handler: safety team: %v", err)
		return
	}
	h.send(chatID, safetyTeamText(team), &SendOptions{ParseMode: "HTML"})
}

func (h *UpdateHandler) onMedia(msg *Message) {
	var fileID string
	kind := 0
	if msg.Video != nil {
		fileID = msg.Video.FileID
		kind = 1
	} else {
		// Sizes are ordered small to large; take the largest.
		fileID = msg.Photo[len(msg.Photo)-1].FileID
	}

	h.client.SendChatAction(msg.Chat.ID, "upload_photo")

	_, err := h.submissions.Submit(services.SubmissionInput{
		MessageID: msg.MessageID,
		UserID:    msg.From.ID,
		ChatID:    msg.Chat.ID,
		FileID:    fileID,
		Kind:      kind,
		Caption:   msg.Caption,
	})
	switch {
	case errors.Is(err, services.ErrSubmissionsDisabled):
		h.reply(msg.Chat.ID, "Submissions are currently disabled")
	case errors.Is(err, services.ErrNotRegistered):
		h.reply(msg.Chat.ID, "You are not part of a team. Use /join_team to join a team.")
	case err != nil:
		log.Printf("handler: submit %d: %v", msg.MessageID, err)
		h.reply(msg.Chat.ID, "Something went wrong, please resend your submission later")
	}
}

func (h *UpdateHandler) handleCallback(cb *CallbackQuery) {
	_, ref, choice, ok := parseCallbackData(cb.Data)
	if !ok {
		h.client.AnswerCallbackQuery(cb.ID, "Invalid callback data", true)
		return
	}

	h.client.AnswerCallbackQuery(cb.ID, fmt.Sprintf("Choice = %s", choice), true)

	submissionID, err := parseInt64(ref)
	if err != nil {
		log.Printf("handler: callback ref %q: %v", ref, err)
		return
	}

	result, err := h.judgements.Judge(submissionID, choice)
	if err != nil {
		log.Printf("handler: judge %d via callback: %v", submissionID, err)
		return
	}
	h.hub.Broadcast(ws.Event{Type: "judgement", Data: result})

	text := fmt.Sprintf("Decision <b>%s</b>\n\nOverwrite with '/judge %s [challenge]'", choice, ref)
	if cb.Message != nil {
		if err := h.client.EditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text, "HTML", nil); err != nil {
			log.Printf("handler: edit prompt: %v", err)
		}
	}

	log.Printf("judge chose %q for submission %d", choice, submissionID)
}

func (h *UpdateHandler) smallTalk(chatID int64, text string) {
	if text == "" {
		h.reply(chatID, "Sorry, this type of message isn't supported.")
		return
	}
	lower := strings.ToLower(text)
	response := "Sorry, I didn't understand your message. /help"
	switch {
	case strings.Contains(lower, "beer") || strings.Contains(lower, "bier"):
		response = "I love Bavarian beer!"
	case strings.Contains(lower, "prost"):
		response = "Prost!"
	case strings.Contains(lower, "servus") || strings.Contains(lower, "hallo") ||
		strings.Contains(lower, "hi") || strings.Contains(lower, "hey"):
		response = "Servus!"
	}
	h.reply(chatID, response)
}

func (h *UpdateHandler) reply(chatID int64, text string) {
	h.send(chatID, text, nil)
}

func (h *UpdateHandler) send(chatID int64, text string, opts *SendOptions) {
	if _, err := h.client.SendMessage(chatID, text, opts); err != nil {
		log.Printf("handler: send to %d: %v", chatID, err)
	}
}

func parseCommand(text string) (cmd, args string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	parts := strings.SplitN(text, " ", 2)
	cmd = strings.TrimPrefix(parts[0], "/")
	cmd = strings.Split(cmd, "@")[0]
	if len(parts) == 2 {
		args = strings.TrimSpace(parts[1])
	}
	return cmd, args
}
