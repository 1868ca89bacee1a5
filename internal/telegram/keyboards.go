package telegram

import (
	"fmt"
	"strings"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"
)

// Callback data layout: "<submitter id>###<submission message id>###<choice>".
const callbackSep = "###"

// ChallengeKeyboard lists one button per remaining challenge plus the two
// terminal verdicts.
func ChallengeKeyboard(userID, messageID int64, challenges []models.Challenge) *InlineKeyboardMarkup {
	var rows [][]InlineKeyboardButton
	for _, c := range challenges {
		rows = append(rows, []InlineKeyboardButton{
			{Text: c.ShortName, CallbackData: callbackData(userID, messageID, c.Name)},
		})
	}
	rows = append(rows, []InlineKeyboardButton{
		{Text: "⚠️ Unclear", CallbackData: callbackData(userID, messageID, models.ChallengeUnclear)},
		{Text: "❌ Invalid", CallbackData: callbackData(userID, messageID, models.ChallengeInvalid)},
	})
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

func callbackData(userID, messageID int64, choice string) string {
	return fmt.Sprintf("%d%s%d%s%s", userID, callbackSep, messageID, callbackSep, choice)
}

// parseCallbackData splits judged callback data into its three parts.
func parseCallbackData(data string) (submitter, messageID, choice string, ok bool) {
	parts := strings.Split(data, callbackSep)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
