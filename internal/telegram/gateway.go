package telegram

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"
	"github.com/offdroid/spreebreak-2024ws-bot/internal/services"

	"github.com/google/uuid"
)

// Gateway adapts the raw client to the transport interfaces the services
// consume: topic management, judge-chat routing, submitter feedback and
// broadcast delivery.
type Gateway struct {
	client      *Client
	judgeChatID int64
}

func NewGateway(client *Client, judgeChatID int64) *Gateway {
	return &Gateway{client: client, judgeChatID: judgeChatID}
}

var _ services.TopicTransport = (*Gateway)(nil)
var _ services.JudgeRoom = (*Gateway)(nil)
var _ services.Feedback = (*Gateway)(nil)
var _ services.TextSender = (*Gateway)(nil)

func (g *Gateway) CreateTopic(name string) (int64, error) {
	return g.client.CreateForumTopic(g.judgeChatID, name)
}

func (g *Gateway) CloseTopic(topicID int64) error {
	return g.client.CloseForumTopic(g.judgeChatID, topicID)
}

func (g *Gateway) Forward(topicID, fromChatID, messageID int64) (int64, error) {
	return g.client.ForwardMessage(g.judgeChatID, fromChatID, messageID, topicID)
}

func (g *Gateway) Announce(topicID, replyTo int64, detail services.SubmissionDetail) error {
	_, err := g.client.SendMessage(g.judgeChatID, SubmissionMessage(detail), &SendOptions{
		MessageThreadID:     topicID,
		ReplyToMessageID:    replyTo,
		DisableNotification: true,
	})
	return err
}

func (g *Gateway) PromptSelection(topicID int64, detail services.SubmissionDetail, remaining []models.Challenge) error {
	_, err := g.client.SendMessage(g.judgeChatID, "Select challenge or action", &SendOptions{
		MessageThreadID:     topicID,
		ReplyMarkup:         ChallengeKeyboard(detail.UserID, detail.MessageID, remaining),
		DisableNotification: true,
	})
	return err
}

func (g *Gateway) DirectiveReply(userID, messageID int64, text string) error {
	_, err := g.client.SendMessage(userID, text, &SendOptions{ReplyToMessageID: messageID})
	return err
}

func (g *Gateway) React(userID, messageID int64) error {
	return g.client.SetMessageReaction(userID, messageID, "❤")
}

func (g *Gateway) ClearReaction(userID, messageID int64) error {
	return g.client.SetMessageReaction(userID, messageID, "")
}

func (g *Gateway) SendText(chatID int64, text string) error {
	_, err := g.client.SendMessage(chatID, text, nil)
	return err
}

// MediaStore downloads submission media through the bot API and keeps it on
// local disk under uuid names.
type MediaStore struct {
	client *Client
	dir    string
}

func NewMediaStore(client *Client, dir string) *MediaStore {
	return &MediaStore{client: client, dir: dir}
}

var _ services.MediaStore = (*MediaStore)(nil)

func (m *MediaStore) Store(fileID string) (string, error) {
	f, err := m.client.GetFile(fileID)
	if err != nil {
		return "", fmt.Errorf("get file: %w", err)
	}
	data, err := m.client.DownloadFile(f.FilePath)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + filepath.Ext(f.FilePath)
	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
