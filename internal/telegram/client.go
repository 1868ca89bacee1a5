package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	fileURL    string
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 65 * time.Second},
		baseURL:    fmt.Sprintf("https://api.telegram.org/bot%s", token),
		fileURL:    fmt.Sprintf("https://api.telegram.org/file/bot%s", token),
	}
}

func (c *Client) call(method string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+"/"+method, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if !apiResp.OK {
		return nil, fmt.Errorf("telegram: %s", apiResp.Description)
	}

	return apiResp.Result, nil
}

// callUpload posts a multipart form with one local file attached under
// fileField, used by sendPhoto/sendDocument for file-mode locators.
func (c *Client) callUpload(method, fileField, path string, fields map[string]string) (json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	part, err := w.CreateFormFile(fileField, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(c.baseURL+"/"+method, w.FormDataContentType(), &buf)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if !apiResp.OK {
		return nil, fmt.Errorf("telegram: %s", apiResp.Description)
	}
	return apiResp.Result, nil
}

func (c *Client) SendMessage(chatID int64, text string, opts *SendOptions) (int64, error) {
	req := SendMessageRequest{
		ChatID: chatID,
		Text:   text,
	}
	if opts != nil {
		req.ParseMode = opts.ParseMode
		req.MessageThreadID = opts.MessageThreadID
		req.DisableNotification = opts.DisableNotification
		if opts.ReplyToMessageID != 0 {
			req.ReplyParameters = &ReplyParameters{MessageID: opts.ReplyToMessageID}
		}
		if opts.ReplyMarkup != nil {
			rm, err := json.Marshal(opts.ReplyMarkup)
			if err != nil {
				return 0, err
			}
			req.ReplyMarkup = rm
		}
	}

	result, err := c.call("sendMessage", req)
	if err != nil {
		return 0, err
	}

	var msg MessageResult
	if err := json.Unmarshal(result, &msg); err != nil {
		return 0, fmt.Errorf("unmarshal message: %w", err)
	}
	return msg.MessageID, nil
}

func (c *Client) ForwardMessage(chatID, fromChatID, messageID, threadID int64) (int64, error) {
	req := ForwardMessageRequest{
		ChatID:          chatID,
		FromChatID:      fromChatID,
		MessageID:       messageID,
		MessageThreadID: threadID,
	}
	result, err := c.call("forwardMessage", req)
	if err != nil {
		return 0, err
	}
	var msg MessageResult
	if err := json.Unmarshal(result, &msg); err != nil {
		return 0, fmt.Errorf("unmarshal message: %w", err)
	}
	return msg.MessageID, nil
}

func (c *Client) EditMessageText(chatID, messageID int64, text, parseMode string, replyMarkup interface{}) error {
	req := EditMessageTextRequest{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: parseMode,
	}
	if replyMarkup != nil {
		rm, err := json.Marshal(replyMarkup)
		if err != nil {
			return err
		}
		req.ReplyMarkup = rm
	}
	_, err := c.call("editMessageText", req)
	return err
}

func (c *Client) AnswerCallbackQuery(callbackID, text string, showAlert bool) error {
	req := AnswerCallbackQueryRequest{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	}
	_, err := c.call("answerCallbackQuery", req)
	return err
}

func (c *Client) CreateForumTopic(chatID int64, name string) (int64, error) {
	result, err := c.call("createForumTopic", CreateForumTopicRequest{ChatID: chatID, Name: name})
	if err != nil {
		return 0, err
	}
	var topic ForumTopicResult
	if err := json.Unmarshal(result, &topic); err != nil {
		return 0, fmt.Errorf("unmarshal topic: %w", err)
	}
	return topic.MessageThreadID, nil
}

func (c *Client) CloseForumTopic(chatID, threadID int64) error {
	_, err := c.call("closeForumTopic", CloseForumTopicRequest{ChatID: chatID, MessageThreadID: threadID})
	return err
}

// SetMessageReaction replaces the bot's reaction; an empty emoji clears it.
func (c *Client) SetMessageReaction(chatID, messageID int64, emoji string) error {
	req := SetMessageReactionRequest{ChatID: chatID, MessageID: messageID}
	if emoji != "" {
		req.Reaction = []ReactionType{{Type: "emoji", Emoji: emoji}}
	}
	_, err := c.call("setMessageReaction", req)
	return err
}

func (c *Client) SendChatAction(chatID int64, action string) error {
	_, err := c.call("sendChatAction", SendChatActionRequest{ChatID: chatID, Action: action})
	return err
}

func (c *Client) GetFile(fileID string) (*File, error) {
	result, err := c.call("getFile", struct {
		FileID string `json:"file_id"`
	}{FileID: fileID})
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(result, &f); err != nil {
		return nil, fmt.Errorf("unmarshal file: %w", err)
	}
	return &f, nil
}

func (c *Client) DownloadFile(filePath string) ([]byte, error) {
	resp, err := c.httpClient.Get(c.fileURL + "/" + filePath)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram: download status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// SendPhoto sends either a remote URL or a local file, depending on mode.
func (c *Client) SendPhoto(chatID int64, mode, path string) error {
	if mode == "url" {
		_, err := c.call("sendPhoto", struct {
			ChatID int64  `json:"chat_id"`
			Photo  string `json:"photo"`
		}{ChatID: chatID, Photo: path})
		return err
	}
	_, err := c.callUpload("sendPhoto", "photo", path, map[string]string{
		"chat_id": fmt.Sprintf("%d", chatID),
	})
	return err
}

// SendDocument sends either a remote URL or a local file, depending on mode.
func (c *Client) SendDocument(chatID int64, mode, path string) error {
	if mode == "url" {
		_, err := c.call("sendDocument", struct {
			ChatID   int64  `json:"chat_id"`
			Document string `json:"document"`
		}{ChatID: chatID, Document: path})
		return err
	}
	_, err := c.callUpload("sendDocument", "document", path, map[string]string{
		"chat_id": fmt.Sprintf("%d", chatID),
	})
	return err
}

func (c *Client) GetUpdates(offset int64, timeout int) ([]Update, error) {
	result, err := c.call("getUpdates", GetUpdatesRequest{Offset: offset, Timeout: timeout})
	if err != nil {
		return nil, err
	}
	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("unmarshal updates: %w", err)
	}
	return updates, nil
}

func (c *Client) SetWebhook(url, secretToken string) error {
	req := SetWebhookRequest{URL: url, SecretToken: secretToken}
	_, err := c.call("setWebhook", req)
	return err
}

func (c *Client) DeleteWebhook() error {
	_, err := c.call("deleteWebhook", struct{}{})
	return err
}
