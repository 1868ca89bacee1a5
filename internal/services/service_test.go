package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Participant{},
		&models.Submission{},
		&models.Judgement{},
		&models.Challenge{},
		&models.ForumTopic{},
		&models.ConfigEntry{},
		&models.SafetyTeam{},
	))
	return db
}

func seedChallenges(t *testing.T, db *gorm.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, db.Create(&models.Challenge{Name: name, ShortName: name}).Error)
	}
}

func joinTeam(t *testing.T, roster *RosterService, userID int64, team string) {
	t.Helper()
	_, err := roster.JoinTeam(userID, team, "user", "First", "Last")
	require.NoError(t, err)
}

// fakeTopics records topic mutations and can fail per team name or topic id.
type fakeTopics struct {
	mu        sync.Mutex
	nextID    int64
	created   []string
	closed    []int64
	createErr map[string]error
	closeErr  map[int64]error
}

func (f *fakeTopics) CreateTopic(name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr[name]; err != nil {
		return 0, err
	}
	f.nextID++
	f.created = append(f.created, name)
	return f.nextID, nil
}

func (f *fakeTopics) CloseTopic(topicID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.closeErr[topicID]; err != nil {
		return err
	}
	f.closed = append(f.closed, topicID)
	return nil
}

func (f *fakeTopics) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeMedia struct {
	err   error
	calls int
}

func (f *fakeMedia) Store(fileID string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "submissions/" + fileID + ".jpg", nil
}

type forwardCall struct {
	TopicID    int64
	FromChatID int64
	MessageID  int64
}

type promptCall struct {
	TopicID   int64
	Detail    SubmissionDetail
	Remaining []models.Challenge
}

type fakeJudgeRoom struct {
	forwardErr  error
	announceErr error
	promptErr   error

	forwards  []forwardCall
	announces []SubmissionDetail
	prompts   []promptCall
}

func (f *fakeJudgeRoom) Forward(topicID, fromChatID, messageID int64) (int64, error) {
	if f.forwardErr != nil {
		return 0, f.forwardErr
	}
	f.forwards = append(f.forwards, forwardCall{topicID, fromChatID, messageID})
	return messageID + 1000, nil
}

func (f *fakeJudgeRoom) Announce(topicID, replyTo int64, detail SubmissionDetail) error {
	if f.announceErr != nil {
		return f.announceErr
	}
	f.announces = append(f.announces, detail)
	return nil
}

func (f *fakeJudgeRoom) PromptSelection(topicID int64, detail SubmissionDetail, remaining []models.Challenge) error {
	if f.promptErr != nil {
		return f.promptErr
	}
	f.prompts = append(f.prompts, promptCall{topicID, detail, remaining})
	return nil
}

type fakeFeedback struct {
	err error

	replies []string
	reacts  []int64
	clears  []int64
}

func (f *fakeFeedback) DirectiveReply(userID, messageID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.replies = append(f.replies, text)
	return nil
}

func (f *fakeFeedback) React(userID, messageID int64) error {
	if f.err != nil {
		return f.err
	}
	f.reacts = append(f.reacts, messageID)
	return nil
}

func (f *fakeFeedback) ClearReaction(userID, messageID int64) error {
	if f.err != nil {
		return f.err
	}
	f.clears = append(f.clears, messageID)
	return nil
}

type fakeSender struct {
	failFor map[int64]bool
	sent    map[int64][]string
}

func (f *fakeSender) SendText(chatID int64, text string) error {
	if f.failFor[chatID] {
		return errors.New("chat unavailable")
	}
	if f.sent == nil {
		f.sent = make(map[int64][]string)
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}
