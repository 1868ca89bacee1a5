package services

import (
	"errors"
	"testing"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func judgeEnv(t *testing.T) (*JudgementService, *SubmissionService, *RosterService, *fakeFeedback) {
	t.Helper()
	db := openTestDB(t)
	roster := NewRosterService(db)
	subs := NewSubmissionService(db, roster, &fakeMedia{}, &fakeJudgeRoom{})
	feedback := &fakeFeedback{}
	seedChallenges(t, db, "fountain", "statue")
	return NewJudgementService(db, feedback), subs, roster, feedback
}

func TestJudgeSubmissionNotFoundTakesPrecedence(t *testing.T) {
	judge, _, _, _ := judgeEnv(t)

	// Neither the submission nor the challenge exists; the submission wins.
	_, err := judge.Judge(99, "no-such-challenge")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestJudgeUnknownChallenge(t *testing.T) {
	judge, subs, roster, _ := judgeEnv(t)
	joinTeam(t, roster, 1, "Falcons")
	_, err := subs.Submit(photoInput(10, 1))
	require.NoError(t, err)

	_, err = judge.Judge(10, "no-such-challenge")
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestJudgeValidAwardsPointAndReacts(t *testing.T) {
	judge, subs, roster, feedback := judgeEnv(t)
	joinTeam(t, roster, 1, "Falcons")
	_, err := subs.Submit(photoInput(10, 1))
	require.NoError(t, err)

	res, err := judge.Judge(10, "fountain")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Judgement.Points)
	assert.True(t, res.Judgement.Valid)
	assert.Equal(t, "Falcons", res.Team)
	assert.EqualValues(t, 1, res.SubmitterID)

	assert.Equal(t, []int64{10}, feedback.reacts)
	assert.Empty(t, feedback.replies)
}

func TestJudgeSentinelsScoreZero(t *testing.T) {
	judge, subs, roster, feedback := judgeEnv(t)
	joinTeam(t, roster, 1, "Falcons")
	_, err := subs.Submit(photoInput(10, 1))
	require.NoError(t, err)
	_, err = subs.Submit(photoInput(11, 1))
	require.NoError(t, err)

	res, err := judge.Judge(10, models.ChallengeUnclear)
	require.NoError(t, err)
	assert.Zero(t, res.Judgement.Points)
	assert.False(t, res.Judgement.Valid)
	require.Len(t, feedback.replies, 1)
	assert.Contains(t, feedback.replies[0], "resend")

	res, err = judge.Judge(11, models.ChallengeInvalid)
	require.NoError(t, err)
	assert.Zero(t, res.Judgement.Points)
	assert.False(t, res.Judgement.Valid)
	require.Len(t, feedback.replies, 2)
	assert.Contains(t, feedback.replies[1], "invalid")
	assert.Equal(t, []int64{10, 11}, feedback.clears)
}

func TestJudgeOverwritesPreviousVerdict(t *testing.T) {
	db := openTestDB(t)
	roster := NewRosterService(db)
	subs := NewSubmissionService(db, roster, &fakeMedia{}, &fakeJudgeRoom{})
	judge := NewJudgementService(db, &fakeFeedback{})
	seedChallenges(t, db, "fountain")
	joinTeam(t, roster, 1, "Falcons")
	_, err := subs.Submit(photoInput(10, 1))
	require.NoError(t, err)

	_, err = judge.Judge(10, "fountain")
	require.NoError(t, err)
	res, err := judge.Judge(10, models.ChallengeInvalid)
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeInvalid, res.Judgement.ChallengeName)
	assert.Zero(t, res.Judgement.Points)

	// Still exactly one ledger row for the submission.
	var rows []models.Judgement
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ChallengeInvalid, rows[0].ChallengeName)
}

func TestJudgeSurvivesTeamLookupFault(t *testing.T) {
	db := openTestDB(t)
	roster := NewRosterService(db)
	subs := NewSubmissionService(db, roster, &fakeMedia{}, &fakeJudgeRoom{})
	judge := NewJudgementService(db, &fakeFeedback{})
	seedChallenges(t, db, "fountain")
	joinTeam(t, roster, 1, "Falcons")
	_, err := subs.Submit(photoInput(10, 1))
	require.NoError(t, err)

	// Break the team resolution; the verdict must still be recorded.
	require.NoError(t, db.Migrator().DropTable(&models.Participant{}))

	res, err := judge.Judge(10, "fountain")
	require.NoError(t, err)
	assert.True(t, res.Judgement.Valid)
	assert.Empty(t, res.Team)

	var rows []models.Judgement
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
}

func TestJudgeFeedbackFailureIsSwallowed(t *testing.T) {
	judge, subs, roster, feedback := judgeEnv(t)
	joinTeam(t, roster, 1, "Falcons")
	_, err := subs.Submit(photoInput(10, 1))
	require.NoError(t, err)
	feedback.err = errors.New("message was deleted")

	res, err := judge.Judge(10, "fountain")
	require.NoError(t, err)
	assert.True(t, res.Judgement.Valid)
}
