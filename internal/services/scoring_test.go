package services

import (
	"testing"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoringEnv(t *testing.T) (*ScoringService, *JudgementService, *SubmissionService, *RosterService) {
	t.Helper()
	db := openTestDB(t)
	roster := NewRosterService(db)
	subs := NewSubmissionService(db, roster, &fakeMedia{}, &fakeJudgeRoom{})
	judge := NewJudgementService(db, &fakeFeedback{})
	seedChallenges(t, db, "fountain", "statue", "bridge")
	return NewScoringService(db), judge, subs, roster
}

func TestLeaderboardKeepsZeroScoreTeams(t *testing.T) {
	scoring, judge, subs, roster := scoringEnv(t)
	joinTeam(t, roster, 1, "Falcons")
	joinTeam(t, roster, 2, "Otters")

	_, err := subs.Submit(photoInput(10, 1))
	require.NoError(t, err)
	_, err = subs.Submit(photoInput(11, 2))
	require.NoError(t, err)

	_, err = judge.Judge(10, "fountain")
	require.NoError(t, err)
	_, err = judge.Judge(11, "statue")
	require.NoError(t, err)

	board, err := scoring.Leaderboard()
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.EqualValues(t, 1, board[0].Score)
	assert.EqualValues(t, 1, board[1].Score)

	// Overwriting the Falcons' only verdict to invalid drops their score to
	// zero but keeps them on the board.
	_, err = judge.Judge(10, models.ChallengeInvalid)
	require.NoError(t, err)

	board, err = scoring.Leaderboard()
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "Otters", board[0].Team)
	assert.EqualValues(t, 1, board[0].Score)
	assert.Equal(t, "Falcons", board[1].Team)
	assert.Zero(t, board[1].Score)
}

func TestScoresFollowLiveTeamMembership(t *testing.T) {
	scoring, judge, subs, roster := scoringEnv(t)
	joinTeam(t, roster, 1, "Falcons")

	_, err := subs.Submit(photoInput(10, 1))
	require.NoError(t, err)
	_, err = judge.Judge(10, "fountain")
	require.NoError(t, err)

	// The submitter defects; their point travels with them.
	joinTeam(t, roster, 1, "Otters")

	board, err := scoring.Leaderboard()
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "Otters", board[0].Team)
	assert.EqualValues(t, 1, board[0].Score)

	// The listing keeps the frozen submission team.
	falconSubs, err := scoring.TeamSubmissions("Falcons")
	require.NoError(t, err)
	assert.Len(t, falconSubs, 1)
	otterSubs, err := scoring.TeamSubmissions("Otters")
	require.NoError(t, err)
	assert.Empty(t, otterSubs)
}

func TestParticipantScoreBreakdown(t *testing.T) {
	scoring, judge, subs, roster := scoringEnv(t)
	joinTeam(t, roster, 1, "Falcons")
	joinTeam(t, roster, 2, "Falcons")

	_, err := subs.Submit(photoInput(10, 1))
	require.NoError(t, err)
	_, err = subs.Submit(photoInput(11, 2))
	require.NoError(t, err)
	_, err = subs.Submit(photoInput(12, 1))
	require.NoError(t, err)

	_, err = judge.Judge(10, "fountain")
	require.NoError(t, err)
	_, err = judge.Judge(11, "statue")
	require.NoError(t, err)
	_, err = judge.Judge(12, models.ChallengeUnclear)
	require.NoError(t, err)

	report, err := scoring.ParticipantScore(1)
	require.NoError(t, err)
	assert.Equal(t, "Falcons", report.Team)
	assert.EqualValues(t, 2, report.Total)
	assert.Len(t, report.Breakdown, 2)
	assert.EqualValues(t, 2, report.Submissions)
}

func TestParticipantScoreRequiresRegistration(t *testing.T) {
	scoring, _, _, _ := scoringEnv(t)

	_, err := scoring.ParticipantScore(42)
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestJudgementListings(t *testing.T) {
	scoring, judge, subs, roster := scoringEnv(t)
	joinTeam(t, roster, 1, "Falcons")

	_, err := subs.Submit(photoInput(10, 1))
	require.NoError(t, err)
	_, err = judge.Judge(10, "fountain")
	require.NoError(t, err)

	all, err := scoring.Judgements()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "fountain", all[0].ChallengeName)

	team, err := scoring.TeamJudgements("Falcons")
	require.NoError(t, err)
	assert.Len(t, team, 1)

	none, err := scoring.TeamJudgements("Otters")
	require.NoError(t, err)
	assert.Empty(t, none)
}
