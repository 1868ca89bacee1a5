package handlers

import (
	"net/http"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportsHandler exposes the read side of the ledger to the organizer
// dashboard.
type ReportsHandler struct {
	roster  *services.RosterService
	scoring *services.ScoringService
}

func NewReportsHandler(roster *services.RosterService, scoring *services.ScoringService) *ReportsHandler {
	return &ReportsHandler{roster: roster, scoring: scoring}
}

func (h *ReportsHandler) GetLeaderboard(c *gin.Context) {
	scores, err := h.scoring.Leaderboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, scores)
}

func (h *ReportsHandler) ListTeams(c *gin.Context) {
	teams, err := h.roster.Teams()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load teams"})
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *ReportsHandler) ListSubmissions(c *gin.Context) {
	if team := c.Query("team"); team != "" {
		subs, err := h.scoring.TeamSubmissions(team)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load submissions"})
			return
		}
		c.JSON(http.StatusOK, subs)
		return
	}

	subs, err := h.scoring.Submissions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load submissions"})
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *ReportsHandler) ListJudgements(c *gin.Context) {
	if team := c.Query("team"); team != "" {
		judgements, err := h.scoring.TeamJudgements(team)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load judgements"})
			return
		}
		c.JSON(http.StatusOK, judgements)
		return
	}

	judgements, err := h.scoring.Judgements()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load judgements"})
		return
	}
	c.JSON(http.StatusOK, judgements)
}
