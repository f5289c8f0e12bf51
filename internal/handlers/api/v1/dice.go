package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/animarpg/anima-api/internal/errors"
	diceorc "github.com/animarpg/anima-api/internal/orchestrators/dice"
)

type rollRequest struct {
	Notation     string `json:"notation" binding:"required"`
	Description  string `json:"description"`
	WithPreviews bool   `json:"withPreviews"`
}

func (h *Handler) roll(c *gin.Context) {
	var req rollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument(err.Error()))
		return
	}

	actor := actorFrom(c)
	if actor.PlayerID == "" {
		writeError(c, errors.InvalidArgument("X-Player-ID header is required"))
		return
	}

	out, err := h.diceService.Roll(c.Request.Context(), &diceorc.RollInput{
		ActorID:      actor.PlayerID,
		Notation:     req.Notation,
		Description:  req.Description,
		WithPreviews: req.WithPreviews,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry":    out.Entry,
		"rolls":    out.Result.Rolls,
		"total":    out.Result.Total,
		"previews": out.Previews,
	})
}

func (h *Handler) rollHistory(c *gin.Context) {
	actor := actorFrom(c)
	actorID := c.Query("actorId")
	if actorID == "" {
		actorID = actor.PlayerID
	}
	if actorID == "" {
		writeError(c, errors.InvalidArgument("X-Player-ID header is required"))
		return
	}

	out, err := h.diceService.History(c.Request.Context(), &diceorc.HistoryInput{ActorID: actorID})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": out.Entries})
}

type rollInitiativeRequest struct {
	CharacterID string `json:"characterId" binding:"required"`
}

func (h *Handler) rollInitiative(c *gin.Context) {
	var req rollInitiativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument(err.Error()))
		return
	}

	out, err := h.diceService.RollInitiative(c.Request.Context(), &diceorc.RollInitiativeInput{
		Actor:       actorFrom(c),
		CharacterID: req.CharacterID,
		EncounterID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry": out.Entry,
		"total": out.Total,
	})
}
