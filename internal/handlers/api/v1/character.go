package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/animarpg/anima-api/internal/entities/anima"
	"github.com/animarpg/anima-api/internal/errors"
	characterorc "github.com/animarpg/anima-api/internal/orchestrators/character"
)

type createCharacterRequest struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name" binding:"required"`
	Level    int    `json:"level" binding:"required"`
}

func (h *Handler) createCharacter(c *gin.Context) {
	var req createCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument(err.Error()))
		return
	}

	out, err := h.characterService.CreateCharacter(c.Request.Context(), &characterorc.CreateCharacterInput{
		Actor:    actorFrom(c),
		PlayerID: req.PlayerID,
		Name:     req.Name,
		Level:    req.Level,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, out.Character)
}

func (h *Handler) getCharacter(c *gin.Context) {
	out, err := h.characterService.GetCharacter(c.Request.Context(), &characterorc.GetCharacterInput{
		CharacterID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Character)
}

func (h *Handler) listCharacters(c *gin.Context) {
	playerID := c.Query("playerId")
	if playerID == "" {
		playerID = actorFrom(c).PlayerID
	}

	out, err := h.characterService.ListCharacters(c.Request.Context(), &characterorc.ListCharactersInput{
		PlayerID: playerID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"characters": out.Characters})
}

func (h *Handler) deleteCharacter(c *gin.Context) {
	if _, err := h.characterService.DeleteCharacter(c.Request.Context(), &characterorc.DeleteCharacterInput{
		Actor:       actorFrom(c),
		CharacterID: c.Param("id"),
	}); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type statPointRequest struct {
	Group string `json:"group" binding:"required"`
	Stat  string `json:"stat" binding:"required"`
}

func (h *Handler) spendPoint(c *gin.Context) {
	var req statPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument(err.Error()))
		return
	}

	out, err := h.characterService.SpendPoint(c.Request.Context(), &characterorc.SpendPointInput{
		Actor:       actorFrom(c),
		CharacterID: c.Param("id"),
		Group:       anima.StatGroup(req.Group),
		Stat:        req.Stat,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Character)
}

func (h *Handler) refundPoint(c *gin.Context) {
	var req statPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument(err.Error()))
		return
	}

	out, err := h.characterService.RefundPoint(c.Request.Context(), &characterorc.RefundPointInput{
		Actor:       actorFrom(c),
		CharacterID: c.Param("id"),
		Group:       anima.StatGroup(req.Group),
		Stat:        req.Stat,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Character)
}

type adjustModifierRequest struct {
	Group string `json:"group" binding:"required"`
	Stat  string `json:"stat" binding:"required"`
	Delta int    `json:"delta" binding:"required"`
}

func (h *Handler) adjustModifier(c *gin.Context) {
	var req adjustModifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument(err.Error()))
		return
	}

	out, err := h.characterService.AdjustModifier(c.Request.Context(), &characterorc.AdjustModifierInput{
		Actor:       actorFrom(c),
		CharacterID: c.Param("id"),
		Group:       anima.StatGroup(req.Group),
		Stat:        req.Stat,
		Delta:       req.Delta,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Character)
}

type adjustResourceRequest struct {
	Pool  string `json:"pool" binding:"required"`
	Delta int    `json:"delta" binding:"required"`
}

func (h *Handler) adjustResource(c *gin.Context) {
	var req adjustResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument(err.Error()))
		return
	}

	out, err := h.characterService.AdjustResource(c.Request.Context(), &characterorc.AdjustResourceInput{
		Actor:       actorFrom(c),
		CharacterID: c.Param("id"),
		Pool:        anima.ResourceKind(req.Pool),
		Delta:       req.Delta,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"character": out.Character,
		"current":   out.Pool.Current,
		"total":     out.Pool.Total,
		"overflow":  out.Pool.Overflow(),
	})
}

func (h *Handler) resetResources(c *gin.Context) {
	out, err := h.characterService.ResetResources(c.Request.Context(), &characterorc.ResetResourcesInput{
		Actor:       actorFrom(c),
		CharacterID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Character)
}

type addInventoryRequest struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Qty    int    `json:"qty"`
}

func (h *Handler) addInventory(c *gin.Context) {
	var req addInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument(err.Error()))
		return
	}

	entry := anima.InventoryEntry{
		ItemID: req.ItemID,
		Name:   req.Name,
		Type:   req.Type,
	}

	// A quantity means a stackable varie add; anything else is one
	// discrete entry.
	if req.Qty > 0 {
		out, err := h.characterService.AddStackable(c.Request.Context(), &characterorc.AddStackableInput{
			Actor:       actorFrom(c),
			CharacterID: c.Param("id"),
			Entry:       entry,
			Qty:         req.Qty,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out.Character)
		return
	}

	out, err := h.characterService.AddItem(c.Request.Context(), &characterorc.AddItemInput{
		Actor:       actorFrom(c),
		CharacterID: c.Param("id"),
		Entry:       entry,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Character)
}

type removeInventoryRequest struct {
	ItemKey string `json:"itemKey" binding:"required"`
	Count   int    `json:"count" binding:"required"`
}

func (h *Handler) removeInventory(c *gin.Context) {
	var req removeInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument(err.Error()))
		return
	}

	out, err := h.characterService.RemoveItemUnits(c.Request.Context(), &characterorc.RemoveItemUnitsInput{
		Actor:       actorFrom(c),
		CharacterID: c.Param("id"),
		ItemKey:     req.ItemKey,
		Count:       req.Count,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"character": out.Character,
		"removed":   out.Removed,
	})
}

func (h *Handler) aggregateInventory(c *gin.Context) {
	out, err := h.characterService.AggregateInventory(c.Request.Context(), &characterorc.AggregateInventoryInput{
		CharacterID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lines": out.Lines})
}

type adjustGoldRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func (h *Handler) adjustGold(c *gin.Context) {
	var req adjustGoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument(err.Error()))
		return
	}

	out, err := h.characterService.AdjustGold(c.Request.Context(), &characterorc.AdjustGoldInput{
		Actor:       actorFrom(c),
		CharacterID: c.Param("id"),
		Delta:       req.Delta,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"character": out.Character,
		"gold":      out.Gold,
	})
}
