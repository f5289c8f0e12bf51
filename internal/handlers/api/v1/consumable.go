package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/animarpg/anima-api/internal/entities/anima"
	"github.com/animarpg/anima-api/internal/errors"
	"github.com/animarpg/anima-api/internal/orchestrators/consumable"
)

type useConsumableRequest struct {
	ItemID  string `json:"itemId" binding:"required"`
	SlotKey string `json:"slotKey"`
	Mode    string `json:"mode"`
}

func (h *Handler) useConsumable(c *gin.Context) {
	var req useConsumableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument(err.Error()))
		return
	}

	out, err := h.consumableService.Use(c.Request.Context(), &consumable.UseInput{
		Actor:       actorFrom(c),
		CharacterID: c.Param("id"),
		ItemID:      req.ItemID,
		SlotKey:     req.SlotKey,
		Mode:        anima.RegenMode(req.Mode),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{
		"character": out.Character,
		"gained":    out.Gained,
	}
	if out.Result != nil {
		resp["mode"] = out.Mode
		resp["rolls"] = out.Result.Rolls
		resp["total"] = out.Result.Total
		resp["entry"] = out.Entry
	}

	c.JSON(http.StatusOK, resp)
}
