// Package v1 exposes the HTTP API. Handlers are thin: they decode
// requests, resolve the acting player from headers, call the
// orchestrators, and map error codes to HTTP statuses.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/animarpg/anima-api/internal/errors"
	characterorc "github.com/animarpg/anima-api/internal/orchestrators/character"
	"github.com/animarpg/anima-api/internal/orchestrators/consumable"
	diceorc "github.com/animarpg/anima-api/internal/orchestrators/dice"
	"github.com/animarpg/anima-api/internal/types"
)

const (
	// Actor identity headers. Session auth is out of scope; the caller
	// states who it is and what role it holds.
	headerPlayerID   = "X-Player-ID"
	headerPlayerRole = "X-Player-Role"
)

// Config holds the dependencies for the HTTP handler
type Config struct {
	CharacterService  characterorc.Service
	DiceService       diceorc.Service
	ConsumableService consumable.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	if c.ConsumableService == nil {
		vb.RequiredField("ConsumableService")
	}

	return vb.Build()
}

// Handler serves the v1 HTTP API
type Handler struct {
	characterService  characterorc.Service
	diceService       diceorc.Service
	consumableService consumable.Service
}

// NewHandler creates a new v1 API handler with the provided dependencies
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		characterService:  cfg.CharacterService,
		diceService:       cfg.DiceService,
		consumableService: cfg.ConsumableService,
	}, nil
}

// RegisterRoutes mounts every v1 route on the router
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/v1")

	characters := v1.Group("/characters")
	characters.POST("", h.createCharacter)
	characters.GET("", h.listCharacters)
	characters.GET("/:id", h.getCharacter)
	characters.DELETE("/:id", h.deleteCharacter)
	characters.POST("/:id/stats/spend", h.spendPoint)
	characters.POST("/:id/stats/refund", h.refundPoint)
	characters.POST("/:id/stats/modifier", h.adjustModifier)
	characters.POST("/:id/resources", h.adjustResource)
	characters.POST("/:id/resources/reset", h.resetResources)
	characters.GET("/:id/inventory", h.aggregateInventory)
	characters.POST("/:id/inventory", h.addInventory)
	characters.POST("/:id/inventory/remove", h.removeInventory)
	characters.POST("/:id/gold", h.adjustGold)
	characters.POST("/:id/consumables/use", h.useConsumable)

	v1.POST("/rolls", h.roll)
	v1.GET("/rolls/history", h.rollHistory)
	v1.POST("/encounters/:id/initiative", h.rollInitiative)
}

// actorFrom reads the acting player from the request headers
func actorFrom(c *gin.Context) types.Actor {
	return types.Actor{
		PlayerID: c.GetHeader(headerPlayerID),
		Role:     types.Role(c.GetHeader(headerPlayerRole)),
	}
}

// writeError maps an internal error to an HTTP status and JSON body
func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	c.JSON(code.HTTPStatus(), gin.H{
		"code":    string(code),
		"message": errors.GetMessage(err),
	})
}
