package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/animarpg/anima-api/internal/dice"
	"github.com/animarpg/anima-api/internal/entities/anima"
	apiv1 "github.com/animarpg/anima-api/internal/handlers/api/v1"
	characterorc "github.com/animarpg/anima-api/internal/orchestrators/character"
	"github.com/animarpg/anima-api/internal/orchestrators/consumable"
	diceorc "github.com/animarpg/anima-api/internal/orchestrators/dice"
	"github.com/animarpg/anima-api/internal/pkg/clock"
	"github.com/animarpg/anima-api/internal/pkg/idgen"
	redisclient "github.com/animarpg/anima-api/internal/redis"
	characterrepo "github.com/animarpg/anima-api/internal/repositories/character"
	"github.com/animarpg/anima-api/internal/repositories/encounter"
	itemrepo "github.com/animarpg/anima-api/internal/repositories/item"
	"github.com/animarpg/anima-api/internal/repositories/rolllog"
	"github.com/animarpg/anima-api/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	client  redisclient.Client
	chars   characterrepo.Repository
	items   itemrepo.Repository
	router  *gin.Engine
	cleanup func()
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	chars, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.chars = chars

	items, err := itemrepo.NewRedisRepository(&itemrepo.Config{Client: s.client})
	s.Require().NoError(err)
	s.items = items

	logs, err := rolllog.NewRedisRepository(&rolllog.Config{
		Client: s.client,
		Clock:  clock.New(),
	})
	s.Require().NoError(err)

	encounters, err := encounter.NewRedisRepository(&encounter.Config{Client: s.client})
	s.Require().NoError(err)

	roller := dice.NewRoller()
	idGen := idgen.NewSequential("id")
	soulDice := anima.ParseSoulDice([]string{"", "d4", "d4", "d6"})

	characterService, err := characterorc.NewOrchestrator(&characterorc.Config{
		CharacterRepo: chars,
		ItemRepo:      items,
		IDGenerator:   idGen,
	})
	s.Require().NoError(err)

	diceService, err := diceorc.NewOrchestrator(&diceorc.Config{
		RollLogRepo:   logs,
		CharacterRepo: chars,
		EncounterRepo: encounters,
		Roller:        roller,
		IDGenerator:   idGen,
		Clock:         clock.New(),
		SoulDice:      soulDice,
	})
	s.Require().NoError(err)

	consumableService, err := consumable.NewOrchestrator(&consumable.Config{
		CharacterRepo: chars,
		ItemRepo:      items,
		RollLogRepo:   logs,
		Roller:        roller,
		IDGenerator:   idGen,
		Clock:         clock.New(),
		SoulDice:      soulDice,
	})
	s.Require().NoError(err)

	handler, err := apiv1.NewHandler(&apiv1.Config{
		CharacterService:  characterService,
		DiceService:       diceService,
		ConsumableService: consumableService,
	})
	s.Require().NoError(err)

	s.router = gin.New()
	handler.RegisterRoutes(s.router)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *HandlerTestSuite) do(method, path, playerID, role string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}
	if role != "" {
		req.Header.Set("X-Player-Role", role)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) seedCharacter(id string) {
	char := testutils.NewTestCharacter(id, "player-1")
	_, err := s.chars.Create(context.Background(), characterrepo.CreateInput{Character: char})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TestCreateAndFetchCharacter() {
	rec := s.do(http.MethodPost, "/v1/characters", "player-1", "", gin.H{
		"name":  "Aria",
		"level": 2,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created anima.Character
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Equal("player-1", created.PlayerID)

	rec = s.do(http.MethodGet, "/v1/characters/"+created.ID, "player-1", "", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestSpendPointFlow() {
	s.seedCharacter("char-1")

	for i := 0; i < 2; i++ {
		rec := s.do(http.MethodPost, "/v1/characters/char-1/stats/spend", "player-1", "", gin.H{
			"group": "base",
			"stat":  "Forza",
		})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}

	// The exhausted ledger maps to 422.
	rec := s.do(http.MethodPost, "/v1/characters/char-1/stats/spend", "player-1", "", gin.H{
		"group": "base",
		"stat":  "Forza",
	})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var errBody map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &errBody))
	s.Equal("INSUFFICIENT_POINTS", errBody["code"])
}

func (s *HandlerTestSuite) TestPermissionMapsToForbidden() {
	s.seedCharacter("char-1")

	rec := s.do(http.MethodPost, "/v1/characters/char-1/gold", "player-2", "", gin.H{"delta": 10})
	s.Equal(http.StatusForbidden, rec.Code)

	// The DM role may adjust anyone.
	rec = s.do(http.MethodPost, "/v1/characters/char-1/gold", "the-dm", "dm", gin.H{"delta": 10})
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *HandlerTestSuite) TestMissingCharacterMapsToNotFound() {
	rec := s.do(http.MethodGet, "/v1/characters/ghost", "player-1", "", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerTestSuite) TestRollAndHistory() {
	rec := s.do(http.MethodPost, "/v1/rolls", "player-1", "", gin.H{
		"notation":    "2d6+1",
		"description": "test roll",
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var rollResp struct {
		Total int   `json:"total"`
		Rolls []int `json:"rolls"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &rollResp))
	s.Len(rollResp.Rolls, 2)
	s.GreaterOrEqual(rollResp.Total, 3)
	s.LessOrEqual(rollResp.Total, 13)

	rec = s.do(http.MethodGet, "/v1/rolls/history", "player-1", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var histResp struct {
		Entries []rolllog.Entry `json:"entries"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &histResp))
	s.Len(histResp.Entries, 1)
}

func (s *HandlerTestSuite) TestRollRejectsBadNotation() {
	rec := s.do(http.MethodPost, "/v1/rolls", "player-1", "", gin.H{"notation": "banana"})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestInitiativeOncePerEncounter() {
	s.seedCharacter("char-1")

	body := gin.H{"characterId": "char-1"}
	rec := s.do(http.MethodPost, "/v1/encounters/enc-1/initiative", "player-1", "", body)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/v1/encounters/enc-1/initiative", "player-1", "", body)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *HandlerTestSuite) TestInventoryRoundTrip() {
	s.seedCharacter("char-1")

	rec := s.do(http.MethodPost, "/v1/characters/char-1/inventory", "player-1", "", gin.H{
		"name": "Corda",
		"type": "varie",
		"qty":  3,
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/v1/characters/char-1/inventory", "player-1", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var aggResp struct {
		Lines []anima.AggregateLine `json:"lines"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &aggResp))
	s.Require().Len(aggResp.Lines, 1)
	s.Equal(3, aggResp.Lines[0].Qty)

	rec = s.do(http.MethodPost, "/v1/characters/char-1/inventory/remove", "player-1", "", gin.H{
		"itemKey": "Corda",
		"count":   1,
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var removeResp struct {
		Removed int `json:"removed"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &removeResp))
	s.Equal(1, removeResp.Removed)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
