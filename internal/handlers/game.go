package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"perps-arcade-backend/internal/fair"
	"perps-arcade-backend/internal/games"
	"perps-arcade-backend/internal/middleware"
	"perps-arcade-backend/internal/models"
	"perps-arcade-backend/internal/services"
	"perps-arcade-backend/pkg/logger"
)

type GameHandler struct {
	redis *services.RedisService
	feed  *GameFeed
	mode  string
}

func NewGameHandler(redis *services.RedisService, feed *GameFeed, mode string) *GameHandler {
	return &GameHandler{redis: redis, feed: feed, mode: mode}
}

// adapterFor binds a game adapter to the caller's wallet. In on-chain
// mode every wallet gets the not-yet-deployed stub.
func (h *GameHandler) adapterFor(wallet string) games.Adapter {
	if h.mode == "onchain" {
		return games.NewOnChainAdapter()
	}
	return games.NewLocalAdapter(h.redis.StateStore(wallet))
}

func (h *GameHandler) requireWallet(c *gin.Context) (string, bool) {
	wallet := c.GetString("wallet")
	if wallet == middleware.AnonIdentifier {
		c.JSON(http.StatusBadRequest, gin.H{"error": middleware.WalletHeader + " header required"})
		return "", false
	}
	return wallet, true
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	wallet, ok := h.requireWallet(c)
	if !ok {
		return
	}

	var req models.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.adapterFor(wallet).CreateGame(req.Type, req.Wager, wallet, req.EntryPrice)
	if err != nil {
		h.gameError(c, err, "Failed to create game")
		return
	}

	h.feed.BroadcastGameCreated(game)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"game":    game,
	})
}

func (h *GameHandler) JoinGame(c *gin.Context) {
	wallet, ok := h.requireWallet(c)
	if !ok {
		return
	}

	result, err := h.adapterFor(wallet).JoinGame(c.Param("id"), wallet)
	if err != nil {
		h.gameError(c, err, "Failed to join game")
		return
	}

	// the adapter settled the joiner's side; the creator's winnings or
	// tie refund are credited here
	if result.CreatorPayout > 0 {
		if err := h.redis.CreditWallet(result.Game.CreatorID, result.CreatorPayout); err != nil {
			logger.Error("failed to credit creator ", result.Game.CreatorID, ": ", err)
		}
	}

	h.feed.BroadcastGameSettled(result.Game)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) CancelGame(c *gin.Context) {
	wallet, ok := h.requireWallet(c)
	if !ok {
		return
	}

	adapter := h.adapterFor(wallet)

	// the refund lands on the canceller's wallet, so only the creator
	// may cancel
	list, err := adapter.Games()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load games"})
		return
	}
	for _, g := range list {
		if g.ID == c.Param("id") && g.CreatorID != wallet {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator can cancel a game"})
			return
		}
	}

	game, err := adapter.CancelGame(c.Param("id"))
	if err != nil {
		h.gameError(c, err, "Failed to cancel game")
		return
	}

	h.feed.BroadcastGameCancelled(game)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    game,
	})
}

func (h *GameHandler) ListGames(c *gin.Context) {
	list, err := h.adapterFor(c.GetString("wallet")).Games()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load games"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"games":   list,
		"count":   len(list),
	})
}

// VerifyGame recomputes an outcome from its seed so anyone can audit a
// settled game. Query parameters mirror the outcome payload for the
// game type.
func (h *GameHandler) VerifyGame(c *gin.Context) {
	seed := c.Query("seed")
	gameType := models.GameType(c.Query("type"))
	if seed == "" || gameType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seed and type query parameters required"})
		return
	}

	claimed, err := outcomeFromQuery(c, gameType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"seed":  seed,
		"type":  gameType,
		"valid": games.VerifyGameResult(seed, gameType, claimed),
	})
}

func outcomeFromQuery(c *gin.Context, gameType models.GameType) (models.Outcome, error) {
	out := models.Outcome{Type: gameType}

	switch gameType {
	case models.GameTypeDice:
		creator, err1 := strconv.Atoi(c.Query("creator_roll"))
		opponent, err2 := strconv.Atoi(c.Query("opponent_roll"))
		if err1 != nil || err2 != nil {
			return out, errors.New("creator_roll and opponent_roll query parameters required")
		}
		out.Dice = &models.DiceOutcome{CreatorRoll: creator, OpponentRoll: opponent}
	case models.GameTypeCoinFlip:
		side := fair.CoinSide(c.Query("side"))
		if side != fair.CoinHeads && side != fair.CoinTails {
			return out, errors.New("side query parameter must be heads or tails")
		}
		out.Coin = &models.CoinOutcome{Side: side}
	case models.GameTypePricePrediction:
		predicted, err1 := strconv.ParseFloat(c.Query("predicted"), 64)
		actual, err2 := strconv.ParseFloat(c.Query("actual"), 64)
		if err1 != nil || err2 != nil {
			return out, errors.New("predicted and actual query parameters required")
		}
		out.Price = &models.PriceOutcome{Predicted: predicted, Actual: actual}
	}

	return out, nil
}

func (h *GameHandler) gameError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, games.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
	case errors.Is(err, games.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
	case errors.Is(err, games.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, games.ErrNotDeployed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, ": ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// GetBalance reports the caller's demo wallet, creating it on first
// sight.
func (h *GameHandler) GetBalance(c *gin.Context) {
	wallet, ok := h.requireWallet(c)
	if !ok {
		return
	}

	w, err := h.redis.GetWallet(wallet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"balance": gin.H{
			"address":       w.Address,
			"balance":       w.Balance,
			"total_wagered": w.TotalWagered,
			"total_won":     w.TotalWon,
		},
	})
}
