package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"perps-arcade-backend/internal/affiliate"
	"perps-arcade-backend/internal/models"
)

type AffiliateHandler struct {
	service *affiliate.Service
}

func NewAffiliateHandler(service *affiliate.Service) *AffiliateHandler {
	return &AffiliateHandler{service: service}
}

// Register is idempotent: a wallet that is already registered gets its
// existing record back with 200; a fresh wallet gets 201.
func (h *AffiliateHandler) Register(c *gin.Context) {
	var req models.RegisterAffiliateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "walletAddress is required",
			"details": err.Error(),
		})
		return
	}

	rec, created, err := h.service.Register(req.WalletAddress, req.ReferredBy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register affiliate"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, rec)
}

func (h *AffiliateHandler) Stats(c *gin.Context) {
	rec, err := h.service.Stats(c.Param("wallet"))
	if err != nil {
		if errors.Is(err, affiliate.ErrNotRegistered) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *AffiliateHandler) TrackTrade(c *gin.Context) {
	var req models.TrackTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "walletAddress is required",
			"details": err.Error(),
		})
		return
	}

	stats, err := h.service.TrackTrade(req.WalletAddress, req.Volume, req.Fee)
	if err != nil {
		if errors.Is(err, affiliate.ErrNotRegistered) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track trade"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

// Leaderboard is public and unthrottled; the service caches it.
func (h *AffiliateHandler) Leaderboard(c *gin.Context) {
	entries, err := h.service.Leaderboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}

	c.JSON(http.StatusOK, entries)
}
