package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"perps-arcade-backend/internal/sentiment"
)

type SentimentHandler struct {
	service *sentiment.Service
}

func NewSentimentHandler(service *sentiment.Service) *SentimentHandler {
	return &SentimentHandler{service: service}
}

// GetSentiment always answers 200: cache hit, upstream, or fallback.
func (h *SentimentHandler) GetSentiment(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	c.JSON(http.StatusOK, h.service.Sentiment(c.Request.Context(), symbol))
}

func (h *SentimentHandler) GetRealities(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	price, err := strconv.ParseFloat(c.Query("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price query parameter must be a positive number"})
		return
	}

	c.JSON(http.StatusOK, h.service.Realities(c.Request.Context(), symbol, price))
}

func (h *SentimentHandler) GetHashtags(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	c.JSON(http.StatusOK, h.service.Hashtags(c.Request.Context(), symbol))
}
