package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"perps-arcade-backend/internal/services"
)

// WalletHeader carries the caller's identity. There is no auth; the
// header scopes demo balances and rate limits, nothing more.
const WalletHeader = "X-Wallet-Address"

// AnonIdentifier buckets callers that send no wallet header. They
// share one (stricter) rate limit.
const AnonIdentifier = "anon"

func WalletIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.GetHeader(WalletHeader)
		if wallet == "" {
			wallet = AnonIdentifier
		}
		c.Set("wallet", wallet)
		c.Next()
	}
}

func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+WalletHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RateLimit enforces a fixed-window per-wallet limit for one route
// family. Anonymous callers get the stricter anonMax.
func RateLimit(redis *services.RedisService, scope string, identifiedMax, anonMax int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.GetString("wallet")

		max := identifiedMax
		if wallet == AnonIdentifier {
			max = anonMax
		}

		res, err := redis.CheckRateLimit(scope+":"+wallet, max, window)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
			c.Abort()
			return
		}
		if !res.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Next()
	}
}
