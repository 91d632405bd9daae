package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bookhaven_back_end/internal/database"
	"bookhaven_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	// Per-endpoint limits
	AccessCodeMaxAttempts = 3
	LoginMaxAttempts      = 5
	APIMaxRequests        = 100 // per minute for general endpoints

	// Cooldown windows
	AccessCodeCooldown = 10 * time.Minute
	LoginCooldown      = 15 * time.Minute
	APICooldown        = 1 * time.Minute
)

// AccessCodeRateLimit caps vault code requests per email. The mailed
// code stays valid for ten minutes, so three sends per window is
// plenty for a legitimate customer.
func AccessCodeRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}

		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Put the body back for the handler
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()
		key := "code_requests:" + models.EmailKey(input.Email)

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= AccessCodeMaxAttempts {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many code requests. Try again later",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		database.Redis.Incr(ctx, key)
		database.Redis.Expire(ctx, key, AccessCodeCooldown)

		c.Next()
	}
}

// AdminLoginRateLimit limits failed admin logins per source IP
func AdminLoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "admin_login_attempts:" + c.ClientIP()

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many failed attempts. Try again in %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		// Count failures only
		if c.Writer.Status() == http.StatusUnauthorized {
			database.Redis.Incr(ctx, key)
			database.Redis.Expire(ctx, key, LoginCooldown)
		} else if c.Writer.Status() == http.StatusOK {
			database.Redis.Del(ctx, key)
		}
	}
}

// APIRateLimit is a coarse per-IP limit for the public endpoints
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "api_requests:" + c.ClientIP()

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Slow down",
			})
			c.Abort()
			return
		}

		database.Redis.Incr(ctx, key)
		database.Redis.Expire(ctx, key, APICooldown)

		c.Next()
	}
}
