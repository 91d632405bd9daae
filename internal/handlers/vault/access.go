package vault

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"math/big"
	"net/http"

	"bookhaven_back_end/internal/cache"
	"bookhaven_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestAccessCode mails a 6-digit one-time code to an email, but
// only if that email has at least one settled order. The response
// leaks nothing beyond that boolean.
func RequestAccessCode(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	owns, err := HasSettledOrders(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !owns {
		c.JSON(http.StatusNotFound, gin.H{"error": "No purchase found for this email"})
		return
	}

	code, err := generateAccessCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Code generation error"})
		return
	}

	// Upsert: a reissue replaces any prior live code and resets its clock
	if _, err := cache.StoreAccessCode(req.Email, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Code storage error"})
		return
	}

	if err := utils.SendAccessCodeEmail(req.Email, code); err != nil {
		log.Printf("❌ Access code delivery error for %s: %v", req.Email, err)
		// Undelivered codes are useless, drop the record
		cache.ConsumeAccessCode(req.Email)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not send the code, try again"})
		return
	}

	log.Printf("🔑 Access code sent to %s", req.Email)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UnlockVault opens the library with either a fresh code or a stored
// session token. A code exchange issues a new 30-day token; both paths
// return the vault contents in the same response so the client skips a
// second round-trip.
func UnlockVault(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
		Token string `json:"token"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	// --- Resume path: stored device token ---
	if req.Token != "" {
		session, err := cache.GetVaultSession(req.Email, req.Token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Session lookup error"})
			return
		}
		if session == nil {
			// Stale or forged: the client must drop the credential and
			// fall back to a fresh code request
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		respondWithVault(c, req.Email, req.Token)
		return
	}

	// --- Code path ---
	if req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code or token is required"})
		return
	}

	record, err := cache.GetAccessCode(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Code lookup error"})
		return
	}
	// One generic refusal for missing, expired and wrong codes alike
	if record == nil || record.Code != req.Code {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid code"})
		return
	}

	// Single use: the code dies on successful verification
	cache.ConsumeAccessCode(req.Email)

	token, err := generateSessionToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation error"})
		return
	}

	if _, err := cache.StoreVaultSession(req.Email, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session storage error"})
		return
	}

	log.Printf("🔓 Vault unlocked for %s", req.Email)
	respondWithVault(c, req.Email, token)
}

// LockVault revokes a device session token
func LockVault(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	cache.DeleteVaultSession(req.Token)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondWithVault(c *gin.Context, email, token string) {
	books, err := ResolveVault(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Vault resolution error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books": books,
		"token": token,
	})
}

// generateAccessCode draws a uniformly random 6-digit code
func generateAccessCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// generateSessionToken draws an opaque 256-bit token
func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
