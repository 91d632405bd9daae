package admin

import (
	"log"
	"net/http"
	"os"

	"bookhaven_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// Login authenticates the dashboard admin. Credentials live in env:
// ADMIN_EMAIL plus an Argon2id ADMIN_PASSWORD_HASH produced with the
// hashadmin tool.
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")

	if adminEmail == "" || adminHash == "" {
		log.Println("⚠️ Admin credentials not configured")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	ok, err := utils.VerifyPassword(req.Password, adminHash)
	if err != nil || !ok || req.Email != adminEmail {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateAdminJWT(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation error"})
		return
	}

	log.Printf("🔐 Admin login: %s", req.Email)
	c.JSON(http.StatusOK, gin.H{"token": token})
}
