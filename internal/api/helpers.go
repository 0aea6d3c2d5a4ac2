package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gapgenie/gapgenie-back/internal/db"
	"github.com/gapgenie/gapgenie-back/internal/models"
)

// currentUser resolves the authenticated user from the email the auth
// middleware attached. Writes the error response itself when it fails.
func currentUser(c *gin.Context) (*models.User, bool) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}

	user, err := db.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		}
		return nil, false
	}

	return user, true
}

// notFoundOr500 maps db.ErrNotFound to 404, everything else to 500.
func notFoundOr500(c *gin.Context, err error, msg string) {
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
