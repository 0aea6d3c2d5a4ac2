package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/gapgenie/gapgenie-back/internal/config"
	"github.com/gapgenie/gapgenie-back/internal/db"
	"github.com/gapgenie/gapgenie-back/internal/models"
)

var googleOauthConfig *oauth2.Config

func InitGoogle(cfg *config.Config) {
	googleOauthConfig = &oauth2.Config{
		RedirectURL:  "http://localhost:" + cfg.Port + "/auth/google/callback",
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleSecret,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleLoginHandler godoc
// @Summary      Login with Google
// @Description  Redirects to the Google consent screen
// @Tags         auth
// @Success      307
// @Router       /auth/google/login [get]
func GoogleLoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		url := googleOauthConfig.AuthCodeURL("state")
		c.Redirect(http.StatusTemporaryRedirect, url)
	}
}

// GoogleCallbackHandler godoc
// @Summary      Google OAuth callback
// @Description  Exchanges the code, stores the user and returns JWT tokens
// @Tags         auth
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Router       /auth/google/callback [get]
func GoogleCallbackHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		token, err := googleOauthConfig.Exchange(context.Background(), code)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to exchange token"})
			return
		}

		// Fetch user info
		resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to get user info"})
			return
		}
		defer resp.Body.Close()

		var userInfo struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse user info"})
			return
		}

		u := models.User{
			Email:        userInfo.Email,
			FullName:     userInfo.Name,
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			TokenType:    token.TokenType,
			Expiry:       token.Expiry,
		}
		if err := db.SaveOrUpdateUser(context.Background(), u); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user"})
			return
		}

		access, refresh, err := IssueTokens(cfg, u.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
			return
		}

		c.JSON(200, gin.H{
			"access_token":  access,
			"refresh_token": refresh,
			"email":         u.Email,
		})
	}
}
