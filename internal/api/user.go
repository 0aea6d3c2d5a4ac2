package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gapgenie/gapgenie-back/internal/db"
)

// UserProfileResponse is a safe version of User for API responses
type UserProfileResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	College  string `json:"college"`
	Year     int    `json:"year"`
	Branch   string `json:"branch"`
}

// UpdateProfileRequest is the request body for updating the profile
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	College  string `json:"college"`
	Year     int    `json:"year"`
	Branch   string `json:"branch"`
}

// GetMe godoc
// @Summary      Get current user profile
// @Tags         user
// @Produce      json
// @Success      200 {object} UserProfileResponse
// @Failure      401 {object} map[string]string
// @Security     BearerAuth
// @Router       /user/me [get]
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(200, UserProfileResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Phone:    user.Phone,
		College:  user.College,
		Year:     user.Year,
		Branch:   user.Branch,
	})
}

// UpdateProfile godoc
// @Summary      Update profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  UpdateProfileRequest  true  "Profile fields"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /user/profile [put]
func UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := map[string]interface{}{
		"full_name": req.FullName,
		"phone":     req.Phone,
		"college":   req.College,
		"year":      req.Year,
		"branch":    req.Branch,
	}
	if err := db.UpdateUserProfile(c.Request.Context(), user.Email, updates); err != nil {
		notFoundOr500(c, err, "Failed to update profile")
		return
	}

	c.JSON(200, gin.H{"message": "Profile updated"})
}
