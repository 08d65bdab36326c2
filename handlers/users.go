// handlers/users.go - Profile and stats endpoints
package handlers

import (
	"time"

	"predictplay/database"
	"predictplay/middleware"
	"predictplay/models"
	"predictplay/services"
	"predictplay/utils"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser returns the caller's profile. A profile that somehow has no
// stats yet comes back zeroed; the columns default to 0 on creation.
// GET /api/users/me
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "user": userInfo(user)})
}

// UpdateCurrentUser edits the caller's username and display name
// PUT /api/users/me
func UpdateCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req struct {
		Username    string `json:"username"`
		DisplayName string `json:"display_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.Username == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Username is required"})
	}
	if len(req.Username) < 3 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Username must be at least 3 characters"})
	}

	db := database.GetDB()

	var existing models.User
	if err := db.Where("username = ? AND id != ?", req.Username, userID).First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Username already taken"})
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"username":     req.Username,
		"display_name": req.DisplayName,
		"updated_at":   time.Now(),
	}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Profile updated successfully"})
}

// GetUserStats returns the caller's prediction stats with rank and accuracy
// GET /api/users/stats
func GetUserStats(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		// Missing profile reads as zeroed defaults
		return c.JSON(fiber.Map{
			"success": true,
			"stats": fiber.Map{
				"total_points":        0,
				"games_played":        0,
				"total_predictions":   0,
				"correct_predictions": 0,
				"accuracy":            0,
			},
		})
	}

	rank, _ := leaderboardService.UserRank(userID)

	stats := fiber.Map{
		"total_points":        user.TotalPoints,
		"games_played":        user.GamesPlayed,
		"total_predictions":   user.TotalPredictions,
		"correct_predictions": user.CorrectPredictions,
		"accuracy":            utils.Accuracy(user.CorrectPredictions, user.TotalPredictions),
		"rank":                rank,
		"rank_label":          utils.RankLabel(int(rank)),
	}
	if user.LastPlayed != nil {
		stats["last_played"] = utils.RelativeTime(*user.LastPlayed, time.Now())
	}

	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

// UploadAvatar stores the caller's avatar image and records its URL
// POST /api/users/avatar
func UploadAvatar(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	if !services.StorageReady() {
		return c.Status(503).JSON(fiber.Map{"success": false, "error": "Uploads are not configured"})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Avatar file is required"})
	}

	url, err := services.UploadAvatar(fileHeader, userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to upload avatar"})
	}

	if err := database.GetDB().Model(&models.User{}).Where("id = ?", userID).
		Update("avatar", url).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to save avatar"})
	}

	return c.JSON(fiber.Map{"success": true, "avatar": url})
}
