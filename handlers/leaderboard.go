// handlers/leaderboard.go - Global standings endpoints
package handlers

import (
	"predictplay/middleware"
	"predictplay/utils"

	"github.com/gofiber/fiber/v2"
)

// GetGlobalLeaderboard returns the all-time standings across every player
// GET /api/leaderboard
func GetGlobalLeaderboard(c *fiber.Ctx) error {
	entries, err := leaderboardService.Global(c.QueryInt("limit", 100))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load leaderboard"})
	}

	return c.JSON(fiber.Map{"success": true, "leaderboard": entries, "count": len(entries)})
}

// GetMyRank returns the caller's position on the global leaderboard
// GET /api/leaderboard/me
func GetMyRank(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	rank, err := leaderboardService.UserRank(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to compute rank"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"rank":       rank,
		"rank_label": utils.RankLabel(int(rank)),
	})
}
