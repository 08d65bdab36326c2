// handlers/games.go - Game lifecycle endpoints (gamemaster only except reads)
package handlers

import (
	"strings"

	"predictplay/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateGame starts a new game run by the caller
// POST /api/games
func CreateGame(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req struct {
		Name      string `json:"name"`
		StreamURL string `json:"stream_url"`
		VideoID   string `json:"video_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Game name is required"})
	}
	if len(req.Name) > 100 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Game name must be 100 characters or less"})
	}

	game, err := gameService.CreateGame(userID, req.Name, req.StreamURL, req.VideoID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "game": game})
}

// EndGame ends a game the caller runs
// POST /api/games/:id/end
func EndGame(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	gameID, err := c.ParamsInt("id")
	if err != nil || gameID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid game ID"})
	}

	game, err := gameService.EndGame(userID, uint(gameID))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "game": game})
}

// GetGame returns a single game
// GET /api/games/:id
func GetGame(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid game ID"})
	}

	game, err := gameService.GetGame(uint(gameID))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Game not found"})
	}

	return c.JSON(fiber.Map{"success": true, "game": game})
}

// ListActiveGames returns games open for groups to pick, newest first
// GET /api/games
func ListActiveGames(c *fiber.Ctx) error {
	games, err := gameService.ActiveGames(c.QueryInt("limit", 50))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load games"})
	}

	return c.JSON(fiber.Map{"success": true, "games": games, "count": len(games)})
}

// ListQuestionTemplates returns reusable question templates, optionally filtered
// GET /api/games/templates?category=...
func ListQuestionTemplates(c *fiber.Ctx) error {
	templates, err := gameService.ListTemplates(c.Query("category"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load templates"})
	}

	return c.JSON(fiber.Map{"success": true, "templates": templates, "count": len(templates)})
}
