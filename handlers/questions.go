// handlers/questions.go - Question broadcast and resolution endpoints
package handlers

import (
	"strings"

	"predictplay/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateQuestion broadcasts a new prediction question on a game. Any other
// question the caller still has open on that game gets closed first.
// POST /api/questions
func CreateQuestion(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req struct {
		GameID     uint     `json:"game_id"`
		TemplateID uint     `json:"template_id"`
		Text       string   `json:"text"`
		Options    []string `json:"options"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.GameID == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "game_id is required"})
	}

	if req.TemplateID != 0 {
		question, err := gameService.CreateQuestionFromTemplate(userID, req.GameID, req.TemplateID)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(201).JSON(fiber.Map{"success": true, "question": question})
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Question text is required"})
	}
	if len(req.Options) < 2 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "At least 2 options are required"})
	}

	question, err := gameService.CreateQuestion(userID, req.GameID, req.Text, req.Options)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "question": question})
}

// CloseQuestion stops further guesses on a question without resolving it
// POST /api/questions/:id/close
func CloseQuestion(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	questionID, err := c.ParamsInt("id")
	if err != nil || questionID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid question ID"})
	}

	question, err := gameService.CloseQuestion(userID, uint(questionID))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "question": question})
}

// SetAnswer resolves a question with its actual outcome and scores all guesses
// POST /api/questions/:id/answer
func SetAnswer(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	questionID, err := c.ParamsInt("id")
	if err != nil || questionID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid question ID"})
	}

	var req struct {
		Answer string `json:"answer"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	req.Answer = strings.TrimSpace(req.Answer)
	if req.Answer == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Answer is required"})
	}

	question, summary, err := gameService.SetAnswer(userID, uint(questionID), req.Answer)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Scores just moved, cached standings are stale
	leaderboardService.Invalidate()

	return c.JSON(fiber.Map{"success": true, "question": question, "summary": summary})
}

// GetCurrentQuestion returns the latest question on a game, whatever its status
// GET /api/games/:id/question
func GetCurrentQuestion(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid game ID"})
	}

	question, err := gameService.CurrentQuestion(uint(gameID))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "No question on this game"})
	}

	return c.JSON(fiber.Map{"success": true, "question": question})
}
