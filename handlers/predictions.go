// handlers/predictions.go - Guess submission endpoints
package handlers

import (
	"strings"

	"predictplay/middleware"

	"github.com/gofiber/fiber/v2"
)

// SubmitPrediction records or replaces the caller's guess on an open question
// POST /api/predictions
func SubmitPrediction(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req struct {
		QuestionID uint   `json:"question_id"`
		Prediction string `json:"prediction"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.QuestionID == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "question_id is required"})
	}
	req.Prediction = strings.TrimSpace(req.Prediction)
	if req.Prediction == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Prediction is required"})
	}

	guess, err := predictionService.SubmitPrediction(userID, req.QuestionID, req.Prediction)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "guess": guess})
}

// GetMyGuess returns the caller's guess on a question, if any
// GET /api/predictions/:questionId
func GetMyGuess(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	questionID, err := c.ParamsInt("questionId")
	if err != nil || questionID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid question ID"})
	}

	guess, err := predictionService.GetGuess(userID, uint(questionID))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "No guess on this question"})
	}

	return c.JSON(fiber.Map{"success": true, "guess": guess})
}
