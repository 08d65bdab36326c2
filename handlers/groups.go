// handlers/groups.go - Group lifecycle endpoints
package handlers

import (
	"strings"

	"predictplay/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateGroup opens a new group for the caller and returns its join code
// POST /api/groups
func CreateGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Group name is required"})
	}
	if len(req.Name) > 100 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Group name must be 100 characters or less"})
	}

	group, err := groupService.CreateGroup(req.Name, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "group": group})
}

// JoinGroup adds the caller to the group behind a 6-digit code
// POST /api/groups/join
func JoinGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	req.Code = strings.TrimSpace(req.Code)
	if len(req.Code) != 6 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Group code must be 6 digits"})
	}

	group, err := groupService.JoinGroup(userID, req.Code)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "group": group})
}

// CloseGroup closes the caller's group and deactivates its members
// POST /api/groups/close
func CloseGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	group, err := groupService.CloseGroup(userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "group": group})
}

// LeaveGroup removes the caller from their current group
// POST /api/groups/leave
func LeaveGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	if err := groupService.LeaveGroup(userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Left group"})
}

// GetMyGroup returns the group the caller is currently an active member of
// GET /api/groups/me
func GetMyGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	group, err := groupService.GetUserGroup(userID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Not in a group"})
	}

	return c.JSON(fiber.Map{"success": true, "group": group})
}

// GetGroupByCode looks up a group without joining it, for join previews
// GET /api/groups/:code
func GetGroupByCode(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	if len(code) != 6 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Group code must be 6 digits"})
	}

	group, err := groupService.GetGroupByCode(code)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Group not found"})
	}

	return c.JSON(fiber.Map{"success": true, "group": group})
}

// SetGroupGame points the caller's group at a game and resets its leaderboard
// PUT /api/groups/game
func SetGroupGame(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req struct {
		GameID uint `json:"game_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.GameID == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "game_id is required"})
	}

	group, err := groupService.SetGroupGame(userID, req.GameID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "group": group})
}

// GetGroupLeaderboard returns the per-game standings of the caller's group
// GET /api/groups/leaderboard
func GetGroupLeaderboard(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	group, err := groupService.GetUserGroup(userID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Not in a group"})
	}

	entries, err := leaderboardService.Group(group.ID, c.QueryInt("limit", 100))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load leaderboard"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"group_id":    group.ID,
		"group_name":  group.Name,
		"leaderboard": entries,
	})
}
