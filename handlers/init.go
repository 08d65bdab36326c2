// handlers/init.go - Service wiring for the HTTP layer
package handlers

import (
	"predictplay/database"
	"predictplay/services"
)

var (
	groupService       *services.GroupService
	gameService        *services.GameService
	predictionService  *services.PredictionService
	leaderboardService *services.LeaderboardService
)

// InitHandlers builds the service layer. Must run after InitDB/InitRedis.
func InitHandlers() {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before InitHandlers")
	}

	hub := services.GetHub()
	predictionService = services.NewPredictionService(db, hub)
	groupService = services.NewGroupService(db, hub)
	gameService = services.NewGameService(db, hub, predictionService)
	leaderboardService = services.NewLeaderboardService(db, database.GetRedis())
}
