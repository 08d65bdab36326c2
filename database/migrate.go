// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"predictplay/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.Game{},
		&models.Question{},
		&models.QuestionTemplate{},
		&models.Guess{},
		&models.GroupStat{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes the hot queries rely on
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_points ON users(total_points DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	// Group indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_groups_code ON groups(code)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_groups_creator_status ON groups(created_by, status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_group_members_user_active ON group_members(user_id, is_active)")

	// Game indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_games_creator_status ON games(created_by, status)")

	// Question indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_questions_game_created ON questions(game_id, created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_questions_game_status ON questions(game_id, status)")

	// Guess indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_guesses_question ON guesses(question_id)")

	// Group stat indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_group_stats_group_points ON group_stats(group_id, total_points DESC)")

	log.Println("✅ Indexes created successfully")
}
