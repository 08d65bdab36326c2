// models/guess.go
package models

import "time"

// Guess is a player's single recorded choice for a question. The composite
// unique index is what guarantees one row per (question, player); repeated
// submissions before close upsert onto the same row.
type Guess struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	QuestionID  uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_guesses_question_player"`
	PlayerID    uint      `json:"player_id" gorm:"not null;uniqueIndex:idx_guesses_question_player;index"`
	Player      *User     `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	Prediction  string    `json:"prediction" gorm:"not null;size:500"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (Guess) TableName() string {
	return "guesses"
}
