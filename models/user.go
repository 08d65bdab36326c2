// models/user.go
package models

import (
	"time"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	Avatar      string  `json:"avatar"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`

	// A gamemaster may create games, questions and answers.
	IsGamemaster bool `gorm:"default:false" json:"is_gamemaster"`

	// Global prediction stats. Group play is isolated into GroupStat rows
	// and never touches these counters.
	TotalPoints        int        `gorm:"default:0" json:"total_points"`
	GamesPlayed        int        `gorm:"default:0" json:"games_played"`
	CorrectPredictions int        `gorm:"default:0" json:"correct_predictions"`
	TotalPredictions   int        `gorm:"default:0" json:"total_predictions"`
	LastPlayed         *time.Time `json:"last_played,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`
}
