// models/game.go
package models

import "time"

type GameStatus string

const (
	GameStatusActive GameStatus = "active"
	GameStatusEnded  GameStatus = "ended"
)

// Game is a streamed event a gamemaster runs prediction questions against.
type Game struct {
	ID     uint       `json:"id" gorm:"primaryKey"`
	Name   string     `json:"name" gorm:"not null;size:100"`
	Slug   string     `json:"slug" gorm:"index;size:120"`
	Status GameStatus `json:"status" gorm:"default:'active';index;size:20"`

	CreatedBy uint  `json:"created_by" gorm:"not null;index"`
	Creator   *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`

	// Embedded stream metadata shown alongside the questions.
	StreamURL string `json:"stream_url" gorm:"size:500"`
	VideoID   string `json:"video_id" gorm:"size:100"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

func (Game) TableName() string {
	return "games"
}
