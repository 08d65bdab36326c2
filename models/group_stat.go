// models/group_stat.go
package models

import "time"

// GroupStat is one leaderboard row for a member of a group. Rows are created
// and bumped by the scoring pass and bulk-deleted when the group's admin
// switches the group to a new game.
type GroupStat struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	GroupID  uint   `json:"group_id" gorm:"not null;uniqueIndex:idx_group_stats_group_user"`
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_group_stats_group_user;index"`
	Username string `json:"username" gorm:"size:100"`

	TotalPredictions   int `json:"total_predictions" gorm:"default:0"`
	CorrectPredictions int `json:"correct_predictions" gorm:"default:0"`
	TotalPoints        int `json:"total_points" gorm:"default:0"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (GroupStat) TableName() string {
	return "group_stats"
}
