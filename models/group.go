// models/group.go
package models

import "time"

type GroupStatus string

const (
	GroupStatusActive GroupStatus = "active"
	GroupStatusClosed GroupStatus = "closed"
)

type Group struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:100"`

	// 6-digit numeric join code, unique across groups.
	Code string `json:"code" gorm:"uniqueIndex;size:6;not null"`

	CreatedBy uint        `json:"created_by" gorm:"not null;index"`
	Creator   *User       `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Status    GroupStatus `json:"status" gorm:"default:'active';index;size:20"`

	// The game the group is currently watching, if any. Switching games
	// resets the group's leaderboard.
	CurrentGameID   *uint  `json:"current_game_id,omitempty"`
	CurrentGameName string `json:"current_game_name" gorm:"size:100"`
	StreamURL       string `json:"stream_url" gorm:"size:500"`

	Members   []GroupMember `json:"members,omitempty" gorm:"foreignKey:GroupID"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupMember links a user to a group. One row per (group, user); leaving a
// group flips IsActive so a later rejoin reactivates the same row.
type GroupMember struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	GroupID  uint      `json:"group_id" gorm:"not null;uniqueIndex:idx_group_members_group_user"`
	UserID   uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_group_members_group_user;index"`
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	IsActive bool      `json:"is_active" gorm:"default:true;index"`
	JoinedAt time.Time `json:"joined_at"`
}

func (GroupMember) TableName() string {
	return "group_members"
}
