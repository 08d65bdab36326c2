// services/group_service.go - Group membership business logic
package services

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"predictplay/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GroupService struct {
	db  *gorm.DB
	hub *Hub
}

func NewGroupService(db *gorm.DB, hub *Hub) *GroupService {
	return &GroupService{db: db, hub: hub}
}

// CreateGroup creates a group with the caller as creator and first member.
// A user may administer at most one active group and belong to at most one
// active group; both are checked inside the transaction.
func (s *GroupService) CreateGroup(name string, creatorID uint) (*models.Group, error) {
	if name == "" {
		return nil, errors.New("group name is required")
	}

	group := &models.Group{
		Name:      name,
		CreatedBy: creatorID,
		Status:    models.GroupStatusActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.Group{}).
			Where("created_by = ? AND status = ?", creatorID, models.GroupStatusActive).
			Count(&count)
		if count > 0 {
			return errors.New("you already have an active group")
		}

		if s.hasActiveMembership(tx, creatorID) {
			return errors.New("you already belong to an active group")
		}

		code, err := generateGroupCode(tx, randomSixDigitCode)
		if err != nil {
			return err
		}
		group.Code = code

		if err := tx.Create(group).Error; err != nil {
			return err
		}

		// Creator is always a member
		member := &models.GroupMember{
			GroupID:  group.ID,
			UserID:   creatorID,
			IsActive: true,
			JoinedAt: time.Now(),
		}
		return tx.Create(member).Error
	})

	if err != nil {
		return nil, err
	}

	return group, nil
}

// JoinGroup adds a user to the active group holding code.
func (s *GroupService) JoinGroup(userID uint, code string) (*models.Group, error) {
	if code == "" {
		return nil, errors.New("group code is required")
	}

	var group models.Group
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("code = ?", code).First(&group).Error; err != nil {
			return notFound("no group found for that code")
		}

		if group.Status != models.GroupStatusActive {
			return errors.New("this group has been closed")
		}

		if group.CreatedBy == userID {
			return errors.New("you cannot join your own group")
		}

		var existing models.GroupMember
		if err := tx.Where("group_id = ? AND user_id = ?", group.ID, userID).
			First(&existing).Error; err == nil && existing.IsActive {
			return errors.New("already a member of this group")
		}

		if s.hasActiveMembership(tx, userID) {
			return errors.New("you already belong to an active group")
		}

		// Rejoining after a leave reactivates the original row
		member := &models.GroupMember{
			GroupID:  group.ID,
			UserID:   userID,
			IsActive: true,
			JoinedAt: time.Now(),
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"is_active": true,
				"joined_at": time.Now(),
			}),
		}).Create(member).Error
	})

	if err != nil {
		return nil, err
	}

	s.hub.Publish(GroupTopic(group.ID), "member_joined", publicUserPayload(s.db, userID))
	return &group, nil
}

// CloseGroup closes the caller's active group and deactivates every
// membership. Only the creator may close.
func (s *GroupService) CloseGroup(userID uint) (*models.Group, error) {
	var group models.Group
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("created_by = ? AND status = ?", userID, models.GroupStatusActive).
			First(&group).Error; err != nil {
			return errors.New("you have no active group to close")
		}

		if err := tx.Model(&models.Group{}).Where("id = ?", group.ID).
			Updates(map[string]interface{}{
				"status":     models.GroupStatusClosed,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.GroupMember{}).Where("group_id = ?", group.ID).
			Update("is_active", false).Error
	})

	if err != nil {
		return nil, err
	}

	group.Status = models.GroupStatusClosed
	s.hub.Publish(GroupTopic(group.ID), "group_closed", nil)
	return &group, nil
}

// LeaveGroup deactivates the caller's active membership. The creator cannot
// leave; they close the group instead.
func (s *GroupService) LeaveGroup(userID uint) error {
	var member models.GroupMember
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		First(&member).Error; err != nil {
		return errors.New("you are not in an active group")
	}

	var group models.Group
	if err := s.db.First(&group, member.GroupID).Error; err == nil && group.CreatedBy == userID {
		return forbidden("the group creator must close the group instead of leaving it")
	}

	if err := s.db.Model(&member).Update("is_active", false).Error; err != nil {
		return err
	}

	s.hub.Publish(GroupTopic(member.GroupID), "member_left", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

// SetGroupGame points the group at a game and resets its leaderboard. The
// stats wipe and the game switch commit together.
func (s *GroupService) SetGroupGame(userID, gameID uint) (*models.Group, error) {
	var group models.Group
	var game models.Game

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("created_by = ? AND status = ?", userID, models.GroupStatusActive).
			First(&group).Error; err != nil {
			return errors.New("you have no active group")
		}

		if err := tx.First(&game, gameID).Error; err != nil {
			return notFound("game not found")
		}
		if game.Status != models.GameStatusActive {
			return errors.New("that game has ended")
		}

		if err := tx.Model(&models.Group{}).Where("id = ?", group.ID).
			Updates(map[string]interface{}{
				"current_game_id":   game.ID,
				"current_game_name": game.Name,
				"stream_url":        game.StreamURL,
				"updated_at":        time.Now(),
			}).Error; err != nil {
			return err
		}

		// New game, fresh leaderboard
		return tx.Where("group_id = ?", group.ID).Delete(&models.GroupStat{}).Error
	})

	if err != nil {
		return nil, err
	}

	group.CurrentGameID = &game.ID
	group.CurrentGameName = game.Name
	group.StreamURL = game.StreamURL

	s.hub.Publish(GroupTopic(group.ID), "game_selected", map[string]interface{}{
		"game_id":   game.ID,
		"game_name": game.Name,
	})
	return &group, nil
}

// GetGroupByCode returns an active group with members preloaded.
func (s *GroupService) GetGroupByCode(code string) (*models.Group, error) {
	var group models.Group
	err := s.db.Where("code = ? AND status = ?", code, models.GroupStatusActive).
		Preload("Members", "is_active = ?", true).
		Preload("Members.User").
		First(&group).Error
	if err != nil {
		return nil, notFound("no group found for that code")
	}
	return &group, nil
}

// GetUserGroup returns the active group the user belongs to, if any.
func (s *GroupService) GetUserGroup(userID uint) (*models.Group, error) {
	var member models.GroupMember
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		First(&member).Error; err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var group models.Group
	err := s.db.Where("id = ? AND status = ?", member.GroupID, models.GroupStatusActive).
		Preload("Members", "is_active = ?", true).
		Preload("Members.User").
		First(&group).Error
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &group, nil
}

// ActiveGroupID returns the id of the user's active group, or 0.
func (s *GroupService) ActiveGroupID(userID uint) uint {
	var member models.GroupMember
	if err := s.db.Joins("JOIN groups ON groups.id = group_members.group_id").
		Where("group_members.user_id = ? AND group_members.is_active = ? AND groups.status = ?",
			userID, true, models.GroupStatusActive).
		First(&member).Error; err != nil {
		return 0
	}
	return member.GroupID
}

func (s *GroupService) hasActiveMembership(tx *gorm.DB, userID uint) bool {
	var count int64
	tx.Model(&models.GroupMember{}).
		Joins("JOIN groups ON groups.id = group_members.group_id").
		Where("group_members.user_id = ? AND group_members.is_active = ? AND groups.status = ?",
			userID, true, models.GroupStatusActive).
		Count(&count)
	return count > 0
}

// generateGroupCode produces a 6-digit numeric code not held by any existing
// group, drawing candidates from next and retrying on collision.
func generateGroupCode(tx *gorm.DB, next func() (string, error)) (string, error) {
	for attempt := 0; attempt < 20; attempt++ {
		code, err := next()
		if err != nil {
			return "", err
		}

		var count int64
		tx.Model(&models.Group{}).Where("code = ?", code).Count(&count)
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a group code, try again")
}

func randomSixDigitCode() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint64(buf[:]) % 900000
	return fmt.Sprintf("%06d", 100000+n), nil
}

// publicUserPayload loads the public fields of a user for event payloads.
func publicUserPayload(db *gorm.DB, userID uint) map[string]interface{} {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return map[string]interface{}{"user_id": userID}
	}
	return map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"avatar":   user.Avatar,
	}
}
