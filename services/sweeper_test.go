package services

import (
	"testing"
	"time"

	"predictplay/models"
)

func TestSweepPurgesOnlyUnattachedGuests(t *testing.T) {
	db := newTestDB(t)
	old := time.Now().Add(-60 * 24 * time.Hour)

	stale := models.User{Username: "stale_guest", IsGuest: true, CreatedAt: old}
	joined := models.User{Username: "joined_guest", IsGuest: true, CreatedAt: old}
	fresh := models.User{Username: "fresh_guest", IsGuest: true}
	for _, u := range []*models.User{&stale, &joined, &fresh} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	group := models.Group{Name: "Crew", Code: "515151", CreatedBy: joined.ID, Status: models.GroupStatusActive}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}
	if err := db.Create(&models.GroupMember{GroupID: group.ID, UserID: joined.ID, IsActive: false}).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}

	s := &Sweeper{db: db, retention: 30 * 24 * time.Hour}
	s.sweep()

	var count int64
	db.Model(&models.User{}).Where("id = ?", stale.ID).Count(&count)
	if count != 0 {
		t.Fatal("stale guest with no memberships should be purged")
	}

	db.Model(&models.User{}).Where("id = ?", joined.ID).Count(&count)
	if count != 1 {
		t.Fatal("guest with a membership row must survive the sweep")
	}

	db.Model(&models.User{}).Where("id = ?", fresh.ID).Count(&count)
	if count != 1 {
		t.Fatal("guest inside the retention window must survive the sweep")
	}
}

func TestSweepPurgesStatsOfLongClosedGroups(t *testing.T) {
	db := newTestDB(t)
	old := time.Now().Add(-60 * 24 * time.Hour)

	closed := models.Group{Name: "Old Crew", Code: "616161", CreatedBy: 1, Status: models.GroupStatusClosed, UpdatedAt: old}
	open := models.Group{Name: "New Crew", Code: "717171", CreatedBy: 2, Status: models.GroupStatusActive}
	for _, g := range []*models.Group{&closed, &open} {
		if err := db.Create(g).Error; err != nil {
			t.Fatalf("seed group: %v", err)
		}
	}
	for _, g := range []*models.Group{&closed, &open} {
		if err := db.Create(&models.GroupStat{GroupID: g.ID, UserID: 1, Username: "someone"}).Error; err != nil {
			t.Fatalf("seed stats: %v", err)
		}
	}

	s := &Sweeper{db: db, retention: 30 * 24 * time.Hour}
	s.sweep()

	var count int64
	db.Model(&models.GroupStat{}).Where("group_id = ?", closed.ID).Count(&count)
	if count != 0 {
		t.Fatal("stats of a long-closed group should be purged")
	}
	db.Model(&models.GroupStat{}).Where("group_id = ?", open.ID).Count(&count)
	if count != 1 {
		t.Fatal("stats of an active group must survive the sweep")
	}
}
