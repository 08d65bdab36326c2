package services

import (
	"testing"

	"predictplay/models"

	"gorm.io/gorm"
)

func TestPartitionGuessesBuckets(t *testing.T) {
	guesses := []models.Guess{
		{QuestionID: 1, PlayerID: 10, Prediction: "MADE"},
		{QuestionID: 1, PlayerID: 11, Prediction: "MISSED"},
		{QuestionID: 1, PlayerID: 12, Prediction: "MADE"},
	}
	groupOf := map[uint]uint{12: 5} // player 12 plays in group 5

	outcomes, summary := partitionGuesses(1, "MADE", guesses, groupOf)

	if summary.Total != 3 || summary.Winners != 2 {
		t.Fatalf("summary = %+v, want total 3 winners 2", summary)
	}
	if summary.SoloPlayers != 2 || summary.GroupPlayers != 1 {
		t.Fatalf("summary = %+v, want 2 solo / 1 group", summary)
	}
	if summary.Accuracy != 67 {
		t.Fatalf("accuracy = %d, want 67", summary.Accuracy)
	}

	for _, o := range outcomes {
		if o.PlayerID == 12 && o.GroupID != 5 {
			t.Fatalf("player 12 should score into group 5, got %d", o.GroupID)
		}
		if o.PlayerID != 12 && o.GroupID != 0 {
			t.Fatalf("player %d should score solo", o.PlayerID)
		}
	}
}

func TestPartitionGuessesEveryGuesserInExactlyOneBucket(t *testing.T) {
	guesses := []models.Guess{
		{PlayerID: 1, Prediction: "A"},
		{PlayerID: 2, Prediction: "B"},
		{PlayerID: 3, Prediction: "A"},
		{PlayerID: 4, Prediction: "C"},
		{PlayerID: 5, Prediction: "A"},
	}
	groupOf := map[uint]uint{2: 9, 4: 9}

	outcomes, summary := partitionGuesses(7, "A", guesses, groupOf)

	if len(outcomes) != summary.Total {
		t.Fatalf("outcomes %d != total %d", len(outcomes), summary.Total)
	}
	if summary.SoloPlayers+summary.GroupPlayers != summary.Total {
		t.Fatalf("solo %d + group %d != total %d",
			summary.SoloPlayers, summary.GroupPlayers, summary.Total)
	}
	if summary.Winners > summary.Total {
		t.Fatalf("winners %d > total %d", summary.Winners, summary.Total)
	}
	losers := summary.Total - summary.Winners
	if summary.Winners+losers != summary.Total {
		t.Fatalf("winner/loser split inconsistent: %+v", summary)
	}
}

func TestPartitionGuessesEmpty(t *testing.T) {
	outcomes, summary := partitionGuesses(3, "A", nil, nil)
	if len(outcomes) != 0 {
		t.Fatalf("expected no outcomes, got %d", len(outcomes))
	}
	if summary.Total != 0 || summary.Winners != 0 || summary.Accuracy != 0 {
		t.Fatalf("expected zeroed summary, got %+v", summary)
	}
}

func TestPartitionGuessesScenario(t *testing.T) {
	// Admin posts MADE/MISSED, two solo players answer, answer is MADE.
	guesses := []models.Guess{
		{PlayerID: 1, Prediction: "MADE"},
		{PlayerID: 2, Prediction: "MISSED"},
	}

	_, summary := partitionGuesses(1, "MADE", guesses, nil)

	if summary.Winners != 1 || summary.Total != 2 || summary.Accuracy != 50 {
		t.Fatalf("summary = %+v, want winners 1, total 2, accuracy 50", summary)
	}
}

func TestRandomSixDigitCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		code, err := randomSixDigitCode()
		if err != nil {
			t.Fatalf("code generation failed: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit %q", code, r)
			}
		}
		if code[0] == '0' {
			t.Fatalf("code %q has a leading zero", code)
		}
		seen[code] = true
	}
	// 500 draws from 900k values colliding down to a handful would mean a
	// broken generator
	if len(seen) < 450 {
		t.Fatalf("too many collisions: %d unique of 500", len(seen))
	}
}

func TestSubmitPredictionUpsertsSingleRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewPredictionService(db, NewHub())

	player := models.User{Username: "player"}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	game := models.Game{Name: "Friday Night", Status: models.GameStatusActive, CreatedBy: 99}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("seed game: %v", err)
	}
	question := models.Question{
		GameID: game.ID, Text: "Will they score?",
		Status: models.QuestionStatusActive, CreatedBy: 99,
	}
	if err := question.SetOptions([]string{"Yes", "No"}); err != nil {
		t.Fatalf("set options: %v", err)
	}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}

	if _, err := svc.SubmitPrediction(player.ID, question.ID, "Yes"); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if _, err := svc.SubmitPrediction(player.ID, question.ID, "No"); err != nil {
		t.Fatalf("second submission failed: %v", err)
	}

	var count int64
	db.Model(&models.Guess{}).
		Where("question_id = ? AND player_id = ?", question.ID, player.ID).
		Count(&count)
	if count != 1 {
		t.Fatalf("guess rows = %d, want exactly one", count)
	}

	guess, err := svc.GetGuess(player.ID, question.ID)
	if err != nil {
		t.Fatalf("GetGuess failed: %v", err)
	}
	if guess.Prediction != "No" {
		t.Fatalf("prediction = %q, want the later submission to win", guess.Prediction)
	}

	var reloaded models.User
	if err := db.First(&reloaded, player.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.GamesPlayed != 1 {
		t.Fatalf("games_played = %d, want 1 for a resubmission on the same game", reloaded.GamesPlayed)
	}
}

func TestScoringCollectsPerPlayerFailures(t *testing.T) {
	db := newTestDB(t)
	svc := NewPredictionService(db, NewHub())

	solo := models.User{Username: "solo"}
	grouped := models.User{Username: "grouped"}
	for _, u := range []*models.User{&solo, &grouped} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	group := models.Group{Name: "Crew", Code: "424242", CreatedBy: grouped.ID, Status: models.GroupStatusActive}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}
	if err := db.Create(&models.GroupMember{GroupID: group.ID, UserID: grouped.ID, IsActive: true}).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}

	question := models.Question{GameID: 1, Text: "Will they score?", Status: models.QuestionStatusClosed, CreatedBy: 99}
	if err := question.SetOptions([]string{"Yes", "No"}); err != nil {
		t.Fatalf("set options: %v", err)
	}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	for _, id := range []uint{solo.ID, grouped.ID} {
		if err := db.Create(&models.Guess{QuestionID: question.ID, PlayerID: id, Prediction: "Yes"}).Error; err != nil {
			t.Fatalf("seed guess: %v", err)
		}
	}

	// Breaking the group stats table makes the grouped player's bump fail
	// while the solo player's must still commit.
	if err := db.Exec("DROP TABLE group_stats").Error; err != nil {
		t.Fatalf("drop table: %v", err)
	}

	var summary *ScoreSummary
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		summary, err = svc.scoreQuestionTx(tx, question.ID, "Yes")
		return err
	})
	if err != nil {
		t.Fatalf("scoring pass failed: %v", err)
	}

	if len(summary.FailedPlayerIDs) != 1 || summary.FailedPlayerIDs[0] != grouped.ID {
		t.Fatalf("failed players = %v, want just the grouped player", summary.FailedPlayerIDs)
	}
	if summary.Winners != 2 || summary.Total != 2 {
		t.Fatalf("summary = %+v, want both guesses counted", summary)
	}

	var reloaded models.User
	if err := db.First(&reloaded, solo.ID).Error; err != nil {
		t.Fatalf("reload solo user: %v", err)
	}
	if reloaded.TotalPoints != pointsPerCorrectPrediction || reloaded.CorrectPredictions != 1 {
		t.Fatalf("solo stats = %d pts / %d correct, want the bump to survive", reloaded.TotalPoints, reloaded.CorrectPredictions)
	}
}
