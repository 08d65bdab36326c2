package services

import (
	"errors"
	"testing"

	"predictplay/models"

	"gorm.io/gorm"
)

func newGameServiceForTest(t *testing.T) (*GameService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewGameService(db, NewHub(), NewPredictionService(db, NewHub())), db
}

func seedGameWithQuestion(t *testing.T, db *gorm.DB, creatorID uint) (models.Game, models.Question) {
	t.Helper()

	game := models.Game{Name: "Friday Night", Status: models.GameStatusActive, CreatedBy: creatorID}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("seed game: %v", err)
	}

	question := models.Question{
		GameID:    game.ID,
		Text:      "Will they score?",
		Status:    models.QuestionStatusActive,
		CreatedBy: creatorID,
	}
	if err := question.SetOptions([]string{"Yes", "No"}); err != nil {
		t.Fatalf("set options: %v", err)
	}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return game, question
}

func TestEndGameRejectsNonCreator(t *testing.T) {
	svc, db := newGameServiceForTest(t)
	game, _ := seedGameWithQuestion(t, db, 1)

	_, err := svc.EndGame(2, game.ID)
	if err == nil {
		t.Fatal("expected a non-creator end to be rejected")
	}
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("error kind = %v, want ErrForbidden", err)
	}

	var got models.Game
	if err := db.First(&got, game.ID).Error; err != nil {
		t.Fatalf("reload game: %v", err)
	}
	if got.Status != models.GameStatusActive {
		t.Fatalf("game status = %q, want unchanged", got.Status)
	}
}

func TestCloseQuestionRejectsNonCreator(t *testing.T) {
	svc, db := newGameServiceForTest(t)
	_, question := seedGameWithQuestion(t, db, 1)

	_, err := svc.CloseQuestion(2, question.ID)
	if err == nil {
		t.Fatal("expected a non-creator close to be rejected")
	}
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("error kind = %v, want ErrForbidden", err)
	}

	var got models.Question
	if err := db.First(&got, question.ID).Error; err != nil {
		t.Fatalf("reload question: %v", err)
	}
	if got.Status != models.QuestionStatusActive {
		t.Fatalf("question status = %q, want unchanged", got.Status)
	}
}

func TestSetAnswerRejectsNonCreator(t *testing.T) {
	svc, db := newGameServiceForTest(t)
	_, question := seedGameWithQuestion(t, db, 1)

	_, _, err := svc.SetAnswer(2, question.ID, "Yes")
	if err == nil {
		t.Fatal("expected a non-creator answer to be rejected")
	}
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("error kind = %v, want ErrForbidden", err)
	}

	var got models.Question
	if err := db.First(&got, question.ID).Error; err != nil {
		t.Fatalf("reload question: %v", err)
	}
	if got.Status != models.QuestionStatusActive || got.ActualResult != nil {
		t.Fatal("rejected answer must not touch the question")
	}
}

func TestSetAnswerUnknownQuestion(t *testing.T) {
	svc, _ := newGameServiceForTest(t)

	_, _, err := svc.SetAnswer(1, 4242, "Yes")
	if err == nil {
		t.Fatal("expected an unknown question to be rejected")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error kind = %v, want ErrNotFound", err)
	}
}

func TestSetAnswerRejectsRefinish(t *testing.T) {
	svc, db := newGameServiceForTest(t)
	_, question := seedGameWithQuestion(t, db, 1)

	if _, _, err := svc.SetAnswer(1, question.ID, "Yes"); err != nil {
		t.Fatalf("first answer failed: %v", err)
	}
	if _, _, err := svc.SetAnswer(1, question.ID, "No"); err == nil {
		t.Fatal("expected a second answer to be rejected")
	}
}
