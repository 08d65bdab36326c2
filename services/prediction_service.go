// services/prediction_service.go - Prediction submission and scoring
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"predictplay/models"
	"predictplay/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pointsPerCorrectPrediction = 10

type PredictionService struct {
	db  *gorm.DB
	hub *Hub
}

func NewPredictionService(db *gorm.DB, hub *Hub) *PredictionService {
	return &PredictionService{db: db, hub: hub}
}

// ScoreSummary is the outcome of scoring one finished question.
type ScoreSummary struct {
	QuestionID   uint   `json:"question_id"`
	Answer       string `json:"answer"`
	Winners      int    `json:"winners"`
	Total        int    `json:"total"`
	SoloPlayers  int    `json:"solo_players"`
	GroupPlayers int    `json:"group_players"`
	Accuracy     int    `json:"accuracy"`

	// Players whose stat update failed; their guesses were read but their
	// counters were not bumped.
	FailedPlayerIDs []uint `json:"failed_player_ids,omitempty"`
}

// SubmitPrediction records the player's choice for an open question. A
// repeat submission overwrites the earlier one; the composite unique index
// plus the conflict clause guarantee a single row per (question, player).
func (s *PredictionService) SubmitPrediction(playerID, questionID uint, choice string) (*models.Guess, error) {
	if choice == "" {
		return nil, errors.New("prediction choice is required")
	}

	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, notFound("question not found")
	}
	if question.Status != models.QuestionStatusActive {
		return nil, errors.New("predictions are closed for this question")
	}
	if !question.HasOption(choice) {
		return nil, errors.New("choice must be one of the question's options")
	}

	guess := &models.Guess{
		QuestionID:  questionID,
		PlayerID:    playerID,
		Prediction:  choice,
		SubmittedAt: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// First guess on this game bumps games_played
		var prior int64
		tx.Model(&models.Guess{}).
			Joins("JOIN questions ON questions.id = guesses.question_id").
			Where("guesses.player_id = ? AND questions.game_id = ?", playerID, question.GameID).
			Count(&prior)
		if prior == 0 {
			tx.Model(&models.User{}).Where("id = ?", playerID).
				Update("games_played", gorm.Expr("games_played + 1"))
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "question_id"}, {Name: "player_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"prediction":   choice,
				"submitted_at": time.Now(),
			}),
		}).Create(guess).Error
	})

	if err != nil {
		return nil, err
	}
	return guess, nil
}

// GetGuess returns the player's guess for a question, if any.
func (s *PredictionService) GetGuess(playerID, questionID uint) (*models.Guess, error) {
	var guess models.Guess
	err := s.db.Where("question_id = ? AND player_id = ?", questionID, playerID).
		First(&guess).Error
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &guess, nil
}

// guessOutcome is one scored guess: who, whether it was right, and which
// group (if any) absorbs the stat update.
type guessOutcome struct {
	PlayerID uint
	Username string
	GroupID  uint // 0 for solo players
	Correct  bool
}

// partitionGuesses computes the outcome of every guess against the answer.
// Each guesser lands in exactly one of the solo/group buckets; the summary
// counts always satisfy solo+group == total.
func partitionGuesses(questionID uint, answer string, guesses []models.Guess, groupOf map[uint]uint) ([]guessOutcome, ScoreSummary) {
	outcomes := make([]guessOutcome, 0, len(guesses))
	summary := ScoreSummary{QuestionID: questionID, Answer: answer, Total: len(guesses)}

	for _, g := range guesses {
		o := guessOutcome{
			PlayerID: g.PlayerID,
			GroupID:  groupOf[g.PlayerID],
			Correct:  g.Prediction == answer,
		}
		if g.Player != nil {
			o.Username = g.Player.Username
		}
		if o.Correct {
			summary.Winners++
		}
		if o.GroupID != 0 {
			summary.GroupPlayers++
		} else {
			summary.SoloPlayers++
		}
		outcomes = append(outcomes, o)
	}

	summary.Accuracy = utils.Accuracy(summary.Winners, summary.Total)
	return outcomes, summary
}

// scoreQuestionTx runs the scoring pass inside the caller's transaction.
// Solo players get atomic bumps on their global counters; group members get
// the bump on their group's stats row instead, keeping group play off the
// global leaderboard. A failed per-player update is recorded in the summary
// and does not abort the rest of the pass.
func (s *PredictionService) scoreQuestionTx(tx *gorm.DB, questionID uint, answer string) (*ScoreSummary, error) {
	var guesses []models.Guess
	if err := tx.Where("question_id = ?", questionID).
		Preload("Player").
		Find(&guesses).Error; err != nil {
		return nil, err
	}

	groupOf, err := activeGroupMemberships(tx, guesses)
	if err != nil {
		return nil, err
	}

	outcomes, summary := partitionGuesses(questionID, answer, guesses, groupOf)

	// Each bump runs under its own savepoint so a failed statement rolls
	// back alone instead of aborting the surrounding transaction.
	now := time.Now()
	for i, o := range outcomes {
		sp := fmt.Sprintf("guess_%d", i)
		tx.SavePoint(sp)

		var err error
		if o.GroupID != 0 {
			err = bumpGroupStats(tx, o, now)
		} else {
			err = bumpUserStats(tx, o, now)
		}
		if err != nil {
			tx.RollbackTo(sp)
			log.Printf("scoring: failed to update stats for player %d: %v", o.PlayerID, err)
			summary.FailedPlayerIDs = append(summary.FailedPlayerIDs, o.PlayerID)
		}
	}

	return &summary, nil
}

// activeGroupMemberships maps each guesser to their active group, if any.
func activeGroupMemberships(tx *gorm.DB, guesses []models.Guess) (map[uint]uint, error) {
	groupOf := make(map[uint]uint, len(guesses))
	if len(guesses) == 0 {
		return groupOf, nil
	}

	playerIDs := make([]uint, 0, len(guesses))
	for _, g := range guesses {
		playerIDs = append(playerIDs, g.PlayerID)
	}

	var rows []models.GroupMember
	err := tx.Joins("JOIN groups ON groups.id = group_members.group_id").
		Where("group_members.user_id IN ? AND group_members.is_active = ? AND groups.status = ?",
			playerIDs, true, models.GroupStatusActive).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, m := range rows {
		groupOf[m.UserID] = m.GroupID
	}
	return groupOf, nil
}

func bumpUserStats(tx *gorm.DB, o guessOutcome, now time.Time) error {
	updates := map[string]interface{}{
		"total_predictions": gorm.Expr("total_predictions + 1"),
		"last_played":       now,
	}
	if o.Correct {
		updates["correct_predictions"] = gorm.Expr("correct_predictions + 1")
		updates["total_points"] = gorm.Expr("total_points + ?", pointsPerCorrectPrediction)
	}
	return tx.Model(&models.User{}).Where("id = ?", o.PlayerID).Updates(updates).Error
}

func bumpGroupStats(tx *gorm.DB, o guessOutcome, now time.Time) error {
	correct := 0
	points := 0
	if o.Correct {
		correct = 1
		points = pointsPerCorrectPrediction
	}

	row := &models.GroupStat{
		GroupID:            o.GroupID,
		UserID:             o.PlayerID,
		Username:           o.Username,
		TotalPredictions:   1,
		CorrectPredictions: correct,
		TotalPoints:        points,
		UpdatedAt:          now,
	}

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_predictions":   gorm.Expr("group_stats.total_predictions + 1"),
			"correct_predictions": gorm.Expr("group_stats.correct_predictions + ?", correct),
			"total_points":        gorm.Expr("group_stats.total_points + ?", points),
			"updated_at":          now,
		}),
	}).Create(row).Error
}
