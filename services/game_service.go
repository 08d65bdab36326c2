// services/game_service.go - Game and question broadcast flow
package services

import (
	"errors"
	"time"

	"predictplay/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type GameService struct {
	db          *gorm.DB
	hub         *Hub
	predictions *PredictionService
}

func NewGameService(db *gorm.DB, hub *Hub, predictions *PredictionService) *GameService {
	return &GameService{db: db, hub: hub, predictions: predictions}
}

// CreateGame creates a streamed game. A gamemaster runs at most one active
// game at a time; the check and the insert commit together.
func (s *GameService) CreateGame(creatorID uint, name, streamURL, videoID string) (*models.Game, error) {
	if name == "" {
		return nil, errors.New("game name is required")
	}

	game := &models.Game{
		Name:      name,
		Slug:      slug.Make(name),
		Status:    models.GameStatusActive,
		CreatedBy: creatorID,
		StreamURL: streamURL,
		VideoID:   videoID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.Game{}).
			Where("created_by = ? AND status = ?", creatorID, models.GameStatusActive).
			Count(&count)
		if count > 0 {
			return errors.New("you already have an active game")
		}
		return tx.Create(game).Error
	})

	if err != nil {
		return nil, err
	}
	return game, nil
}

// EndGame flips the caller's game to ended. Only the creator may end it.
func (s *GameService) EndGame(creatorID, gameID uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return nil, notFound("game not found")
	}

	if game.CreatedBy != creatorID {
		return nil, forbidden("only the game creator can end this game")
	}
	if game.Status != models.GameStatusActive {
		return nil, errors.New("this game has already ended")
	}

	now := time.Now()
	if err := s.db.Model(&game).Updates(map[string]interface{}{
		"status":   models.GameStatusEnded,
		"ended_at": now,
	}).Error; err != nil {
		return nil, err
	}

	game.Status = models.GameStatusEnded
	game.EndedAt = &now

	s.hub.Publish(GameTopic(game.ID), "game_ended", map[string]interface{}{
		"game_id": game.ID,
	})
	return &game, nil
}

// GetGame returns a game by id.
func (s *GameService) GetGame(gameID uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return nil, notFound("game not found")
	}
	return &game, nil
}

// ActiveGames lists games still running, newest first.
func (s *GameService) ActiveGames(limit int) ([]models.Game, error) {
	var games []models.Game
	err := s.db.Where("status = ?", models.GameStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&games).Error
	return games, err
}

// CreateQuestion posts a prediction prompt on an active game. Any question
// by the same gamemaster still open on that game is closed first; both
// writes commit together so subscribers never see two live questions.
func (s *GameService) CreateQuestion(creatorID, gameID uint, text string, options []string) (*models.Question, error) {
	if text == "" {
		return nil, errors.New("question text is required")
	}
	if len(options) < 2 {
		return nil, errors.New("a question needs at least two options")
	}

	question := &models.Question{
		GameID:    gameID,
		Text:      text,
		Status:    models.QuestionStatusActive,
		CreatedBy: creatorID,
	}
	if err := question.SetOptions(options); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, gameID).Error; err != nil {
			return notFound("game not found")
		}
		if game.CreatedBy != creatorID {
			return forbidden("only the game creator can post questions on this game")
		}
		if game.Status != models.GameStatusActive {
			return errors.New("this game has ended")
		}

		if err := tx.Model(&models.Question{}).
			Where("game_id = ? AND created_by = ? AND status = ?",
				gameID, creatorID, models.QuestionStatusActive).
			Update("status", models.QuestionStatusClosed).Error; err != nil {
			return err
		}

		return tx.Create(question).Error
	})

	if err != nil {
		return nil, err
	}

	s.hub.Publish(GameTopic(gameID), "question_created", question)
	return question, nil
}

// CreateQuestionFromTemplate posts a question using a stored template's
// prompt and options.
func (s *GameService) CreateQuestionFromTemplate(creatorID, gameID, templateID uint) (*models.Question, error) {
	var tpl models.QuestionTemplate
	if err := s.db.First(&tpl, templateID).Error; err != nil {
		return nil, notFound("question template not found")
	}
	return s.CreateQuestion(creatorID, gameID, tpl.Text, tpl.OptionList())
}

// CloseQuestion stops further predictions. active -> closed only.
func (s *GameService) CloseQuestion(creatorID, questionID uint) (*models.Question, error) {
	var question models.Question

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&question, questionID).Error; err != nil {
			return notFound("question not found")
		}
		if question.CreatedBy != creatorID {
			return forbidden("only the question creator can close this question")
		}
		if !question.Status.CanTransitionTo(models.QuestionStatusClosed) {
			return errors.New("this question is no longer open")
		}

		return tx.Model(&question).Updates(map[string]interface{}{
			"status":     models.QuestionStatusClosed,
			"updated_at": time.Now(),
		}).Error
	})

	if err != nil {
		return nil, err
	}

	question.Status = models.QuestionStatusClosed
	s.hub.Publish(GameTopic(question.GameID), "question_closed", &question)
	return &question, nil
}

// SetAnswer records the actual result, finishes the question and runs the
// scoring pass, all in one transaction. Finished is terminal.
func (s *GameService) SetAnswer(creatorID, questionID uint, answer string) (*models.Question, *ScoreSummary, error) {
	if answer == "" {
		return nil, nil, errors.New("answer is required")
	}

	var question models.Question
	var summary *ScoreSummary

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&question, questionID).Error; err != nil {
			return notFound("question not found")
		}
		if question.CreatedBy != creatorID {
			return forbidden("only the question creator can set the answer")
		}
		if !question.Status.CanTransitionTo(models.QuestionStatusFinished) {
			return errors.New("this question has already been scored")
		}
		if !question.HasOption(answer) {
			return errors.New("the answer must be one of the question's options")
		}

		now := time.Now()
		if err := tx.Model(&question).Updates(map[string]interface{}{
			"status":        models.QuestionStatusFinished,
			"actual_result": answer,
			"finished_at":   now,
			"updated_at":    now,
		}).Error; err != nil {
			return err
		}

		var err error
		summary, err = s.predictions.scoreQuestionTx(tx, questionID, answer)
		return err
	})

	if err != nil {
		return nil, nil, err
	}

	question.Status = models.QuestionStatusFinished
	question.ActualResult = &answer

	s.hub.Publish(GameTopic(question.GameID), "question_finished", map[string]interface{}{
		"question": &question,
		"summary":  summary,
	})
	return &question, summary, nil
}

// CurrentQuestion returns the most recently created question for a game,
// whatever its status. Consumers derive the play phase from the status.
func (s *GameService) CurrentQuestion(gameID uint) (*models.Question, error) {
	var question models.Question
	err := s.db.Where("game_id = ?", gameID).
		Order("created_at DESC").
		First(&question).Error
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &question, nil
}

// ListTemplates returns the question templates, optionally by category.
func (s *GameService) ListTemplates(category string) ([]models.QuestionTemplate, error) {
	var templates []models.QuestionTemplate
	q := s.db.Order("id")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Find(&templates).Error
	return templates, err
}
