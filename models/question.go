// models/question.go
package models

import (
	"encoding/json"
	"time"
)

type QuestionStatus string

const (
	QuestionStatusActive   QuestionStatus = "active"
	QuestionStatusClosed   QuestionStatus = "closed"
	QuestionStatusFinished QuestionStatus = "finished"
)

// Question is a multiple-choice prediction prompt tied to a game. Status only
// ever moves forward: active -> closed -> finished. Finished is terminal and
// is the trigger for scoring.
type Question struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	GameID uint   `json:"game_id" gorm:"not null;index"`
	Game   *Game  `json:"game,omitempty" gorm:"foreignKey:GameID"`
	Text   string `json:"text" gorm:"not null;type:text"`

	// JSON-encoded array of choice strings.
	Options string `json:"-" gorm:"not null;type:text"`

	Status       QuestionStatus `json:"status" gorm:"default:'active';index;size:20"`
	ActualResult *string        `json:"actual_result,omitempty" gorm:"size:500"`

	CreatedBy  uint       `json:"created_by" gorm:"not null;index"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// MarshalJSON exposes the decoded option list instead of the stored column.
func (q Question) MarshalJSON() ([]byte, error) {
	type alias Question
	return json.Marshal(struct {
		alias
		OptionList []string `json:"options"`
	}{alias(q), q.OptionList()})
}

// CanTransitionTo reports whether the status machine allows moving to next.
func (s QuestionStatus) CanTransitionTo(next QuestionStatus) bool {
	switch s {
	case QuestionStatusActive:
		return next == QuestionStatusClosed || next == QuestionStatusFinished
	case QuestionStatusClosed:
		return next == QuestionStatusFinished
	default:
		return false
	}
}

// OptionList decodes the stored choices. A malformed column yields nil.
func (q *Question) OptionList() []string {
	if q.Options == "" {
		return nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(q.Options), &opts); err != nil {
		return nil
	}
	return opts
}

// SetOptions encodes the choices for storage.
func (q *Question) SetOptions(opts []string) error {
	data, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	q.Options = string(data)
	return nil
}

// HasOption reports whether choice is one of the question's options.
func (q *Question) HasOption(choice string) bool {
	for _, opt := range q.OptionList() {
		if opt == choice {
			return true
		}
	}
	return false
}

// QuestionTemplate is a reusable prompt a gamemaster can post from (e.g.
// "MADE / MISSED"). Seeded by cmd/template-importer.
type QuestionTemplate struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"not null;size:100"`
	Text     string `json:"text" gorm:"not null;type:text"`
	Options  string `json:"-" gorm:"not null;type:text"`
	Category string `json:"category" gorm:"size:50;index"`

	CreatedAt time.Time `json:"created_at"`
}

func (QuestionTemplate) TableName() string {
	return "question_templates"
}

func (t QuestionTemplate) MarshalJSON() ([]byte, error) {
	type alias QuestionTemplate
	return json.Marshal(struct {
		alias
		OptionList []string `json:"options"`
	}{alias(t), t.OptionList()})
}

func (t *QuestionTemplate) OptionList() []string {
	if t.Options == "" {
		return nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(t.Options), &opts); err != nil {
		return nil
	}
	return opts
}

func (t *QuestionTemplate) SetOptions(opts []string) error {
	data, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	t.Options = string(data)
	return nil
}
