package models

import (
	"encoding/json"
	"testing"
)

func TestQuestionStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to QuestionStatus
		ok       bool
	}{
		{QuestionStatusActive, QuestionStatusClosed, true},
		{QuestionStatusActive, QuestionStatusFinished, true},
		{QuestionStatusClosed, QuestionStatusFinished, true},
		{QuestionStatusClosed, QuestionStatusActive, false},
		{QuestionStatusClosed, QuestionStatusClosed, false},
		{QuestionStatusFinished, QuestionStatusClosed, false},
		{QuestionStatusFinished, QuestionStatusActive, false},
		{QuestionStatusFinished, QuestionStatusFinished, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.ok {
			t.Errorf("%s -> %s = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestQuestionOptionsRoundTrip(t *testing.T) {
	q := &Question{}
	if err := q.SetOptions([]string{"MADE", "MISSED"}); err != nil {
		t.Fatalf("SetOptions failed: %v", err)
	}

	opts := q.OptionList()
	if len(opts) != 2 || opts[0] != "MADE" || opts[1] != "MISSED" {
		t.Fatalf("OptionList = %v", opts)
	}

	if !q.HasOption("MADE") || !q.HasOption("MISSED") {
		t.Fatal("HasOption should accept stored choices")
	}
	if q.HasOption("made") || q.HasOption("DRAW") {
		t.Fatal("HasOption matched a choice that is not an option")
	}
}

func TestQuestionJSONExposesOptions(t *testing.T) {
	q := Question{ID: 7, Text: "Will they score?"}
	if err := q.SetOptions([]string{"Yes", "No"}); err != nil {
		t.Fatalf("SetOptions failed: %v", err)
	}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out struct {
		Options []string `json:"options"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(out.Options) != 2 || out.Options[0] != "Yes" {
		t.Fatalf("options in JSON = %v", out.Options)
	}
}

func TestQuestionOptionsMalformed(t *testing.T) {
	q := &Question{Options: "not-json"}
	if q.OptionList() != nil {
		t.Fatal("malformed options column should decode to nil")
	}
	if q.HasOption("anything") {
		t.Fatal("malformed options should match nothing")
	}
}
