package quiz

import (
	"fmt"
	"strings"
)

// MaxQuestions is the largest quiz a single request may ask for.
const MaxQuestions = 50

// QuestionType is the answer shape of a question.
type QuestionType string

const (
	// MultipleChoice questions have exactly 4 options and an index answer.
	MultipleChoice QuestionType = "multiple-choice"

	// TrueFalse questions have exactly ["True", "False"] and an index answer.
	TrueFalse QuestionType = "true-false"

	// FillBlank questions have no options and a free-text answer.
	FillBlank QuestionType = "fill-blank"
)

// QuestionTypes lists every supported question type in prompt order.
var QuestionTypes = []QuestionType{MultipleChoice, TrueFalse, FillBlank}

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoice, TrueFalse, FillBlank:
		return true
	}
	return false
}

// IsChoice reports whether answers to t are option indexes.
func (t QuestionType) IsChoice() bool {
	return t == MultipleChoice || t == TrueFalse
}

// OptionCount returns the number of options a question of type t carries.
func (t QuestionType) OptionCount() int {
	switch t {
	case MultipleChoice:
		return 4
	case TrueFalse:
		return 2
	}
	return 0
}

// Difficulty is the requested difficulty of a quiz.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// ParseQuestionTypes parses a comma-separated list such as
// "multiple-choice,fill-blank". Short aliases mc, tf and fill are accepted.
func ParseQuestionTypes(s string) ([]QuestionType, error) {
	var types []QuestionType
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		switch part {
		case "mc":
			part = string(MultipleChoice)
		case "tf":
			part = string(TrueFalse)
		case "fill":
			part = string(FillBlank)
		}
		t := QuestionType(part)
		if !t.Valid() {
			return nil, fmt.Errorf("unknown question type %q", part)
		}
		types = append(types, t)
	}
	return types, nil
}

// Parameters describes the quiz a caller wants generated. Build one with
// NewParameters; a Parameters value is not modified after construction.
type Parameters struct {
	// TopicRequest is the free-text study material or topic, echoed
	// verbatim into the prompt.
	TopicRequest string

	// QuestionCount is the number of questions to ask for (1-50).
	QuestionCount int

	Difficulty Difficulty

	// QuestionTypes is the non-empty, duplicate-free set of allowed types.
	QuestionTypes []QuestionType

	// FocusArea optionally narrows the topic.
	FocusArea string

	// Model is the completion model to request. Empty means the provider
	// default.
	Model string
}

// NewParameters validates its inputs and returns a Parameters value.
// Duplicate question types are dropped, keeping first occurrence order.
func NewParameters(topic string, count int, difficulty Difficulty, types []QuestionType, focus, model string) (Parameters, error) {
	seen := make(map[QuestionType]bool, len(types))
	deduped := make([]QuestionType, 0, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		deduped = append(deduped, t)
	}

	p := Parameters{
		TopicRequest:  topic,
		QuestionCount: count,
		Difficulty:    difficulty,
		QuestionTypes: deduped,
		FocusArea:     strings.TrimSpace(focus),
		Model:         strings.TrimSpace(model),
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// Validate checks p and returns *ErrInvalidParameters describing the first
// problem found.
func (p Parameters) Validate() error {
	if strings.TrimSpace(p.TopicRequest) == "" {
		return &ErrInvalidParameters{Field: "topic", Reason: "must not be empty"}
	}
	if p.QuestionCount < 1 || p.QuestionCount > MaxQuestions {
		return &ErrInvalidParameters{
			Field:  "count",
			Reason: fmt.Sprintf("must be between 1 and %d, got %d", MaxQuestions, p.QuestionCount),
		}
	}
	if !p.Difficulty.Valid() {
		return &ErrInvalidParameters{Field: "difficulty", Reason: fmt.Sprintf("unknown difficulty %q", p.Difficulty)}
	}
	if len(p.QuestionTypes) == 0 {
		return &ErrInvalidParameters{Field: "types", Reason: "at least one question type is required"}
	}
	for _, t := range p.QuestionTypes {
		if !t.Valid() {
			return &ErrInvalidParameters{Field: "types", Reason: fmt.Sprintf("unknown question type %q", t)}
		}
	}
	return nil
}

// WithModel returns a copy of p requesting model instead.
func (p Parameters) WithModel(model string) Parameters {
	p.QuestionTypes = append([]QuestionType(nil), p.QuestionTypes...)
	p.Model = model
	return p
}
