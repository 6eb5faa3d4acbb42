package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AnswerKind discriminates the Answer union.
type AnswerKind int

const (
	// AnswerNone is an unanswered question.
	AnswerNone AnswerKind = iota

	// AnswerIndex is a 0-based option index for choice questions.
	AnswerIndex

	// AnswerText is free text for fill-blank questions.
	AnswerText
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerIndex:
		return "index"
	case AnswerText:
		return "text"
	}
	return "none"
}

// Answer is either nothing, an option index or a text answer. The zero
// value is unanswered. It is used both for a question's correct answer and
// for a learner's response.
type Answer struct {
	kind  AnswerKind
	index int
	text  string
}

// IndexAnswer returns an Answer selecting option i.
func IndexAnswer(i int) Answer {
	return Answer{kind: AnswerIndex, index: i}
}

// TextAnswer returns a free-text Answer.
func TextAnswer(s string) Answer {
	return Answer{kind: AnswerText, text: s}
}

// Kind returns which variant a holds.
func (a Answer) Kind() AnswerKind { return a.kind }

// IsSet reports whether a holds a value.
func (a Answer) IsSet() bool { return a.kind != AnswerNone }

// Index returns the option index and whether a is an index answer.
func (a Answer) Index() (int, bool) {
	return a.index, a.kind == AnswerIndex
}

// Text returns the text and whether a is a text answer.
func (a Answer) Text() (string, bool) {
	return a.text, a.kind == AnswerText
}

func (a Answer) String() string {
	switch a.kind {
	case AnswerIndex:
		return strconv.Itoa(a.index)
	case AnswerText:
		return strconv.Quote(a.text)
	}
	return "<none>"
}

// MarshalJSON encodes an index as a number, text as a string and an
// unanswered value as null.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case AnswerIndex:
		return json.Marshal(a.index)
	case AnswerText:
		return json.Marshal(a.text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts null, an integer or a string.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAnswer(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("answer must be an integer index or a string, got %s", data)
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("answer must be an integer index or a string, got %s", data)
	}
	*a = IndexAnswer(int(i))
	return nil
}
