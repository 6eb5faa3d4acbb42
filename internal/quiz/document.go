package quiz

// Question is one gradeable quiz item.
type Question struct {
	ID   int          `json:"id"`
	Type QuestionType `json:"type"`

	// Prompt is the question text shown to the learner.
	Prompt string `json:"question"`

	// Options is set for choice questions only.
	Options []string `json:"options,omitempty"`

	// Correct is an option index for choice questions and text for
	// fill-blank questions.
	Correct Answer `json:"correct"`

	Explanation string `json:"explanation"`
}

// Document is a complete quiz as produced by Extract.
type Document struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Title:     d.Title,
		Questions: make([]Question, len(d.Questions)),
	}
	for i, q := range d.Questions {
		q.Options = append([]string(nil), q.Options...)
		out.Questions[i] = q
	}
	return out
}
