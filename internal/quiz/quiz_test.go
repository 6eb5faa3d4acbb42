package quiz

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func sampleDocument() *Document {
	return &Document{
		Title: "Photosynthesis Basics",
		Questions: []Question{
			{
				ID:          1,
				Type:        MultipleChoice,
				Prompt:      "Which pigment absorbs light?",
				Options:     []string{"A) Chlorophyll", "B) Keratin", "C) Melanin", "D) Hemoglobin"},
				Correct:     IndexAnswer(0),
				Explanation: "Chlorophyll captures light energy.",
			},
			{
				ID:          2,
				Type:        TrueFalse,
				Prompt:      "Photosynthesis releases oxygen.",
				Options:     []string{"True", "False"},
				Correct:     IndexAnswer(0),
				Explanation: "Oxygen is a by-product of splitting water.",
			},
			{
				ID:          3,
				Type:        FillBlank,
				Prompt:      "Photosynthesis takes place in the ____.",
				Correct:     TextAnswer("chloroplast"),
				Explanation: "Chloroplasts hold the chlorophyll.",
			},
		},
	}
}

func TestNewParameters(t *testing.T) {
	p, err := NewParameters("Photosynthesis", 3, Medium,
		[]QuestionType{MultipleChoice, MultipleChoice, FillBlank}, " biology ", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.QuestionTypes) != 2 {
		t.Errorf("expected duplicates dropped, got %v", p.QuestionTypes)
	}
	if p.FocusArea != "biology" {
		t.Errorf("focus = %q", p.FocusArea)
	}
}

func TestParameters_Validate(t *testing.T) {
	valid := Parameters{
		TopicRequest:  "Photosynthesis",
		QuestionCount: 5,
		Difficulty:    Easy,
		QuestionTypes: []QuestionType{TrueFalse},
	}

	tests := []struct {
		name   string
		mutate func(*Parameters)
		field  string
	}{
		{"valid", func(p *Parameters) {}, ""},
		{"empty topic", func(p *Parameters) { p.TopicRequest = "  " }, "topic"},
		{"zero count", func(p *Parameters) { p.QuestionCount = 0 }, "count"},
		{"count too large", func(p *Parameters) { p.QuestionCount = 51 }, "count"},
		{"max count", func(p *Parameters) { p.QuestionCount = 50 }, ""},
		{"unknown difficulty", func(p *Parameters) { p.Difficulty = "extreme" }, "difficulty"},
		{"no types", func(p *Parameters) { p.QuestionTypes = nil }, "types"},
		{"unknown type", func(p *Parameters) { p.QuestionTypes = []QuestionType{"essay"} }, "types"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var invalid *ErrInvalidParameters
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidParameters, got %T (%v)", err, err)
			}
			if invalid.Field != tt.field {
				t.Errorf("field = %q, want %q", invalid.Field, tt.field)
			}
		})
	}
}

func TestParseQuestionTypes(t *testing.T) {
	types, err := ParseQuestionTypes("mc, true-false,fill")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []QuestionType{MultipleChoice, TrueFalse, FillBlank}
	if !reflect.DeepEqual(types, want) {
		t.Errorf("types = %v, want %v", types, want)
	}

	if _, err := ParseQuestionTypes("mc,essay"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestBuildPrompt(t *testing.T) {
	topics := []string{
		"Photosynthesis",
		"The causes of World War I {and its aftermath}",
		"Übersetzung: \"quoted\" text\nwith newlines",
	}
	for _, topic := range topics {
		for _, count := range []int{1, 7, 50} {
			p := Parameters{
				TopicRequest:  topic,
				QuestionCount: count,
				Difficulty:    Hard,
				QuestionTypes: []QuestionType{MultipleChoice, FillBlank},
				FocusArea:     "dates",
			}
			prompt := BuildPrompt(p)
			if !strings.Contains(prompt, topic) {
				t.Errorf("prompt missing topic %q", topic)
			}
			if !strings.Contains(prompt, "Number of questions: "+itoa(count)) {
				t.Errorf("prompt missing count %d", count)
			}
		}
	}
}

func TestBuildPrompt_TypeRules(t *testing.T) {
	p := Parameters{
		TopicRequest:  "Cells",
		QuestionCount: 2,
		Difficulty:    Easy,
		QuestionTypes: []QuestionType{TrueFalse},
	}
	prompt := BuildPrompt(p)

	if !strings.Contains(prompt, `exactly ["True", "False"]`) {
		t.Error("missing true-false rule")
	}
	if strings.Contains(prompt, `"multiple-choice":`) {
		t.Error("unexpected multiple-choice rule for true-false only quiz")
	}
	if strings.Contains(prompt, "Focus area") {
		t.Error("focus area line should be omitted when empty")
	}
	if !strings.Contains(prompt, "Difficulty: easy") {
		t.Error("missing difficulty")
	}
	if BuildPrompt(p) != prompt {
		t.Error("prompt is not deterministic")
	}
}

func TestExtract_RoundTrip(t *testing.T) {
	doc := sampleDocument()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	payload := string(b)

	tests := []struct {
		name string
		raw  string
	}{
		{"bare", payload},
		{"json fence", "```json\n" + payload + "\n```"},
		{"untagged fence", "```\n" + payload + "\n```"},
		{"fence with prose", "Here is your quiz:\n\n```json\n" + payload + "\n```\n\nGood luck!"},
		{"prose padding", "Sure! Here is the quiz you asked for. " + payload + " Let me know if you need more."},
		{"indented json", "Result:\n" + indent(t, doc)},
		{"javascript fence", "```javascript\n" + payload + "\n```"},
		{"crlf fence", "```json\r\n" + payload + "\r\n```"},
		{"indented closing fence", "```json\n" + indent(t, doc) + "\n  ```"},
		{"unrelated fence before json", "Format:\n```\nquestion list\n```\nHere it is: " + payload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, doc) {
				t.Fatalf("extracted document differs:\n got %+v\nwant %+v", got, doc)
			}
		})
	}
}

func TestExtract_FenceInsideString(t *testing.T) {
	doc := sampleDocument()
	doc.Questions[0].Prompt = "Which characters open a code block, as in ```go?"
	doc.Questions[0].Explanation = "Three backticks (```) start and end a fence."
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := Extract("```json\n" + string(b) + "\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Fatalf("extracted document differs:\n got %+v\nwant %+v", got, doc)
	}
}

func TestExtract_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no braces", "I'm sorry, I can't help with that."},
		{"only closing brace", "oops } here"},
		{"reversed braces", "} then {"},
		{"invalid interior", "{title: 'x', questions: [}"},
		{"missing questions", `{"title": "x"}`},
		{"questions not array", `{"title": "x", "questions": {"id": 1}}`},
		{"questions null", `{"title": "x", "questions": null}`},
		{"fenced garbage", "```json\nnot json at all\n```"},
		{"fenced garbage with bad braces", "```json\n{not json}\n```"},
		{"single line fence", "```not json```"},
		{"bad correct value", `{"title": "x", "questions": [{"id": 1, "type": "true-false", "question": "q", "options": ["True","False"], "correct": true}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Extract(tt.raw)
			if doc != nil {
				t.Fatalf("expected nil document, got %+v", doc)
			}
			var malformed *ErrMalformedResponse
			if !errors.As(err, &malformed) {
				t.Fatalf("expected ErrMalformedResponse, got %T (%v)", err, err)
			}
		})
	}
}

func TestExtract_IncludesParserMessage(t *testing.T) {
	_, err := Extract(`{"title": "x", "questions": [1,}`)
	if err == nil {
		t.Fatal("expected error")
	}
	var malformed *ErrMalformedResponse
	if !errors.As(err, &malformed) || malformed.Err == nil {
		t.Fatalf("expected wrapped parser error, got %v", err)
	}
	if !strings.Contains(err.Error(), malformed.Err.Error()) {
		t.Errorf("error %q does not include parser message", err)
	}
}

func TestExtract_DoesNotRepair(t *testing.T) {
	raw := `{"title": "x", "questions": [{"id": 1, "type": "multiple-choice", "question": "q", "options": ["a","b"], "correct": 5}]}`
	doc, err := Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Questions[0].Options) != 2 {
		t.Errorf("options were modified: %v", doc.Questions[0].Options)
	}
	if err := Validate(doc); err == nil {
		t.Fatal("expected validation to flag the invariant violation")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Document)
		wantErr bool
	}{
		{"valid", func(d *Document) {}, false},
		{"count mismatch is fine", func(d *Document) { d.Questions = d.Questions[:1] }, false},
		{"mc with 3 options", func(d *Document) { d.Questions[0].Options = d.Questions[0].Options[:3] }, true},
		{"mc index out of range", func(d *Document) { d.Questions[0].Correct = IndexAnswer(4) }, true},
		{"mc negative index", func(d *Document) { d.Questions[0].Correct = IndexAnswer(-1) }, true},
		{"mc text answer", func(d *Document) { d.Questions[0].Correct = TextAnswer("A") }, true},
		{"tf with 3 options", func(d *Document) { d.Questions[1].Options = []string{"True", "False", "Maybe"} }, true},
		{"tf index 1", func(d *Document) { d.Questions[1].Correct = IndexAnswer(1) }, false},
		{"fill with options", func(d *Document) { d.Questions[2].Options = []string{"a"} }, true},
		{"fill with index", func(d *Document) { d.Questions[2].Correct = IndexAnswer(0) }, true},
		{"unanswered correct", func(d *Document) { d.Questions[2].Correct = Answer{} }, true},
		{"unknown type", func(d *Document) { d.Questions[2].Type = "essay" }, true},
		{"zero id", func(d *Document) { d.Questions[0].ID = 0 }, true},
		{"duplicate id", func(d *Document) { d.Questions[1].ID = 1 }, true},
		{"empty prompt", func(d *Document) { d.Questions[0].Prompt = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			tt.mutate(doc)
			err := Validate(doc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invalid *ErrInvalidDocument
				if !errors.As(err, &invalid) {
					t.Fatalf("expected ErrInvalidDocument, got %T", err)
				}
			}
		})
	}
}

func TestAnswerJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Answer
	}{
		{`null`, Answer{}},
		{`2`, IndexAnswer(2)},
		{`"Paris"`, TextAnswer("Paris")},
		{`""`, TextAnswer("")},
	}
	for _, tt := range tests {
		var got Answer
		if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("unmarshal %s = %v, want %v", tt.in, got, tt.want)
		}
		out, err := json.Marshal(got)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(out) != tt.in {
			t.Errorf("marshal = %s, want %s", out, tt.in)
		}
	}

	for _, bad := range []string{`1.5`, `true`, `{}`, `[0]`} {
		var a Answer
		if err := json.Unmarshal([]byte(bad), &a); err == nil {
			t.Errorf("expected error for %s", bad)
		}
	}
}

func TestDocumentClone(t *testing.T) {
	doc := sampleDocument()
	clone := doc.Clone()
	clone.Questions[0].Options[0] = "changed"
	clone.Title = "changed"

	if doc.Questions[0].Options[0] == "changed" || doc.Title == "changed" {
		t.Fatal("clone shares memory with original")
	}
}

func TestContentStats(t *testing.T) {
	got := ContentStats("  The light reactions\nrun in thylakoids.  ")
	if got.Words != 6 {
		t.Errorf("words = %d, want 6", got.Words)
	}
	if got.Characters != 42 {
		t.Errorf("characters = %d, want 42", got.Characters)
	}
	if s := ContentStats(""); s.Words != 0 || s.Characters != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func indent(t *testing.T, doc *Document) string {
	t.Helper()
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}
