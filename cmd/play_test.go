package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

func testDocument() *quiz.Document {
	return &quiz.Document{
		Title: "Photosynthesis Basics",
		Questions: []quiz.Question{
			{ID: 1, Type: quiz.MultipleChoice, Prompt: "Where does photosynthesis happen?", Options: []string{"Mitochondria", "Chloroplasts", "Nucleus", "Ribosomes"}, Correct: quiz.IndexAnswer(1), Explanation: "Chloroplasts hold chlorophyll."},
			{ID: 2, Type: quiz.TrueFalse, Prompt: "Photosynthesis releases carbon dioxide.", Options: []string{"True", "False"}, Correct: quiz.IndexAnswer(1), Explanation: "It releases oxygen."},
			{ID: 3, Type: quiz.FillBlank, Prompt: "Plants release ___.", Correct: quiz.TextAnswer("Oxygen"), Explanation: "Water is split."},
		},
	}
}

func TestPrintResults(t *testing.T) {
	s, err := session.New(testDocument())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := s.RecordAnswer(ctx, quiz.IndexAnswer(1)); err != nil {
		t.Fatal(err)
	}
	s.Advance()
	s.Advance()
	if err := s.RecordAnswer(ctx, quiz.TextAnswer("  oxygen ")); err != nil {
		t.Fatal(err)
	}
	s.Submit(ctx)

	th, _ := theme.Lookup("dark")
	var out bytes.Buffer
	if err := printResults(&out, th, s); err != nil {
		t.Fatalf("printResults: %v", err)
	}

	got := ansi.Strip(out.String())
	for _, want := range []string{"Photosynthesis Basics", "Score: 2/3 (66%)", "✗ 2.", "(no answer)", "Water is split."} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintResultsNeedsSubmit(t *testing.T) {
	s, err := session.New(testDocument())
	if err != nil {
		t.Fatal(err)
	}
	th, _ := theme.Lookup("dark")
	if err := printResults(&bytes.Buffer{}, th, s); err == nil {
		t.Fatal("expected error for a session in progress")
	}
}
