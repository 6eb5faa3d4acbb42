package quiz

import (
	"fmt"
	"strconv"
	"strings"
)

// SystemPrompt constrains the model to a bare JSON reply.
const SystemPrompt = `You are a quiz author. You turn study material into accurate, self-contained quiz questions.

Rules:
- Respond with a single JSON object and nothing else. No markdown, no commentary.
- Every question must be answerable from the material or from well-established facts about the topic.
- Explanations are one or two sentences and say why the correct answer is correct.`

// typeRules states the option shape for each question type.
var typeRules = map[QuestionType]string{
	MultipleChoice: `"multiple-choice": "options" has exactly 4 strings labeled "A) ...", "B) ...", "C) ...", "D) ..."; "correct" is the 0-3 index of the right option.`,
	TrueFalse:      `"true-false": "options" is exactly ["True", "False"]; "correct" is 0 for True or 1 for False.`,
	FillBlank:      `"fill-blank": no "options" field; the question marks the blank with "____"; "correct" is the missing word or phrase as a string.`,
}

// BuildPrompt returns the user message asking for a quiz described by p.
// The topic request is embedded verbatim.
func BuildPrompt(p Parameters) string {
	var b strings.Builder

	count := strconv.Itoa(p.QuestionCount)
	fmt.Fprintf(&b, "Create a quiz with exactly %s questions.\n\n", count)

	b.WriteString("Topic or study material:\n")
	b.WriteString("<<<\n")
	b.WriteString(p.TopicRequest)
	b.WriteString("\n>>>\n\n")

	fmt.Fprintf(&b, "Number of questions: %s\n", count)
	fmt.Fprintf(&b, "Difficulty: %s\n", p.Difficulty)
	fmt.Fprintf(&b, "Question types: %s\n", joinTypes(p.QuestionTypes))
	if p.FocusArea != "" {
		fmt.Fprintf(&b, "Focus area: %s\n", p.FocusArea)
	}

	b.WriteString("\nOutput format. Return only this JSON object:\n")
	b.WriteString(`{"title": string, "questions": [{"id": integer starting at 1, "type": string, "question": string, "options": [string], "correct": integer or string, "explanation": string}]}`)
	b.WriteString("\n\nRules per question type:\n")
	for _, t := range p.QuestionTypes {
		if rule, ok := typeRules[t]; ok {
			fmt.Fprintf(&b, "- %s\n", rule)
		}
	}
	if len(p.QuestionTypes) > 1 {
		b.WriteString("- Mix the allowed types across the quiz.\n")
	}

	return b.String()
}

func joinTypes(types []QuestionType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
