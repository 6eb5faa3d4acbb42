package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://quiz-document.json"

// documentSchema encodes the per-question shape rules.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"title", "questions"},
	"properties": map[string]any{
		"title": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/question"},
		},
	},
	"$defs": map[string]any{
		"question": map[string]any{
			"type":     "object",
			"required": []any{"id", "type", "question", "correct"},
			"properties": map[string]any{
				"id":          map[string]any{"type": "integer", "minimum": 1},
				"type":        map[string]any{"enum": []any{string(MultipleChoice), string(TrueFalse), string(FillBlank)}},
				"question":    map[string]any{"type": "string", "minLength": 1},
				"options":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"correct":     map[string]any{"type": []any{"integer", "string"}},
				"explanation": map[string]any{"type": "string"},
			},
			"allOf": []any{
				choiceRule(MultipleChoice),
				choiceRule(TrueFalse),
				map[string]any{
					"if": typeIs(FillBlank),
					"then": map[string]any{
						"not":        map[string]any{"required": []any{"options"}},
						"properties": map[string]any{"correct": map[string]any{"type": "string"}},
					},
				},
			},
		},
	},
}

func typeIs(t QuestionType) map[string]any {
	return map[string]any{
		"required":   []any{"type"},
		"properties": map[string]any{"type": map[string]any{"const": string(t)}},
	}
}

func choiceRule(t QuestionType) map[string]any {
	n := t.OptionCount()
	return map[string]any{
		"if": typeIs(t),
		"then": map[string]any{
			"required": []any{"options"},
			"properties": map[string]any{
				"options": map[string]any{"minItems": n, "maxItems": n},
				"correct": map[string]any{"type": "integer", "minimum": 0, "maximum": n - 1},
			},
		},
	}
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler expects decoded JSON values, not Go literals.
		def, err := decodeJSON(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(documentSchemaURL)
	})
	return compiled, compileErr
}

// Validate checks that every question in doc has the option shape and
// answer kind its type requires and that question IDs are unique. It
// returns *ErrInvalidDocument on failure. The number of questions is not
// checked.
func Validate(doc *Document) error {
	if doc == nil {
		return &ErrInvalidDocument{Violations: []string{"document is nil"}}
	}

	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile quiz schema: %w", err)
	}

	instance, err := decodeJSON(doc)
	if err != nil {
		return &ErrInvalidDocument{Err: err}
	}

	violations := checkQuestions(doc.Questions)
	if err := schema.Validate(instance); err != nil {
		return &ErrInvalidDocument{Violations: violations, Err: err}
	}
	if len(violations) > 0 {
		return &ErrInvalidDocument{Violations: violations}
	}
	return nil
}

// checkQuestions reports violations in a form suited to end users. The
// schema remains the authority; these messages name the question.
func checkQuestions(questions []Question) []string {
	var out []string
	seen := make(map[int]bool, len(questions))
	for i, q := range questions {
		where := fmt.Sprintf("question %d", i+1)
		if seen[q.ID] {
			out = append(out, fmt.Sprintf("%s: duplicate id %d", where, q.ID))
		}
		seen[q.ID] = true

		switch {
		case q.Type.IsChoice():
			if n := q.Type.OptionCount(); len(q.Options) != n {
				out = append(out, fmt.Sprintf("%s: %s needs %d options, got %d", where, q.Type, n, len(q.Options)))
			}
			idx, ok := q.Correct.Index()
			if !ok {
				out = append(out, fmt.Sprintf("%s: correct answer must be an option index, got %s", where, q.Correct.Kind()))
			} else if idx < 0 || idx >= len(q.Options) {
				out = append(out, fmt.Sprintf("%s: correct index %d out of range", where, idx))
			}
		case q.Type == FillBlank:
			if len(q.Options) > 0 {
				out = append(out, fmt.Sprintf("%s: fill-blank must not have options", where))
			}
			if _, ok := q.Correct.Text(); !ok {
				out = append(out, fmt.Sprintf("%s: correct answer must be text, got %s", where, q.Correct.Kind()))
			}
		default:
			out = append(out, fmt.Sprintf("%s: unknown type %q", where, q.Type))
		}
	}
	return out
}

func decodeJSON(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(b))
}
