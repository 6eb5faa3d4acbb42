package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// fencePattern matches a fenced code block. The info string line (json,
// javascript, ...) is skipped, and the closing fence must start a line, so
// backticks inside JSON strings do not end the block.
var fencePattern = regexp.MustCompile("(?s)```[^\n]*\n(.*?)\n[ \t]*```")

// Extract parses a quiz document out of a raw model reply. It tries the
// contents of the first fenced code block, then the text between the first
// '{' and the last '}'. When every candidate fails, the error of the first
// one is returned. Extract does not check per-question shape; see Validate.
func Extract(raw string) (*Document, error) {
	candidates := candidateJSON(raw)
	if len(candidates) == 0 {
		return nil, &ErrMalformedResponse{
			Reason: "no JSON object found",
			Err:    errors.New("reply contains no {...} pair"),
		}
	}

	var first error
	for _, c := range candidates {
		doc, err := parseDocument(c)
		if err == nil {
			return doc, nil
		}
		if first == nil {
			first = err
		}
	}
	return nil, first
}

func parseDocument(candidate string) (*Document, error) {
	var head struct {
		Questions json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal([]byte(candidate), &head); err != nil {
		return nil, &ErrMalformedResponse{Reason: "invalid JSON", Err: err}
	}
	if q := bytes.TrimSpace(head.Questions); len(q) == 0 || q[0] != '[' {
		return nil, &ErrMalformedResponse{Reason: `missing "questions" array`}
	}

	var doc Document
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, &ErrMalformedResponse{Reason: "unexpected question structure", Err: err}
	}
	return &doc, nil
}

func candidateJSON(raw string) []string {
	var out []string
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		out = append(out, strings.TrimSpace(m[1]))
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if span := raw[start : end+1]; len(out) == 0 || out[0] != span {
			out = append(out, span)
		}
	}
	return out
}
