package services

import (
	"errors"
	"testing"
)

const twoQuestionArray = `[
	{"question":"Q1","option_a":"A1","option_b":"B1","option_c":"C1","option_d":"D1","correct_answer":"A"},
	{"question":"Q2","option_a":"A2","option_b":"B2","option_c":"C2","option_d":"D2","correct_answer":"C"}
]`

func TestParseMCQResponseBareArray(t *testing.T) {
	mcqs, err := ParseMCQResponse(twoQuestionArray)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(mcqs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(mcqs))
	}
	if mcqs[0].Question != "Q1" || mcqs[0].CorrectAnswer != "A" {
		t.Fatalf("unexpected first question: %+v", mcqs[0])
	}
	if mcqs[1].OptionD != "D2" {
		t.Fatalf("unexpected second question: %+v", mcqs[1])
	}
}

func TestParseMCQResponseMCQsObject(t *testing.T) {
	mcqs, err := ParseMCQResponse(`{"mcqs": ` + twoQuestionArray + `}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(mcqs) != 2 || mcqs[1].Question != "Q2" {
		t.Fatalf("unexpected questions: %+v", mcqs)
	}
}

func TestParseMCQResponseSingleObject(t *testing.T) {
	mcqs, err := ParseMCQResponse(`{"question":"Solo","option_a":"a","correct_answer":"B"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(mcqs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(mcqs))
	}
	if mcqs[0].Question != "Solo" || mcqs[0].CorrectAnswer != "B" {
		t.Fatalf("unexpected question: %+v", mcqs[0])
	}
	// Missing fields default to empty strings.
	if mcqs[0].OptionB != "" || mcqs[0].OptionD != "" {
		t.Fatalf("missing fields not defaulted: %+v", mcqs[0])
	}
}

func TestParseMCQResponseMCQsKeyNotAList(t *testing.T) {
	mcqs, err := ParseMCQResponse(`{"mcqs": "none", "question": "Fallback"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(mcqs) != 1 || mcqs[0].Question != "Fallback" {
		t.Fatalf("expected single-object fallback, got %+v", mcqs)
	}
}

func TestParseMCQResponseFencedWithJSONTag(t *testing.T) {
	raw := "```json\n" + twoQuestionArray + "\n```"
	mcqs, err := ParseMCQResponse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(mcqs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(mcqs))
	}
}

func TestParseMCQResponseFencedWithoutTag(t *testing.T) {
	raw := "```\n" + `{"mcqs": ` + twoQuestionArray + `}` + "\n```"
	mcqs, err := ParseMCQResponse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(mcqs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(mcqs))
	}
}

func TestParseMCQResponseSurroundingWhitespace(t *testing.T) {
	mcqs, err := ParseMCQResponse("\n\n  " + twoQuestionArray + "  \n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(mcqs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(mcqs))
	}
}

func TestParseMCQResponseIdempotent(t *testing.T) {
	first, err := ParseMCQResponse(twoQuestionArray)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := ParseMCQResponse(twoQuestionArray)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("question %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestParseMCQResponseMalformed(t *testing.T) {
	cases := map[string]string{
		"plain text":  "The chapter is about mammals.",
		"truncated":   `[{"question": "Q1", "option_a"`,
		"fenced junk": "```json\nnot json at all\n```",
		"empty":       "",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMCQResponse(raw)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
		})
	}
}
