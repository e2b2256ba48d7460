package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"student-chapter-system/internal/logger"
	"student-chapter-system/models"
)

// TextGenerator is the narrow surface the pipeline needs from the generation
// service: prompt in, raw text out.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// MCQService orchestrates chapter text assembly, the generation call,
// response parsing and persistence. A nil generator means no credential was
// configured and /generate-mcq is disabled.
type MCQService struct {
	db        *sql.DB
	content   *ContentService
	generator TextGenerator
}

func NewMCQService(db *sql.DB, content *ContentService, generator TextGenerator) *MCQService {
	return &MCQService{db: db, content: content, generator: generator}
}

// InsertOutcome records one persistence attempt for a parsed question.
type InsertOutcome struct {
	Index int
	Err   error
}

// InsertReport aggregates the per-question persistence outcomes of a
// generation run.
type InsertReport struct {
	Outcomes []InsertOutcome
}

// Failed returns the number of questions that could not be persisted.
func (r *InsertReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// GenerationResult is what /generate-mcq returns. Count is the number of
// parsed questions; when inserts fail it can exceed the rows that actually
// landed in the store. The report carries that difference.
type GenerationResult struct {
	Count  int
	MCQs   []models.MCQ
	Report InsertReport
}

// GenerateForUnit runs the MCQ pipeline for a unit. The credential check
// runs before unit resolution, so a missing key answers 500 even for units
// that do not exist.
func (ms *MCQService) GenerateForUnit(ctx context.Context, unitID int) (*GenerationResult, error) {
	tracer := otel.Tracer("mcq-service")
	ctx, span := tracer.Start(ctx, "mcq.generate_for_unit")
	defer span.End()
	span.SetAttributes(attribute.Int("mcq.unit_id", unitID))

	if ms.generator == nil {
		return nil, ErrMissingAPIKey
	}

	chapterText, err := ms.content.UnitText(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(chapterText) == "" {
		return nil, ErrNoUnitText
	}

	prompt := buildMCQPrompt(chapterText)

	rawResponse, err := ms.generator.GenerateText(ctx, prompt)
	if err != nil {
		// The generation call is not separately fault-isolated: a service
		// failure travels the same path as malformed output.
		return nil, &ParseError{Err: err}
	}

	mcqs, err := ParseMCQResponse(rawResponse)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("mcq.parsed_count", len(mcqs)))

	report := ms.persistMCQs(ctx, unitID, mcqs)
	if failed := report.Failed(); failed > 0 {
		span.SetAttributes(attribute.Int("mcq.failed_inserts", failed))
		logger.Warn("Some MCQ inserts failed", "unit_id", unitID, "parsed", len(mcqs), "failed", failed)
	}

	return &GenerationResult{
		Count:  len(mcqs),
		MCQs:   mcqs,
		Report: report,
	}, nil
}

// ListForUnit returns the persisted questions for a unit in insertion order.
// The unit must exist; generation runs accumulate, so repeated runs show up
// as additional rows.
func (ms *MCQService) ListForUnit(ctx context.Context, unitID int) ([]models.MCQQuestion, error) {
	if _, _, _, err := ms.content.ResolveUnit(ctx, unitID); err != nil {
		return nil, err
	}

	rows, err := ms.db.QueryContext(ctx, `
		SELECT id, unit_id, question, option_a, option_b, option_c, option_d, correct_answer
		FROM mcq_questions
		WHERE unit_id = ?
		ORDER BY id ASC
	`, unitID)
	if err != nil {
		return nil, fmt.Errorf("querying mcq questions: %w", err)
	}
	defer rows.Close()

	questions := []models.MCQQuestion{}
	for rows.Next() {
		var q models.MCQQuestion
		if err := rows.Scan(&q.ID, &q.UnitID, &q.Question, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("scanning mcq question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mcq questions: %w", err)
	}

	return questions, nil
}

// persistMCQs appends each parsed question as its own row. An insert failure
// is logged and skipped; it never aborts the batch.
func (ms *MCQService) persistMCQs(ctx context.Context, unitID int, mcqs []models.MCQ) InsertReport {
	report := InsertReport{Outcomes: make([]InsertOutcome, 0, len(mcqs))}
	for i, q := range mcqs {
		_, err := ms.db.ExecContext(ctx, `
			INSERT INTO mcq_questions
			(unit_id, question, option_a, option_b, option_c, option_d, correct_answer)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, unitID, q.Question, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer)
		if err != nil {
			logger.Error("Insert MCQ error", "unit_id", unitID, "index", i, "error", err)
		}
		report.Outcomes = append(report.Outcomes, InsertOutcome{Index: i, Err: err})
	}
	return report
}

// buildMCQPrompt asks for exactly 10 questions as a bare JSON array, with a
// literal example payload to pin the field names, then appends the chapter
// text verbatim.
func buildMCQPrompt(chapterText string) string {
	return fmt.Sprintf(`
Read the chapter text below and generate 10 MCQ questions.
Return ONLY a JSON array, no extra text. Example:

[
  {
    "question": "....",
    "option_a": "....",
    "option_b": "....",
    "option_c": "....",
    "option_d": "....",
    "correct_answer": "A"
  }
]

Chapter Text:
%s
`, chapterText)
}
