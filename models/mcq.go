package models

// MCQ is a generated multiple-choice question as returned by the generator.
// Fields missing from the generator output decode to the empty string; the
// correct answer label is stored as free text and is not checked against the
// option set.
type MCQ struct {
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
}

// MCQQuestion is a persisted MCQ row. Rows are append-only: repeated
// generation runs for the same unit accumulate rows rather than replacing
// earlier ones.
type MCQQuestion struct {
	ID     int `json:"id"`
	UnitID int `json:"unit_id"`
	MCQ
}
