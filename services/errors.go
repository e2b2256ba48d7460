package services

import "errors"

// Sentinel errors for the unit content and MCQ generation flows. Routes map
// these onto HTTP statuses; message text is part of the API contract.
var (
	ErrUnitNotFound  = errors.New("Unit not found")
	ErrNoUnitText    = errors.New("No text found for this unit")
	ErrMissingAPIKey = errors.New("generation credential not configured")
)

// ParseError reports that the generator's response could not be normalized
// into a question list. The underlying cause is embedded in the message so
// it reaches the API caller.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "failed to parse MCQ JSON: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
