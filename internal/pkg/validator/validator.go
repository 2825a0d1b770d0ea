package validator

// Validator checks a struct against its validation tags.
type Validator interface {
	// Validate returns nil when data is valid, otherwise an error describing
	// the failed fields (a V10ValidationError for the v10 implementation).
	Validate(data any) error
}
