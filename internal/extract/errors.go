package extract

import "fmt"

// ExtractionError indicates the input collection was empty or malformed.
// Structurally valid input never raises; extraction always degrades to
// synthesized fallback values instead.
type ExtractionError struct {
	Message string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error: %s", e.Message)
}
