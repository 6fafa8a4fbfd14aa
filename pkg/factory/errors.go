package factory

import "fmt"

// UniquenessExhaustedError is returned when the bounded generation
// loop cannot find an unused value for a uniquified attribute.
type UniquenessExhaustedError struct {
	Type      string
	Attribute string
	Attempts  int
}

func (e *UniquenessExhaustedError) Error() string {
	return fmt.Sprintf("could not generate a unique %s.%s after %d attempts", e.Type, e.Attribute, e.Attempts)
}

// Hint returns a suggestion for resolving this error.
func (e *UniquenessExhaustedError) Hint() string {
	return fmt.Sprintf("The generator for %s.%s keeps producing taken values. Widen its value space or drop the uniquify constraint.", e.Type, e.Attribute)
}
