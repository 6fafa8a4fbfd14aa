package resource

import "fmt"

// NotFoundError is returned when an id lookup misses.
type NotFoundError struct {
	Type string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s with id %d", e.Type, e.ID)
}

// Hint returns a suggestion for resolving this error.
func (e *NotFoundError) Hint() string {
	return fmt.Sprintf("Create a %s record first, or check the id your test expects.", e.Type)
}
