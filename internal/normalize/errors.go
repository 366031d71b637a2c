package normalize

import (
	"errors"
	"fmt"
)

// MalformedInputError marks a trip record that cannot be normalized at all
// (negative duration, missing start timestamp). It is fatal for that record
// only: the batch runner stores it on the record and moves on.
type MalformedInputError struct {
	Field  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed trip input: %s %s", e.Field, e.Reason)
}

// IsMalformedInput reports whether err is a MalformedInputError.
func IsMalformedInput(err error) bool {
	var m *MalformedInputError
	return errors.As(err, &m)
}
