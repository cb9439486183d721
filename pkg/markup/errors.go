package markup

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidControlCharacter is matched by every *ControlCharacterError.
	ErrInvalidControlCharacter = errors.New("invalid control character")

	// ErrInvalidInputType is returned by adapters when a value is neither
	// text nor a byte sequence. The escaper itself never returns it.
	ErrInvalidInputType = errors.New("invalid input type")
)

// ControlCharacterError reports a disallowed control character found by a
// strict escape.
type ControlCharacterError struct {
	Codepoint rune
	// Offset is the byte offset of the character in the input.
	Offset int
}

func (e *ControlCharacterError) Error() string {
	return fmt.Sprintf("invalid control character U+%04X at offset %d", e.Codepoint, e.Offset)
}

// Unwrap lets errors.Is match ErrInvalidControlCharacter.
func (e *ControlCharacterError) Unwrap() error { return ErrInvalidControlCharacter }
