package nbt

import "fmt"

// MalformedTag is raised when decoding encounters input that cannot be a
// valid tagged value: a truncated buffer, an unrecognized kind byte, or
// (for Compound/List) an inconsistent nested structure.
type MalformedTag struct {
	Offset int
	Reason string
}

func (e *MalformedTag) Error() string {
	return fmt.Sprintf("malformed tag at offset %d: %s", e.Offset, e.Reason)
}

func malformedAt(offset int, format string, args ...interface{}) *MalformedTag {
	return &MalformedTag{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
