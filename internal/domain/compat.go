package domain

import (
	"fmt"
	"unicode/utf8"
)

// Accepts reports whether v may be stored in a column of type t. Int values
// widen into Float columns; every other pairing must match exactly, and
// strings must fit the declared maximum length.
func (t ColumnType) Accepts(v CellValue) bool {
	switch t.Kind {
	case KindInt:
		return v.Kind == ValueInt
	case KindUnsignedInt:
		return v.Kind == ValueUnsignedInt
	case KindFloat:
		return v.Kind == ValueFloat || v.Kind == ValueInt
	case KindBoolean:
		return v.Kind == ValueBoolean
	case KindString:
		return v.Kind == ValueString && utf8.RuneCountInString(v.Str) <= t.MaxLength
	default:
		return false
	}
}

type IncompatibleTypeError struct {
	Expected ColumnType
	Actual   CellValue
}

func (e *IncompatibleTypeError) Error() string {
	return fmt.Sprintf("incompatible type: expected %s, got %s(%s)", e.Expected, e.Actual.Kind, e.Actual)
}

func CheckCompatible(t ColumnType, v CellValue) error {
	if t.Accepts(v) {
		return nil
	}
	return &IncompatibleTypeError{Expected: t, Actual: v}
}
