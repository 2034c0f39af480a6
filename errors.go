package godbf

import (
	"fmt"

	"github.com/go-errors/errors"
)

var (
	ErrNilTable              = errors.New("table is nil")
	ErrRowArity              = errors.New("row value count does not match column count")
	ErrInvalidTableName      = errors.New("invalid table name")
	ErrUnknownCodepage       = errors.New("unknown or unsupported codepage")
	ErrUnsupportedColumnType = errors.New("column type has no dbf field mapping")
	ErrHeaderOverflow        = errors.New("header length exceeds 65535 bytes")
	ErrRecordOverflow        = errors.New("record length exceeds 65535 bytes")
	ErrRowCountOverflow      = errors.New("row count exceeds 4294967295")
	ErrEmptyValue            = errors.New("empty value")
	ErrNonFiniteFloat        = errors.New("value is not a finite number")
)

// ParseError reports a cell whose value cannot be rendered as the type of
// its field. Writing stops at the first ParseError.
type ParseError struct {
	Row    int
	Column string
	Type   FieldType
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %s: cannot render %q as %s: %v",
		e.Row, e.Column, e.Value, e.Type, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
