package godbf

import (
	"io"

	"github.com/go-errors/errors"
)

// recordEncoder serializes rows into fixed width records of a schema.
type recordEncoder struct {
	schema     *Schema
	codepage   *Codepage
	blankEmpty bool
	buf        []byte
}

func newRecordEncoder(schema *Schema, codepage *Codepage, blankEmpty bool) *recordEncoder {
	return &recordEncoder{
		schema:     schema,
		codepage:   codepage,
		blankEmpty: blankEmpty,
		buf:        make([]byte, 0, schema.recordLength()),
	}
}

// encode renders row into a record and writes it to w. index is the row
// number reported in a ParseError.
func (e *recordEncoder) encode(w io.Writer, index int, row Row) error {
	buf, err := e.appendRecord(e.buf[:0], index, row)
	if err != nil {
		return err
	}
	e.buf = buf
	_, err = w.Write(buf)
	return err
}

func (e *recordEncoder) appendRecord(buf []byte, index int, row Row) ([]byte, error) {
	// 第一个字节是删除标识，空格为未删除
	buf = append(buf, SPACE)
	for i, field := range e.schema.fields {
		text, pad, err := renderValue(field.Type, row[i], e.blankEmpty)
		if err != nil {
			return buf, errors.Wrap(&ParseError{
				Row:    index,
				Column: e.schema.columns[i],
				Type:   field.Type,
				Value:  valueText(row[i]),
				Err:    err,
			}, 1)
		}
		buf = appendFitted(buf, e.codepage.Encode(text), int(field.Length), pad)
	}
	return buf, nil
}

// appendFitted appends value cut or padded to exactly length bytes.
func appendFitted(buf, value []byte, length int, pad byte) []byte {
	if len(value) >= length {
		return append(buf, value[:length]...)
	}
	buf = append(buf, value...)
	for i := len(value); i < length; i++ {
		buf = append(buf, pad)
	}
	return buf
}
