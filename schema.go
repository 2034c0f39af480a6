package godbf

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/go-errors/errors"
	"github.com/samber/lo"
)

type fieldTemplate struct {
	fieldType FieldType
	length    byte
	decimal   byte
}

// fieldTemplates maps every supported column type to its field layout.
// Text columns get their length from the data.
var fieldTemplates = map[ColumnType]fieldTemplate{
	ColumnText:     {FieldCharacter, 0, 0},
	ColumnBoolean:  {FieldLogical, 1, 0},
	ColumnUint8:    {FieldNumeric, 1, 0},
	ColumnDateTime: {FieldDate, 8, 0},
	ColumnDecimal:  {FieldNumeric, 38, 5},
	ColumnFloat64:  {FieldFloat, 38, 5},
	ColumnFloat32:  {FieldFloat, 38, 5},
	ColumnInt8:     {FieldNumeric, 6, 0},
	ColumnInt16:    {FieldNumeric, 6, 0},
	ColumnUint16:   {FieldNumeric, 6, 0},
	ColumnInt32:    {FieldNumeric, 11, 0},
	ColumnUint32:   {FieldNumeric, 11, 0},
	ColumnInt64:    {FieldNumeric, 21, 0},
	ColumnUint64:   {FieldNumeric, 21, 0},
}

var fallbackTemplate = fieldTemplate{FieldCharacter, 50, 0}

// Schema is the immutable field layout of a table. It is computed once,
// before anything is written, and shared by the header and record encoders.
type Schema struct {
	fields  []FieldDescriptor
	columns []string
	// downgraded holds the indexes of columns stored with the fallback layout
	downgraded []int
}

// InferSchema derives the field layout of table. Text columns are scanned
// completely to find their widths.
func InferSchema(table *Table, codepage *Codepage, policy UnsupportedTypePolicy) (*Schema, error) {
	if err := table.validate(); err != nil {
		return nil, err
	}
	widths := textWidths(table)
	schema := &Schema{
		fields:  make([]FieldDescriptor, len(table.Columns)),
		columns: make([]string, len(table.Columns)),
	}
	for i, column := range table.Columns {
		template, ok := fieldTemplates[column.Type]
		if !ok {
			if policy == RejectUnsupported {
				return nil, errors.Errorf("column %s of type %s: %w",
					column.Name, column.Type, ErrUnsupportedColumnType)
			}
			template = fallbackTemplate
			schema.downgraded = append(schema.downgraded, i)
		}
		if column.Type == ColumnText {
			template.length = byte(widths[i])
		}
		schema.fields[i] = FieldDescriptor{
			Name:    fieldName(column.Name, codepage),
			Type:    template.fieldType,
			Length:  template.length,
			Decimal: template.decimal,
		}
		schema.columns[i] = column.Name
	}
	if schema.headerLength() > math.MaxUint16 {
		return nil, errors.Errorf("%d fields: %w", len(schema.fields), ErrHeaderOverflow)
	}
	if schema.recordLength() > math.MaxUint16 {
		return nil, errors.Errorf("%d bytes: %w", schema.recordLength(), ErrRecordOverflow)
	}
	return schema, nil
}

// textWidths returns the trimmed length of the longest string value of every
// text column, clamped to [1, 255]. Values other than strings are ignored.
func textWidths(table *Table) []int {
	widths := make([]int, len(table.Columns))
	for _, row := range table.Rows {
		for i, value := range row {
			if table.Columns[i].Type != ColumnText {
				continue
			}
			if s, ok := value.(string); ok {
				widths[i] = max(widths[i], utf8.RuneCountInString(strings.TrimSpace(s)))
			}
		}
	}
	for i := range widths {
		widths[i] = min(max(widths[i], 1), maxCharLength)
	}
	return widths
}

// fieldName upper-cases name and fits its encoded form into the 10 name
// bytes of a descriptor; the 11th byte stays zero.
func fieldName(name string, codepage *Codepage) [11]byte {
	var out [11]byte
	copy(out[:fieldNameSize], codepage.Encode(strings.ToUpper(name)))
	return out
}

func (s *Schema) Len() int {
	return len(s.fields)
}

// Field returns a copy of the i-th field descriptor.
func (s *Schema) Field(i int) FieldDescriptor {
	return s.fields[i]
}

// Fields returns a copy of all field descriptors in column order.
func (s *Schema) Fields() []FieldDescriptor {
	return append([]FieldDescriptor(nil), s.fields...)
}

// Columns returns the source column names in field order.
func (s *Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Downgraded returns the names of columns stored as fallback text fields.
func (s *Schema) Downgraded() []string {
	return lo.Map(s.downgraded, func(i int, _ int) string {
		return s.columns[i]
	})
}

// HeaderLength is the size of the table descriptor, all field descriptors
// and the terminator byte.
func (s *Schema) HeaderLength() uint16 {
	return uint16(s.headerLength())
}

// RecordLength is the deletion flag plus the width of every field.
func (s *Schema) RecordLength() uint16 {
	return uint16(s.recordLength())
}

func (s *Schema) headerLength() int {
	return headerSize + descriptorSize*len(s.fields) + 1
}

func (s *Schema) recordLength() int {
	return 1 + lo.SumBy(s.fields, func(fd FieldDescriptor) int {
		return int(fd.Length)
	})
}
