package godbf

import (
	"strings"

	"github.com/go-errors/errors"
)

// ColumnType is the semantic type of a source column.
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnBoolean
	ColumnInt8
	ColumnUint8
	ColumnInt16
	ColumnUint16
	ColumnInt32
	ColumnUint32
	ColumnInt64
	ColumnUint64
	ColumnDateTime
	ColumnDecimal
	ColumnFloat32
	ColumnFloat64

	// The following types have no DBF counterpart and are stored as text.
	ColumnBinary
	ColumnDuration
	ColumnUUID
	ColumnOther
)

var columnTypeNames = map[ColumnType]string{
	ColumnText:     "text",
	ColumnBoolean:  "boolean",
	ColumnInt8:     "int8",
	ColumnUint8:    "uint8",
	ColumnInt16:    "int16",
	ColumnUint16:   "uint16",
	ColumnInt32:    "int32",
	ColumnUint32:   "uint32",
	ColumnInt64:    "int64",
	ColumnUint64:   "uint64",
	ColumnDateTime: "datetime",
	ColumnDecimal:  "decimal",
	ColumnFloat32:  "float32",
	ColumnFloat64:  "float64",
	ColumnBinary:   "binary",
	ColumnDuration: "duration",
	ColumnUUID:     "uuid",
	ColumnOther:    "other",
}

var columnTypeAliases = map[string]ColumnType{
	"string":  ColumnText,
	"char":    ColumnText,
	"bool":    ColumnBoolean,
	"sbyte":   ColumnInt8,
	"byte":    ColumnUint8,
	"short":   ColumnInt16,
	"ushort":  ColumnUint16,
	"int":     ColumnInt32,
	"uint":    ColumnUint32,
	"long":    ColumnInt64,
	"ulong":   ColumnUint64,
	"date":    ColumnDateTime,
	"time":    ColumnDateTime,
	"numeric": ColumnDecimal,
	"single":  ColumnFloat32,
	"float":   ColumnFloat32,
	"double":  ColumnFloat64,
	"bytes":   ColumnBinary,
	"guid":    ColumnUUID,
}

func (t ColumnType) String() string {
	if name, ok := columnTypeNames[t]; ok {
		return name
	}
	return "other"
}

// ParseColumnType resolves a column type by its name or a common alias,
// case-insensitively. Unknown names resolve to ColumnOther.
func ParseColumnType(name string) ColumnType {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range columnTypeNames {
		if n == name {
			return t
		}
	}
	if t, ok := columnTypeAliases[name]; ok {
		return t
	}
	return ColumnOther
}

// Column describes a named, typed column of a Table.
type Column struct {
	Name string
	Type ColumnType
}

// Row holds one value per column, nil marks an absent value.
type Row []any

// Table is the in-memory source of a DBF file.
type Table struct {
	Columns []Column
	Rows    []Row
}

func NewTable(columns ...Column) *Table {
	return &Table{
		Columns: columns,
	}
}

// AddRow appends a row, the number of values must match the number of columns.
func (t *Table) AddRow(values ...any) error {
	if len(values) != len(t.Columns) {
		return errors.Errorf("row has %d values for %d columns: %w",
			len(values), len(t.Columns), ErrRowArity)
	}
	t.Rows = append(t.Rows, Row(values))
	return nil
}

func (t *Table) NumRows() int {
	return len(t.Rows)
}

func (t *Table) validate() error {
	if t == nil {
		return ErrNilTable
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return errors.Errorf("row %d has %d values for %d columns: %w",
				i, len(row), len(t.Columns), ErrRowArity)
		}
	}
	return nil
}
