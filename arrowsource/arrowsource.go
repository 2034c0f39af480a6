// Package arrowsource turns Apache Arrow records into tables for the DBF
// writer. Arrow types without a DBF counterpart are carried as their string
// form and end up in fallback character fields.
package arrowsource

import (
	"bytes"
	"strings"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/go-errors/errors"
	"github.com/shopspring/decimal"

	godbf "github.com/Ulysses-Xu/go-dbfwriter"
)

var ErrSchemaMismatch = errors.New("records do not share a schema")

var columnTypes = map[arrow.Type]godbf.ColumnType{
	arrow.STRING:       godbf.ColumnText,
	arrow.LARGE_STRING: godbf.ColumnText,
	arrow.BOOL:         godbf.ColumnBoolean,
	arrow.INT8:         godbf.ColumnInt8,
	arrow.UINT8:        godbf.ColumnUint8,
	arrow.INT16:        godbf.ColumnInt16,
	arrow.UINT16:       godbf.ColumnUint16,
	arrow.INT32:        godbf.ColumnInt32,
	arrow.UINT32:       godbf.ColumnUint32,
	arrow.INT64:        godbf.ColumnInt64,
	arrow.UINT64:       godbf.ColumnUint64,
	arrow.FLOAT32:      godbf.ColumnFloat32,
	arrow.FLOAT64:      godbf.ColumnFloat64,
	arrow.DATE32:       godbf.ColumnDateTime,
	arrow.DATE64:       godbf.ColumnDateTime,
	arrow.TIMESTAMP:    godbf.ColumnDateTime,
	arrow.DECIMAL128:   godbf.ColumnDecimal,
	arrow.DECIMAL256:   godbf.ColumnDecimal,
	arrow.BINARY:       godbf.ColumnBinary,
	arrow.LARGE_BINARY: godbf.ColumnBinary,
	arrow.DURATION:     godbf.ColumnDuration,
}

// ColumnType maps an Arrow data type to the column type of the writer.
func ColumnType(dt arrow.DataType) godbf.ColumnType {
	if t, ok := columnTypes[dt.ID()]; ok {
		return t
	}
	return godbf.ColumnOther
}

// Columns converts an Arrow schema into table columns.
func Columns(schema *arrow.Schema) []godbf.Column {
	columns := make([]godbf.Column, schema.NumFields())
	for i, field := range schema.Fields() {
		columns[i] = godbf.Column{
			Name: field.Name,
			Type: ColumnType(field.Type),
		}
	}
	return columns
}

// FromRecords copies the rows of all records, in order, into a new table.
// Every record must have the schema of the first one.
func FromRecords(records ...arrow.Record) (*godbf.Table, error) {
	if len(records) == 0 {
		return nil, errors.New("no records")
	}
	schema := records[0].Schema()
	table := godbf.NewTable(Columns(schema)...)
	for _, record := range records {
		if !record.Schema().Equal(schema) {
			return nil, ErrSchemaMismatch
		}
		appendRecord(table, record)
	}
	return table, nil
}

// FromRecord copies the rows of a single record into a new table.
func FromRecord(record arrow.Record) (*godbf.Table, error) {
	return FromRecords(record)
}

func appendRecord(table *godbf.Table, record arrow.Record) {
	numRows := int(record.NumRows())
	rows := make([]godbf.Row, numRows)
	for i := range rows {
		rows[i] = make(godbf.Row, record.NumCols())
	}
	for c, column := range record.Columns() {
		for r := 0; r < numRows; r++ {
			rows[r][c] = cellValue(column, r)
		}
	}
	table.Rows = append(table.Rows, rows...)
}

// cellValue returns the Go value of one cell, nil for nulls.
func cellValue(column arrow.Array, i int) any {
	if column.IsNull(i) {
		return nil
	}
	switch a := column.(type) {
	case *array.String:
		return strings.Clone(a.Value(i))
	case *array.LargeString:
		return strings.Clone(a.Value(i))
	case *array.Boolean:
		return a.Value(i)
	case *array.Int8:
		return a.Value(i)
	case *array.Uint8:
		return a.Value(i)
	case *array.Int16:
		return a.Value(i)
	case *array.Uint16:
		return a.Value(i)
	case *array.Int32:
		return a.Value(i)
	case *array.Uint32:
		return a.Value(i)
	case *array.Int64:
		return a.Value(i)
	case *array.Uint64:
		return a.Value(i)
	case *array.Float32:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.Date32:
		return a.Value(i).ToTime().UTC()
	case *array.Date64:
		return a.Value(i).ToTime().UTC()
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit)
	case *array.Decimal128:
		scale := a.DataType().(*arrow.Decimal128Type).Scale
		return decimal.NewFromBigInt(a.Value(i).BigInt(), -scale)
	case *array.Binary:
		return bytes.Clone(a.Value(i))
	}
	// everything else, decimal256 and durations included, goes through its
	// string form
	return column.ValueStr(i)
}
