package godbf

import (
	"io"
	"strings"

	"github.com/Ulysses-Xu/go-dbfwriter/internal/logging"
)

type DBF interface {
	Write(table *Table, dir, tableName string) error
	Encode(w io.Writer, table *Table) error
}

// DBFWriter writes tables as dBASE III files. It keeps no per-write state
// and may be reused for any number of tables.
type DBFWriter struct {
	options  Options
	codepage *Codepage
	logger   *logging.Logger
}

const (
	SPACE = 0x20
	EOF   = 0x1A
	NUL   = 0x00

	HeaderTerminator = 0x0D
)

var _ DBF = (*DBFWriter)(nil)

func NewDBFWriter(options Options) (*DBFWriter, error) {
	codepage, err := LookupCodepage(options.codepage())
	if err != nil {
		return nil, err
	}
	return &DBFWriter{
		options:  options,
		codepage: codepage,
		logger:   logging.NewLogger("DBFWriter"),
	}, nil
}

// Write stores table in dir/tableName.DBF using the given codepage, 0 selects
// DefaultCodepage. An existing file is replaced.
func Write(table *Table, dir, tableName string, codepage int) error {
	dbf, err := NewDBFWriter(Options{Codepage: codepage})
	if err != nil {
		return err
	}
	return dbf.Write(table, dir, tableName)
}

func (dbf *DBFWriter) Codepage() *Codepage {
	return dbf.codepage
}

// Write stores table in dir/tableName.DBF. An existing file is replaced; on
// failure no file is left behind.
func (dbf *DBFWriter) Write(table *Table, dir, tableName string) error {
	// schema first, a failing inference must not touch an existing file
	schema, err := dbf.InferSchema(table)
	if err != nil {
		return err
	}
	err = withFileSink(dir, tableName, func(w io.Writer) error {
		return dbf.encode(w, table, schema)
	})
	if err != nil {
		return err
	}
	dbf.logger.Verbosef("wrote %s: %d records of %d bytes, codepage %d",
		tableName+fileExtension, table.NumRows(), schema.RecordLength(), dbf.codepage.Number)
	return nil
}

// Encode writes the complete DBF image of table, terminated by the end of
// file marker, to w.
func (dbf *DBFWriter) Encode(w io.Writer, table *Table) error {
	schema, err := dbf.InferSchema(table)
	if err != nil {
		return err
	}
	return dbf.encode(w, table, schema)
}

// InferSchema derives the field layout of table with the writer's codepage
// and unsupported type policy.
func (dbf *DBFWriter) InferSchema(table *Table) (*Schema, error) {
	schema, err := InferSchema(table, dbf.codepage, dbf.options.UnsupportedTypes)
	if err != nil {
		return nil, err
	}
	if downgraded := schema.Downgraded(); len(downgraded) > 0 {
		dbf.logger.Warnf("columns stored as %d byte character fields: %s",
			fallbackTemplate.length, strings.Join(downgraded, ", "))
	}
	dbf.logger.Debugf("schema: %d fields, header %d bytes, record %d bytes",
		schema.Len(), schema.HeaderLength(), schema.RecordLength())
	return schema, nil
}

func (dbf *DBFWriter) encode(w io.Writer, table *Table, schema *Schema) error {
	if err := encodeHeader(w, schema, table.NumRows(), dbf.codepage, dbf.options.LastUpdate); err != nil {
		return err
	}
	records := newRecordEncoder(schema, dbf.codepage, dbf.options.BlankEmptyValues)
	for i, row := range table.Rows {
		if err := records.encode(w, i, row); err != nil {
			return err
		}
	}
	// dbf文件最后一个字符以0x1A作为结束标志
	_, err := w.Write([]byte{EOF})
	return err
}
