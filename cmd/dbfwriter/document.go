package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-errors/errors"
	"github.com/goccy/go-json"
	"github.com/urfave/cli"

	godbf "github.com/Ulysses-Xu/go-dbfwriter"
)

// document is the JSON form of a table:
//
//	{"columns": [{"name": "id", "type": "int32"}], "rows": [[1], [2]]}
type document struct {
	Columns []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"columns"`
	Rows [][]any `json:"rows"`
}

// decodeDocument reads a table document. Numbers are kept as json.Number so
// that no precision is lost before they are rendered.
func decodeDocument(r io.Reader) (*godbf.Table, error) {
	var doc document
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Errorf("decoding table document: %w", err)
	}

	table := godbf.NewTable()
	for _, column := range doc.Columns {
		table.Columns = append(table.Columns, godbf.Column{
			Name: column.Name,
			Type: godbf.ParseColumnType(column.Type),
		})
	}
	for i, values := range doc.Rows {
		for c, value := range values {
			// text widths only count strings
			if c < len(table.Columns) && table.Columns[c].Type == godbf.ColumnText && value != nil {
				if _, ok := value.(string); !ok {
					values[c] = fmt.Sprint(value)
				}
			}
		}
		if err := table.AddRow(values...); err != nil {
			return nil, errors.Errorf("row %d: %w", i, err)
		}
	}
	return table, nil
}

func convert(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return cli.NewExitError("convert needs exactly one input file", 2)
	}
	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	table, err := decodeDocument(f)
	if err != nil {
		return cli.NewExitError(err.Error(), 4)
	}
	return writeTable(cfg, table)
}
