package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli"

	godbf "github.com/Ulysses-Xu/go-dbfwriter"
	"github.com/Ulysses-Xu/go-dbfwriter/internal/dbfinspect"
)

func inspect(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return cli.NewExitError("inspect needs exactly one DBF file", 2)
	}
	codepage, err := godbf.LookupCodepage(cfg.Codepage)
	if err != nil {
		return cli.NewExitError(err.Error(), 4)
	}
	file, err := dbfinspect.OpenFile(c.Args().First(), codepage)
	if err != nil {
		return cli.NewExitError(err.Error(), 5)
	}
	return printFile(os.Stdout, file, c.Int("rows"), c.Int("workers"))
}

func printFile(out io.Writer, file *dbfinspect.File, rows, workers int) error {
	h := file.Header
	fmt.Fprintf(out, "version:        0x%02x\n", h.Version)
	fmt.Fprintf(out, "last update:    %04d-%02d-%02d\n",
		1900+int(h.LastUpdateYear), h.LastUpdateMonth, h.LastUpdateDay)
	fmt.Fprintf(out, "records:        %d\n", h.NumRecords)
	fmt.Fprintf(out, "header length:  %d\n", h.HeaderLength)
	fmt.Fprintf(out, "record length:  %d\n", h.RecordLength)
	fmt.Fprintf(out, "language driver: 0x%02x\n", h.LanguageDriverID)
	fmt.Fprintf(out, "eof marker:     %t\n\n", file.HasEOFMarker())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tLENGTH\tDECIMAL")
	for i, field := range file.Fields {
		fmt.Fprintf(tw, "%s\t%c\t%d\t%d\n", file.Columns[i], field.Type, field.Length, field.Decimal)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if rows <= 0 {
		return nil
	}

	values, err := file.AllValues(workers)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(file.Columns, "\t"))
	for i := 0; i < rows && i < len(values); i++ {
		fmt.Fprintln(tw, strings.Join(values[i], "\t"))
	}
	return tw.Flush()
}
