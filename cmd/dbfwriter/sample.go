package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli"

	godbf "github.com/Ulysses-Xu/go-dbfwriter"
)

var samplePatients = []struct {
	dosage  int32
	drug    string
	patient string
}{
	{25, "Indocin", "David"},
	{50, "Enebrel", "Sam"},
	{10, "Hydralazine", "Christoff"},
	{21, "Combivent", "Janet"},
	{100, "Dilantin", "Melanie"},
}

// sampleTable builds repetitions times the five sample patients. The Dd
// column holds a long description that ends up cut to 255 bytes.
func sampleTable(repetitions int, now time.Time) *godbf.Table {
	table := godbf.NewTable(
		godbf.Column{Name: "Dosage", Type: godbf.ColumnInt32},
		godbf.Column{Name: "Drug", Type: godbf.ColumnText},
		godbf.Column{Name: "Patient", Type: godbf.ColumnText},
		godbf.Column{Name: "Dat", Type: godbf.ColumnDateTime},
		godbf.Column{Name: "Dd", Type: godbf.ColumnText},
	)

	var sb strings.Builder
	for i := 0; i < 1000; i++ {
		sb.WriteString(strconv.Itoa(i))
	}
	description := sb.String()

	for i := 0; i < repetitions; i++ {
		for _, p := range samplePatients {
			table.Rows = append(table.Rows, godbf.Row{p.dosage, p.drug, p.patient, now, description})
		}
	}
	return table
}

func sample(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return writeTable(cfg, sampleTable(c.Int("rows"), time.Now()))
}
