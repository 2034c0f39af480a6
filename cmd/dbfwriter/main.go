package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/urfave/cli"

	godbf "github.com/Ulysses-Xu/go-dbfwriter"
	"github.com/Ulysses-Xu/go-dbfwriter/internal/config"
	"github.com/Ulysses-Xu/go-dbfwriter/internal/logging"
)

var (
	configurationFile string
	codepage          int
	outputDirectory   string
	tableName         string
	verbose           bool
	debug             bool
)

func main() {
	app := &cli.App{
		Name:  "dbfwriter",
		Usage: "Write tables as dBASE III files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config,c",
				Value:       "",
				Usage:       "Load configuration from `FILE` (.toml or .yaml)",
				Destination: &configurationFile,
			},
			&cli.IntFlag{
				Name:        "codepage",
				Usage:       "Codepage of text values, overrides the configuration",
				Destination: &codepage,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "Show verbose output",
				Destination: &verbose,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "Show debug output",
				Destination: &debug,
			},
		},
		Commands: []cli.Command{
			{
				Name:   "sample",
				Usage:  "Write the sample patient table and report the elapsed time",
				Flags:  append(outputFlags(), &cli.IntFlag{Name: "rows", Value: 1000, Usage: "Repetitions of the five sample rows"}),
				Action: sample,
			},
			{
				Name:      "convert",
				Usage:     "Convert a JSON table document into a DBF file",
				ArgsUsage: "FILE.json",
				Flags:     outputFlags(),
				Action:    convert,
			},
			{
				Name:      "inspect",
				Usage:     "Print the header and field descriptors of a DBF file",
				ArgsUsage: "FILE.DBF",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "rows", Usage: "Also print the first `N` records"},
					&cli.IntFlag{Name: "workers", Value: 4, Usage: "Goroutines decoding records"},
				},
				Action: inspect,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "out,o",
			Usage:       "Output `DIR`, overrides the configuration",
			Destination: &outputDirectory,
		},
		&cli.StringFlag{
			Name:        "name,n",
			Value:       "table",
			Usage:       "Table `NAME`, the file is written as NAME.DBF",
			Destination: &tableName,
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configurationFile != "" {
		loaded, err := config.Load(configurationFile)
		if err != nil {
			return nil, cli.NewExitError(fmt.Sprintf("Configuration file couldn't be loaded: %v", err), 3)
		}
		cfg = loaded
	}
	if codepage != 0 {
		cfg.Codepage = codepage
	}
	if outputDirectory != "" {
		cfg.OutputDirectory = outputDirectory
	}

	logging.WithVerbose = verbose
	logging.WithDebug = debug
	if cfg.Logging.Level != "" {
		logging.SetLevel(logging.Name2Level(cfg.Logging.Level))
	}
	return cfg, nil
}

func newWriter(cfg *config.Config) (*godbf.DBFWriter, error) {
	options, err := cfg.Options(time.Now())
	if err != nil {
		return nil, cli.NewExitError(err.Error(), 4)
	}
	dbf, err := godbf.NewDBFWriter(options)
	if err != nil {
		return nil, cli.NewExitError(err.Error(), 4)
	}
	return dbf, nil
}

func writeTable(cfg *config.Config, table *godbf.Table) error {
	dbf, err := newWriter(cfg)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := dbf.Write(table, cfg.OutputDirectory, tableName); err != nil {
		return cli.NewExitError(fmt.Sprintf("Writing %s failed: %v", tableName, err), 5)
	}
	elapsed := time.Since(start)

	path, _ := godbf.TablePath(cfg.OutputDirectory, tableName)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d columns, %d rows, %s written in %s\n",
		path, len(table.Columns), table.NumRows(), bytesize.New(float64(info.Size())), elapsed)
	return nil
}
