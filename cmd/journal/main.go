package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yigit/unijournal/internal/app/importer"
	"github.com/yigit/unijournal/internal/bootstrap"
	"github.com/yigit/unijournal/internal/pkg/logger"
	"github.com/yigit/unijournal/internal/server"
)

func main() {
	app := &cli.App{
		Name:  "journal",
		Usage: "university grade journal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   bootstrap.DefaultConfigPath,
				EnvVars: []string{"JOURNAL_CONFIG"},
				Usage:   "path to the YAML configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the journal HTTP API",
				Action: serve,
			},
			{
				Name:  "import",
				Usage: "reconcile a spreadsheet into the journal and print the import report",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: ".xlsx or .csv file to import"},
					&cli.BoolFlag{Name: "no-seed", Usage: "start from an empty journal instead of the demo data"},
				},
				Action: runImport,
			},
			{
				Name:  "template",
				Usage: "write an empty import workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "journal_template.xlsx", Usage: "output path"},
				},
				Action: writeTemplate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func serve(cCtx *cli.Context) error {
	srv, err := server.NewServer(cCtx.String("config"), nil)
	if err != nil {
		return err
	}
	if err := srv.Run(cCtx.Context); err != nil {
		return err
	}
	logger.Info().Msg("Application finished gracefully.")
	return nil
}

func runImport(cCtx *cli.Context) error {
	// Logs go to stderr so stdout carries only the report
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(cCtx.String("config"), os.Stderr)
	if err != nil {
		return err
	}
	if cCtx.Bool("no-seed") {
		cfg.Seed.Enabled = false
	}

	path := cCtx.String("file")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	deps := bootstrap.BuildDependencies(cfg, bootstrap.InitialDataset(cfg, lgr), lgr)
	report, err := deps.Services.Import.ImportFile(cCtx.Context, path, f)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cCtx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeTemplate(cCtx *cli.Context) error {
	buf := &bytes.Buffer{}
	if err := importer.WriteTemplate(buf); err != nil {
		return err
	}
	out := cCtx.String("out")
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	fmt.Fprintf(cCtx.App.Writer, "Template written to %s\n", out)
	return nil
}
