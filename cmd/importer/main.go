package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/enem-prep/backend/internal/config"
	"github.com/enem-prep/backend/internal/database"
	"github.com/enem-prep/backend/internal/importer"
)

var (
	version = "v0.0.1-default"

	fileFlag = &cli.StringFlag{
		Name:     "file",
		Usage:    "Path to the INEP microdata CSV file",
		Required: true,
	}

	yearFlag = &cli.IntFlag{
		Name:     "year",
		Usage:    "Exam year the microdata refers to (e.g. 2022)",
		Required: true,
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}
)

func main() {
	app := &cli.App{
		Name:            "trictl",
		Version:         version,
		Usage:           "Imports INEP microdata item parameters into the simulator database",
		HideHelpCommand: true,
		Flags:           []cli.Flag{debugFlag},
		Commands: []*cli.Command{
			{
				Name:      "import",
				Aliases:   []string{"i"},
				Usage:     "Import calibrated items from a microdata CSV",
				UsageText: "trictl import --file MICRODADOS_ENEM_2022.csv --year 2022",
				Action:    cmdImport,
				Flags:     []cli.Flag{fileFlag, yearFlag},
			},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelInfo
			if c.Bool(debugFlag.Name) {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func cmdImport(c *cli.Context) error {
	path := c.String(fileFlag.Name)
	year := c.Int(yearFlag.Name)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("starting import", "file", path, "year", year)

	summary, err := importer.New(db).ImportFile(c.Context, path, year)
	if err != nil {
		return err
	}

	slog.Info("import finished",
		"imported", summary.Imported,
		"skipped_uncalibrated", summary.SkippedNil,
		"rejected", summary.Rejected,
	)
	return nil
}
