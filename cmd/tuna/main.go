package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ha1tch/tuna/ahi"
	"github.com/ha1tch/tuna/editor"
	"github.com/ha1tch/tuna/palette"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "tuna"
	app.Usage = "pixel editor for AHI images and AHF fonts"
	app.Version = "0.1.0"
	app.ArgsUsage = "[FILE]"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"TUNA_VERBOSE"},
			Usage:   "increase verbosity",
		},
		&cli.IntFlag{
			Name:    "scale",
			EnvVars: []string{"TUNA_SCALE"},
			Value:   2,
			Usage:   "window scale, 0 to fit the monitor",
		},
		&cli.StringFlag{
			Name:    "palette",
			EnvVars: []string{"TUNA_PALETTE"},
			Usage:   "RIFF PAL file with the palettes for new documents",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() > 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		level := slog.LevelInfo
		if c.Bool("verbose") {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		scale := c.Int("scale")
		if scale < 0 {
			return cli.Exit(fmt.Sprintf("invalid scale: %d", scale), 1)
		}

		var palettes []ahi.Palette
		if name := c.String("palette"); name != "" {
			pals, err := palette.Load(name)
			if err != nil {
				return cli.Exit(fmt.Errorf("could not load palette %q: %w", name, err), 1)
			}
			palettes = pals
		}

		st := editor.NewState(logger, palettes)
		if path := c.Args().First(); path != "" {
			_, err := os.Stat(path)
			switch {
			case err == nil:
				if err := st.Load(path); err != nil {
					return cli.Exit(err, 1)
				}
			case errors.Is(err, fs.ErrNotExist):
				logger.Info("starting a new document", "path", path)
			default:
				return cli.Exit(fmt.Errorf("could not open %q: %w", path, err), 1)
			}
		}

		run(st, scale, logger)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("tuna failed", "error", err)
		os.Exit(1)
	}
}
