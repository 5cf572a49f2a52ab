package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Verbose bool `short:"v" help:"Log every file processed"`

	Import  ImportCmd  `cmd:"" help:"Convert PNG files into an AHI collection"`
	Export  ExportCmd  `cmd:"" help:"Write the images of an AHI or AHF file as PNG, BMP or TIFF"`
	Palette PaletteCmd `cmd:"" help:"Extract the palettes of an AHI or AHF file to a RIFF PAL file"`
	Info    InfoCmd    `cmd:"" help:"Describe AHI and AHF files"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("ahiconv"),
		kong.Description("Batch conversion for AHI images and AHF fonts."),
		kong.UsageOnError(),
	)

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	kctx.FatalIfErrorf(kctx.Run(logger))
}
