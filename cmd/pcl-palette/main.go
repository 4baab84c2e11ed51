// seehuhn.de/go/pcl - color palettes for PCL interpreters
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// pcl-palette replays a script of PCL palette commands and prints the
// resulting palette.
//
// The script is a YAML file with a list of commands, for example:
//
//	commands:
//	  - op: configure
//	    data: "00 00 03 08 08 08"
//	  - op: entry
//	    index: 1
//	    color: [0, 128, 255]
//
// Settings are read from the file given by --config, or from the file
// named by the PCL_PALETTE_CONFIG environment variable.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"seehuhn.de/go/pcl/state"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var configPath, profilePath, pngPath string
	var precision, memoryLimit int
	var keepGoing, verbose bool
	var swatchMode string

	flagSet := pflag.NewFlagSet("pcl-palette", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "settings file (default $"+envConfig+")")
	flagSet.StringVar(&profilePath, "profile", "", "ICC profile of the output device")
	flagSet.StringVar(&pngPath, "png", "", "write a swatch sheet to this PNG file")
	flagSet.IntVar(&precision, "precision", -1, "digits after the decimal point")
	flagSet.IntVar(&memoryLimit, "memory", -1, "memory limit for palette objects in bytes")
	flagSet.BoolVarP(&keepGoing, "keep-going", "k", false, "continue after failed commands")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	flagSet.StringVar(&swatchMode, "swatch", "auto", "show color swatches: auto, always or never")
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pcl-palette [options] job.yaml\n\nOptions:\n")
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return fmt.Errorf("expected one job file, got %d arguments", flagSet.NArg())
	}

	settings, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("precision") {
		settings.Precision = precision
	}
	if flagSet.Changed("memory") {
		settings.MemoryLimit = memoryLimit
	}
	if flagSet.Changed("profile") {
		settings.Profile = profilePath
	}
	if keepGoing {
		settings.KeepGoing = true
	}
	if verbose {
		settings.LogLevel = "debug"
	}
	level, err := settings.level()
	if err != nil {
		return err
	}
	logger := newLogger(level)

	swatch, err := useSwatches(swatchMode, stdout)
	if err != nil {
		return err
	}

	var profile []byte
	if settings.Profile != "" {
		profile, err = os.ReadFile(settings.Profile)
		if err != nil {
			return err
		}
	}

	f, err := os.Open(flagSet.Arg(0))
	if err != nil {
		return err
	}
	job, err := readJob(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", flagSet.Arg(0), err)
	}

	s, err := state.New(&state.Options{
		MemoryLimit: settings.MemoryLimit,
		Profile:     profile,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	if err := replay(s, job, settings.KeepGoing, logger); err != nil {
		return err
	}

	v := s.Render()
	defer v.Release()
	if err := printPalette(stdout, v, settings.Precision, swatch); err != nil {
		return err
	}
	if pngPath != "" {
		if err := writeSheet(pngPath, v); err != nil {
			return err
		}
		logger.Info("swatch sheet written", "file", pngPath)
	}
	return nil
}

// newLogger logs in text form when stderr is a terminal and as JSON
// otherwise.
func newLogger(level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

func useSwatches(mode string, stdout io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := stdout.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid swatch mode %q", mode)
	}
}
