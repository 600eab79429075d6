// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-glosser"
	"github.com/ianlewis/go-glosser/internal/app"
	"github.com/ianlewis/go-glosser/internal/config"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrGlosser is a parent error for all command errors.
var ErrGlosser = errors.New("glosser")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrGlosser)

var copyrightNames = []string{
	"2026 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name
	// argument. The root --help flag is handled by the app's action instead.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// env is the state shared by commands.
type env struct {
	cfg       *config.Config
	logger    *slog.Logger
	catalogue *glosser.Catalogue
}

// setup loads the configuration and the catalogue. The caller must close the
// catalogue.
func setup(c *cli.Context) (*env, error) {
	if path := c.String("config"); path != "" {
		if err := os.Setenv(config.PathEnv, path); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGlosser, err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGlosser, err)
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	for _, dir := range c.StringSlice("data-dir") {
		if !slices.Contains(cfg.DataDirs, dir) {
			cfg.DataDirs = append(cfg.DataDirs, dir)
		}
	}

	logger := app.NewLogger(cfg.Log)
	cat, err := app.LoadCatalogue(c.Context, cfg, logger)
	if err != nil {
		// Resources loaded before the timeout are still usable.
		logger.WarnContext(c.Context, "resource loading incomplete", "error", err)
	}
	return &env{
		cfg:       cfg,
		logger:    logger,
		catalogue: cat,
	}, nil
}

// resourceIDs returns the resource ids named on the command line, or every
// registered resource when none are named.
func (e *env) resourceIDs(c *cli.Context) []string {
	if ids := c.StringSlice("resource"); len(ids) > 0 {
		return ids
	}
	var ids []string
	for _, d := range e.catalogue.List(glosser.LanguageCode{}) {
		ids = append(ids, d.ID)
	}
	return ids
}

func (e *env) close(ctx context.Context) {
	if err := e.catalogue.Close(); err != nil {
		e.logger.WarnContext(ctx, "closing resources", "error", err)
	}
}

func newGlosserApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Look up every word of a text in dictionaries.",
		Description: strings.Join([]string{
			"Text glossing utility written in Go.",
			"http://github.com/ianlewis/go-glosser",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
			},
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "include dictionaries in `DIR`, organized by language",
				Aliases: []string{"d"},
				Value:   cli.NewStringSlice(dictLocations()...),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log at `LEVEL` (debug, info, warn, error)",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			listCommand,
			languagesCommand,
			queryCommand,
			analyzeCommand,
		},
	}
}
