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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-glosser/analysis"
	"github.com/ianlewis/go-glosser/internal/app"
)

var analyzeCommand = &cli.Command{
	Name:      "analyze",
	Usage:     "look up every word of text files and print the analysis as JSON",
	ArgsUsage: "FILE...",
	Description: "Reads each FILE, or standard input when FILE is -, and prints one\n" +
		"JSON analysis per line of output.",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "resource",
			Usage:   "look up in resource `ID`; all resources if not given",
			Aliases: []string{"r"},
		},
		&cli.StringFlag{
			Name:  "tokenizer",
			Usage: "split lines with `NAME` (unicode, japanese)",
		},
		&cli.BoolFlag{
			Name:  "indent",
			Usage: "indent the JSON output",
		},
	},
	Action: func(c *cli.Context) error {
		files := c.Args().Slice()
		if len(files) == 0 {
			return fmt.Errorf("%w: no files given", ErrFlagParse)
		}

		e, err := setup(c)
		if err != nil {
			return err
		}
		defer e.close(c.Context)

		if t := c.String("tokenizer"); t != "" {
			e.cfg.Analysis.Tokenizer = t
		}
		a, err := app.NewAnalyzer(e.catalogue, e.cfg.Analysis, e.logger)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrGlosser, err)
		}

		enc := json.NewEncoder(c.App.Writer)
		if c.Bool("indent") {
			enc.SetIndent("", "  ")
		}
		ids := e.resourceIDs(c)
		for _, path := range files {
			src, err := readSource(c.App.Reader, path)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrGlosser, err)
			}
			ta, err := a.Analyze(c.Context, src, ids)
			if ta != nil {
				if encErr := enc.Encode(ta); encErr != nil {
					return fmt.Errorf("%w: writing analysis: %w", ErrGlosser, encErr)
				}
			}
			if err != nil {
				return fmt.Errorf("%w: analyzing %q: %w", ErrGlosser, path, err)
			}
		}
		return nil
	},
}

// readSource reads a text source from path, or from stdin when path is "-".
// Every source gets a new random id.
func readSource(stdin io.Reader, path string) (analysis.Source, error) {
	var b []byte
	var err error
	name := filepath.Base(path)
	if path == "-" {
		name = "stdin"
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return analysis.Source{}, fmt.Errorf("reading %q: %w", path, err)
	}
	return analysis.Source{
		ID:    uuid.NewString(),
		Name:  name,
		Lines: analysis.SplitLines(string(b)),
	}, nil
}
