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
	"fmt"

	"github.com/urfave/cli/v2"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "look up words",
	ArgsUsage: "WORD...",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "resource",
			Usage:   "look up in resource `ID`; all resources if not given",
			Aliases: []string{"r"},
		},
	},
	Action: func(c *cli.Context) error {
		words := c.Args().Slice()
		if len(words) == 0 {
			return fmt.Errorf("%w: no words given", ErrFlagParse)
		}

		e, err := setup(c)
		if err != nil {
			return err
		}
		defer e.close(c.Context)

		handles, err := e.catalogue.Resolve(e.resourceIDs(c))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrGlosser, err)
		}

		w := c.App.Writer
		for _, word := range words {
			for _, h := range handles {
				defs, err := h.Resource.Lookup(c.Context, word)
				if err != nil {
					e.logger.WarnContext(c.Context, "lookup failed", "resource", h.Descriptor.ID, "word", word, "error", err)
					continue
				}
				for _, def := range defs {
					fmt.Fprintf(w, "%s [%s]\n%s\n\n", word, h.Descriptor.ID, def)
				}
			}
		}
		return nil
	},
}
