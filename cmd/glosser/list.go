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
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-glosser"
)

var listCommand = &cli.Command{
	Name:      "list",
	Usage:     "list resources",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "language",
			Usage:   "list only resources in `LANG`",
			Aliases: []string{"l"},
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print the resource descriptors as JSON",
		},
	},
	Action: func(c *cli.Context) error {
		var lang glosser.LanguageCode
		if l := c.String("language"); l != "" {
			var err error
			lang, err = glosser.ParseLanguageCode(l)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFlagParse, err)
			}
		}

		e, err := setup(c)
		if err != nil {
			return err
		}
		defer e.close(c.Context)

		descriptors := e.catalogue.List(lang)
		if c.Bool("json") {
			if descriptors == nil {
				descriptors = []glosser.Descriptor{}
			}
			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(descriptors); err != nil {
				return fmt.Errorf("encoding resources: %w", err)
			}
			return nil
		}

		tbl := table.New("ID", "Name", "Language", "Format", "Entries").WithWriter(c.App.Writer)
		for _, d := range descriptors {
			langs := []string{d.Language.String()}
			for _, l := range d.SecondaryLanguages {
				langs = append(langs, l.String())
			}
			tbl.AddRow(d.ID, d.Name, strings.Join(langs, ","), d.Format, d.EntryCount)
		}
		tbl.Print()
		return nil
	},
}

var languagesCommand = &cli.Command{
	Name:      "languages",
	Usage:     "list the languages of the resources",
	ArgsUsage: " ",
	Action: func(c *cli.Context) error {
		e, err := setup(c)
		if err != nil {
			return err
		}
		defer e.close(c.Context)

		grouped := e.catalogue.Grouped()
		tbl := table.New("Language", "Resources").WithWriter(c.App.Writer)
		for _, l := range e.catalogue.Languages() {
			var ids []string
			for _, d := range grouped[l] {
				ids = append(ids, d.ID)
			}
			tbl.AddRow(l, strings.Join(ids, ","))
		}
		tbl.Print()
		return nil
	},
}
