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

package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-glosser"
	"github.com/ianlewis/go-glosser/idx"
	"github.com/ianlewis/go-glosser/internal/config"
	"github.com/ianlewis/go-glosser/internal/folding"
	"github.com/ianlewis/go-glosser/procedural"
	"github.com/ianlewis/go-glosser/store"
)

// LoadCatalogue builds a catalogue from the resources declared in cfg
// followed by the dictionaries found in the data directories. Data
// directories hold one subdirectory per language code, for example
// "sa/mw/mw.ifo".
//
// A resource that fails to load is logged and skipped. Loading stops when
// cfg.LoadTimeout expires; the resources loaded until then are kept and the
// context error is returned with the catalogue. The caller must close the
// catalogue.
func LoadCatalogue(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*glosser.Catalogue, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	c := glosser.NewCatalogue()
	for _, rc := range cfg.Resources {
		if ctx.Err() != nil {
			break
		}
		if err := loadResource(ctx, c, cfg.Store, rc); err != nil {
			logger.WarnContext(ctx, "skipping resource", "id", rc.ID, "path", rc.Path, "error", err)
			continue
		}
		logger.InfoContext(ctx, "loaded resource", "id", rc.ID, "format", rc.Format)
	}

	for _, dir := range cfg.DataDirs {
		if ctx.Err() != nil {
			break
		}
		loadDataDir(ctx, c, cfg.Store, dir, logger)
	}

	if err := ctx.Err(); err != nil {
		return c, fmt.Errorf("loading resources: %w", err)
	}
	return c, nil
}

func loadResource(ctx context.Context, c *glosser.Catalogue, sc config.StoreConfig, rc config.ResourceConfig) error {
	d := glosser.Descriptor{
		ID:   rc.ID,
		Name: rc.Name,
	}
	var err error
	if d.Language, err = glosser.ParseLanguageCode(rc.Language); err != nil {
		return err
	}
	for _, l := range rc.SecondaryLanguages {
		code, err := glosser.ParseLanguageCode(l)
		if err != nil {
			return err
		}
		d.SecondaryLanguages = append(d.SecondaryLanguages, code)
	}
	if d.Format, err = glosser.ParseFormatKind(rc.Format); err != nil {
		return err
	}

	var r glosser.Resource
	switch d.Format {
	case glosser.FormatProcedural:
		fn, err := procedural.Load(rc.Procedure, rc.Path)
		if err != nil {
			return err
		}
		d.Source = "builtin:" + procedural.Canonical(rc.Procedure)
		if rc.Path != "" {
			d.Source = rc.Path
		}
		r = glosser.NewProceduralResource(fn)
	default:
		fold := sc.Fold
		if rc.Fold != "" {
			fold = rc.Fold
		}
		opts, err := OpenOptions(sc, fold)
		if err != nil {
			return err
		}
		sd, err := glosser.Open(ctx, rc.Path, opts)
		if err != nil {
			return err
		}
		if d.Name == "" {
			d.Name = sd.Bookname()
		}
		d.Source = sd.Path()
		d.EntryCount = int(sd.WordCount())
		r = sd
	}

	if err := c.Register(d, r); err != nil {
		closeResource(r)
		return err
	}
	return nil
}

func loadDataDir(ctx context.Context, c *glosser.Catalogue, sc config.StoreConfig, dir string, logger *slog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.WarnContext(ctx, "skipping data directory", "path", dir, "error", err)
		return
	}
	opts, err := OpenOptions(sc, sc.Fold)
	if err != nil {
		logger.WarnContext(ctx, "skipping data directory", "path", dir, "error", err)
		return
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		lang, err := glosser.ParseLanguageCode(e.Name())
		if err != nil {
			logger.DebugContext(ctx, "skipping directory", "path", path, "error", err)
			continue
		}

		dicts, errs := glosser.OpenAll(ctx, path, opts)
		for _, err := range errs {
			logger.WarnContext(ctx, "skipping dictionary", "error", err)
		}
		for _, sd := range dicts {
			id := strings.TrimSuffix(filepath.Base(sd.Path()), filepath.Ext(sd.Path()))
			err := c.Register(glosser.Descriptor{
				ID:         id,
				Name:       sd.Bookname(),
				Language:   lang,
				Format:     glosser.FormatSortedIndex,
				Source:     sd.Path(),
				EntryCount: int(sd.WordCount()),
			}, sd)
			if err != nil {
				logger.WarnContext(ctx, "skipping dictionary", "id", id, "path", sd.Path(), "error", err)
				_ = sd.Close()
				continue
			}
			logger.InfoContext(ctx, "loaded resource", "id", id, "path", sd.Path())
		}
	}
}

// OpenOptions returns the dictionary open options for sc, folding keys with
// the named folder.
func OpenOptions(sc config.StoreConfig, fold string) (*glosser.OpenOptions, error) {
	order, err := idx.ParseOrder(sc.Order)
	if err != nil {
		return nil, err
	}
	folder, err := folding.ByName(fold)
	if err != nil {
		return nil, err
	}
	return &glosser.OpenOptions{
		Store: &store.Options{
			Mmap:        !sc.NoMmap,
			CacheChunks: max(sc.CacheChunks, 0),
			Verify:      sc.VerifyChecksum,
		},
		Order:  order,
		Folder: folder,
	}, nil
}

func closeResource(r glosser.Resource) {
	if c, ok := r.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}
