// Package dataset loads the static vaccine reference data, either from the
// bundled seed files or from a directory on disk.
package dataset

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/giygas/vaccines-api/dataset/entities"
	"github.com/giygas/vaccines-api/interfaces"
	"github.com/giygas/vaccines-api/logging"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

//go:embed seed/*
var seedFS embed.FS

// Compile-time check to ensure Loader implements DatasetLoader interface
var _ interfaces.DatasetLoader = (*Loader)(nil)

// ErrMissingFile is returned when a required collection file is absent.
var ErrMissingFile = errors.New("missing dataset file")

// SourceEmbedded is the Source of a loader reading the bundled seed files.
const SourceEmbedded = "embedded"

// Collection file base names. Each one may be stored as .json, .yaml or .yml.
const (
	FilePathogens     = "pathogens"
	FileVaccines      = "vaccines"
	FileManufacturers = "manufacturers"
	FileLicensers     = "licensers"
	FilePipeline      = "pipeline"
	FileNitags        = "nitags.txt"
)

var extensions = []string{".json", ".yaml", ".yml"}

// Loader reads a Dataset from a file system.
type Loader struct {
	fsys   fs.FS
	source string
}

// NewLoader returns a loader over dataDir, or over the bundled seed files when
// dataDir is empty.
func NewLoader(dataDir string) *Loader {
	if dataDir == "" {
		sub, err := fs.Sub(seedFS, "seed")
		if err != nil {
			// seed is a literal directory of the embed pattern
			panic(err)
		}
		return NewLoaderFS(sub, SourceEmbedded)
	}
	return NewLoaderFS(os.DirFS(dataDir), dataDir)
}

func NewLoaderFS(fsys fs.FS, source string) *Loader {
	return &Loader{fsys: fsys, source: source}
}

// Source describes where the data comes from.
func (l *Loader) Source() string {
	return l.source
}

// Load reads every collection concurrently. The first error cancels the
// remaining reads. Pathogens, vaccines, manufacturers and licensers are
// required; the pipeline and NITAG files are optional.
func (l *Loader) Load(ctx context.Context) (*entities.Dataset, error) {
	start := time.Now()
	ds := &entities.Dataset{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loadCollection(ctx, l.fsys, FilePathogens, true, &ds.Pathogens) })
	g.Go(func() error { return loadCollection(ctx, l.fsys, FileVaccines, true, &ds.Vaccines) })
	g.Go(func() error { return loadCollection(ctx, l.fsys, FileManufacturers, true, &ds.Manufacturers) })
	g.Go(func() error { return loadCollection(ctx, l.fsys, FileLicensers, true, &ds.Licensers) })
	g.Go(func() error { return loadCollection(ctx, l.fsys, FilePipeline, false, &ds.PipelineVaccines) })
	g.Go(func() error {
		nitags, err := loadNitags(ctx, l.fsys)
		ds.Nitags = nitags
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s: %w", l.source, err)
	}

	logging.Info("Dataset loaded",
		"source", l.source,
		"pathogens", len(ds.Pathogens),
		"vaccines", len(ds.Vaccines),
		"manufacturers", len(ds.Manufacturers),
		"licensers", len(ds.Licensers),
		"pipeline_vaccines", len(ds.PipelineVaccines),
		"nitags", len(ds.Nitags),
		"duration", time.Since(start),
	)
	return ds, nil
}

// findFile returns the first existing name of base with a known extension.
func findFile(fsys fs.FS, base string) (string, bool) {
	for _, ext := range extensions {
		name := base + ext
		if _, err := fs.Stat(fsys, name); err == nil {
			return name, true
		}
	}
	return "", false
}

func loadCollection[T any](ctx context.Context, fsys fs.FS, base string, required bool, dst *[]T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name, ok := findFile(fsys, base)
	if !ok {
		if required {
			return fmt.Errorf("%s: %w", base, ErrMissingFile)
		}
		logging.Debug("Optional dataset file not found", "file", base)
		*dst = []T{}
		return nil
	}

	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	items, err := decodeCollection[T](name, raw)
	if err != nil {
		return err
	}
	*dst = items
	return nil
}

func decodeCollection[T any](name string, raw []byte) ([]T, error) {
	items := []T{}
	switch path.Ext(name) {
	case ".json":
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		if err := dec.Decode(&items); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func loadNitags(ctx context.Context, fsys fs.FS) ([]entities.CountryNitag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := fsys.Open(FileNitags)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Debug("Optional dataset file not found", "file", FileNitags)
		return []entities.CountryNitag{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", FileNitags, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("Failed to close NITAG file", "error", err)
		}
	}()

	nitags, _, err := ParseNitags(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FileNitags, err)
	}
	return nitags, nil
}
