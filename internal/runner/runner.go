// Package runner drives the analysis of configured folders: it loads each
// dataset, analyzes jurisdictions concurrently and writes every sink.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"epicurve/internal/config"
	"epicurve/internal/curve"
	"epicurve/internal/ingest"
	"epicurve/internal/report"
	"epicurve/internal/visuals"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// IndexName is the file name of a folder's chart page.
const IndexName = "index.html"

// ParquetName is the file name of a folder's columnar series export.
const ParquetName = "series.parquet"

// Options select what a run analyzes and which optional sinks it writes.
type Options struct {
	Folder  string
	Only    []string
	Parquet bool
	Open    bool

	// Now stamps generated documents; defaults to time.Now.
	Now func() time.Time
}

// FolderResult summarizes one analyzed folder.
type FolderResult struct {
	Folder    string
	Dir       string
	Analyzed  []curve.Analysis
	Skipped   []string
	IndexPath string
}

// Run analyzes every selected folder in configuration order.
func Run(ctx context.Context, cfg *config.AppConfig, analysis *config.AnalysisConfig, opts Options) ([]FolderResult, error) {
	folders, err := analysis.Select(opts.Folder)
	if err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	results := make([]FolderResult, 0, len(folders))
	for _, f := range folders {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := RunFolder(ctx, cfg, analysis, f, opts)
		if err != nil {
			return results, fmt.Errorf("folder %s: %w", f.Name, err)
		}
		results = append(results, *res)
	}
	return results, nil
}

// RunFolder analyzes one folder and writes its slice log, per-jurisdiction
// slices and documents, the index page and, optionally, the parquet export.
func RunFolder(ctx context.Context, cfg *config.AppConfig, analysis *config.AnalysisConfig, f config.Folder, opts Options) (*FolderResult, error) {
	start := time.Now()
	datasetPath := cfg.DatasetPath(f.Dataset)
	log.Info().Str("folder", f.Name).Str("dataset", datasetPath).Msg("Loading dataset")

	ds, err := ingest.LoadCSV(datasetPath, f.CSVOptions())
	if err != nil {
		return nil, err
	}
	if len(opts.Only) > 0 {
		keys := make([]string, len(opts.Only))
		for i, k := range opts.Only {
			keys[i] = ingest.Key(k)
		}
		ds = ds.Filter(keys)
		if ds.Len() == 0 {
			log.Warn().Str("folder", f.Name).Strs("only", keys).Msg("Filter matches no jurisdiction")
		}
	}

	dir := cfg.FolderDir(f.Name)
	sliceLog, err := report.NewSliceLog(dir)
	if err != nil {
		return nil, err
	}

	analyses, skipped, err := analyzeAll(ctx, ds, analysis, cfg.Workers)
	if err != nil {
		return nil, err
	}

	res := &FolderResult{Folder: f.Name, Dir: dir, Skipped: skipped}
	store := report.NewStore(dir)
	title := analysis.Title
	if title == "" {
		title = config.DefaultAnalysis().Title
	}
	generated := opts.Now()

	var entries []visuals.Entry
	for _, a := range analyses {
		if a == nil {
			continue
		}
		name := ingest.DisplayName(a.Key)

		if err := sliceLog.Append(name, a.Slices); err != nil {
			return nil, err
		}
		if err := store.Save(report.NewSliceRecord(name, *a)); err != nil {
			return nil, err
		}

		doc := visuals.Document(name, title, f.Source, *a, generated)
		if err := os.WriteFile(filepath.Join(dir, a.Key+".md"), []byte(doc), 0644); err != nil {
			return nil, fmt.Errorf("failed to write document for %s: %w", a.Key, err)
		}

		entry := visuals.Entry{Key: a.Key, Name: name, Diagram: visuals.CurveDiagram(name, title, *a)}
		for _, p := range a.Peaks() {
			entry.Peaks = append(entry.Peaks, fmt.Sprintf("%s (%s)", report.FormatCount(p.Value), report.FormatDate(p.Date)))
		}
		entries = append(entries, entry)
		res.Analyzed = append(res.Analyzed, *a)
	}

	res.IndexPath = filepath.Join(dir, IndexName)
	if err := visuals.WriteIndex(res.IndexPath, fmt.Sprintf("%s [%s]", title, f.Name), f.Source, entries); err != nil {
		return nil, err
	}

	if opts.Parquet {
		if err := report.WriteSeriesParquet(res.Analyzed, filepath.Join(dir, ParquetName)); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("folder", f.Name).
		Int("analyzed", len(res.Analyzed)).
		Int("skipped", len(res.Skipped)).
		Str("slices", sliceLog.Path()).
		Dur("elapsed", time.Since(start)).
		Msg("Folder analyzed")

	if opts.Open {
		if err := browser.OpenFile(res.IndexPath); err != nil {
			log.Warn().Err(err).Str("path", res.IndexPath).Msg("Failed to open index in browser")
		}
	}
	return res, nil
}

// analyzeAll runs the pipeline for every jurisdiction of ds with at most
// workers goroutines. Results keep dataset order; a nil entry marks a
// skipped jurisdiction.
func analyzeAll(ctx context.Context, ds *ingest.Dataset, analysis *config.AnalysisConfig, workers int) ([]*curve.Analysis, []string, error) {
	keys := ds.Keys()
	results := make([]*curve.Analysis, len(keys))
	overrides := analysis.YOverrides()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, key := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows, _ := ds.Rows(key)
			a, err := curve.Analyze(key, rows, analysis.SmoothFactorFor(key), overrides)
			if err != nil {
				if curve.IsSkippable(err) {
					log.Warn().Err(err).Str("key", key).Msg("Skipping jurisdiction")
					return nil
				}
				return err
			}
			// Each goroutine owns results[i].
			results[i] = &a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var skipped []string
	for i, a := range results {
		if a == nil {
			skipped = append(skipped, keys[i])
		}
	}
	return results, skipped, nil
}
