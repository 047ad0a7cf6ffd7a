// Package compare orchestrates the word-level comparison pipeline:
// extraction, diffing, highlight mapping, annotation and side-by-side
// composition. The stages run strictly in order, one page at a time, and
// the first unrecoverable error aborts the run.
package compare

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wudi/pdfdiff/diff"
	"github.com/wudi/pdfdiff/extractor"
	"github.com/wudi/pdfdiff/highlight"
	"github.com/wudi/pdfdiff/observability"
)

// Annotator writes a highlighted copy of one document.
type Annotator interface {
	Annotate(ctx context.Context, srcPath, dstPath string, regions []highlight.Region) error
}

// Compositor writes the side-by-side combined document.
type Compositor interface {
	Compose(ctx context.Context, paths []string, dstPath string) error
}

// DefaultCombinedName is the output file name of the combined document.
const DefaultCombinedName = "combined_comparison.pdf"

// Options configures a pipeline run.
type Options struct {
	// OutputDir receives the highlighted and combined documents. Created if
	// missing.
	OutputDir string
	// CombinedName overrides DefaultCombinedName.
	CombinedName string
	// Palette assigns highlight colors per document index.
	Palette highlight.Palette
	// CaseSensitive disables case folding during diffing.
	CaseSensitive bool
	// AllowEmptyPages downgrades pages without extractable text from a
	// NoTextLayerError to an empty word sequence.
	AllowEmptyPages bool
	// StrictPageCount turns a page-count mismatch into an error instead of
	// comparing the available pages.
	StrictPageCount bool

	Logger observability.Logger
	Tracer observability.Tracer
}

// Result describes a completed comparison run.
type Result struct {
	// Reference is the first input path; its pages appear un-annotated on
	// the left of every combined page.
	Reference string
	// Highlighted holds one output path per compared document, in input
	// order.
	Highlighted []string
	// Combined is the path of the side-by-side document.
	Combined string
	// Pages is the number of page indices compared (minimum across inputs).
	Pages int
	// PageCounts are the page counts of all inputs, in input order.
	PageCounts []int
	// Regions is the total number of highlight regions produced.
	Regions int
	// Mismatch is set when inputs had different page counts and the lenient
	// policy compared only the available pages.
	Mismatch bool
}

// Pipeline wires the capability interfaces into the comparison sequence.
type Pipeline struct {
	source     extractor.Source
	annotator  Annotator
	compositor Compositor
	opts       Options
	logger     observability.Logger
	tracer     observability.Tracer
}

// New builds a pipeline. Logger and tracer default to no-ops.
func New(source extractor.Source, annotator Annotator, compositor Compositor, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = observability.NopLogger{}
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = observability.NopTracer()
	}
	if opts.Palette.Len() == 0 {
		opts.Palette = highlight.DefaultPalette()
	}
	return &Pipeline{
		source:     source,
		annotator:  annotator,
		compositor: compositor,
		opts:       opts,
		logger:     logger,
		tracer:     tracer,
	}
}

// Run compares the documents at paths. The first path is the reference;
// every other document is diffed against it, annotated, and composed next to
// it in the combined output.
func (p *Pipeline) Run(ctx context.Context, paths []string) (*Result, error) {
	if len(paths) < 2 {
		return nil, fmt.Errorf("need at least two documents, got %d", len(paths))
	}
	if p.opts.OutputDir != "" {
		if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir %q: %w", p.opts.OutputDir, err)
		}
	}

	docs, err := p.extractAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Reference:  paths[0],
		PageCounts: make([]int, len(docs)),
	}
	minPages := len(docs[0])
	for i, doc := range docs {
		result.PageCounts[i] = len(doc)
		if len(doc) < minPages {
			minPages = len(doc)
		}
		if len(doc) != len(docs[0]) {
			if p.opts.StrictPageCount {
				return nil, &PageCountMismatchError{
					Reference: paths[0],
					Path:      paths[i],
					RefPages:  len(docs[0]),
					Pages:     len(doc),
				}
			}
			result.Mismatch = true
			p.logger.Warn("page count mismatch, comparing available pages",
				observability.String("reference", paths[0]),
				observability.Int("reference_pages", len(docs[0])),
				observability.String("doc", paths[i]),
				observability.Int("doc_pages", len(doc)))
		}
	}
	result.Pages = minPages

	for docIdx := 1; docIdx < len(docs); docIdx++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		diffStart := time.Now()
		regions, err := p.compareDoc(ctx, docs[0], docs[docIdx], minPages)
		if err != nil {
			return nil, err
		}
		result.Regions += len(regions)
		p.logger.Debug("diffed",
			observability.String("doc", paths[docIdx]),
			observability.Int(observability.MetricRegionCount, len(regions)),
			observability.Float64(observability.MetricDiffTime, time.Since(diffStart).Seconds()))

		dstPath := p.outputPath(highlightedName(paths[docIdx]))
		own := highlight.FilterDoc(regions, docIdx)
		p.logger.Info("annotating",
			observability.String("doc", paths[docIdx]),
			observability.Int(observability.MetricRegionCount, len(own)))
		start := time.Now()
		if err := p.annotator.Annotate(ctx, paths[docIdx], dstPath, own); err != nil {
			return nil, fmt.Errorf("annotate %q: %w", paths[docIdx], err)
		}
		p.logger.Debug("annotated",
			observability.String("doc", paths[docIdx]),
			observability.Float64(observability.MetricAnnotateTime, time.Since(start).Seconds()))
		result.Highlighted = append(result.Highlighted, dstPath)
	}

	combinedName := p.opts.CombinedName
	if combinedName == "" {
		combinedName = DefaultCombinedName
	}
	result.Combined = p.outputPath(combinedName)

	composeInputs := append([]string{paths[0]}, result.Highlighted...)
	ctx2, span := p.tracer.StartSpan(ctx, "compose")
	start := time.Now()
	err = p.compositor.Compose(ctx2, composeInputs, result.Combined)
	if err != nil {
		span.SetError(err)
	}
	span.Finish()
	if err != nil {
		return nil, fmt.Errorf("compose %q: %w", result.Combined, err)
	}
	p.logger.Info("comparison complete",
		observability.String("combined", result.Combined),
		observability.Int(observability.MetricPageCount, result.Pages),
		observability.Int(observability.MetricRegionCount, result.Regions),
		observability.Float64(observability.MetricComposeTime, time.Since(start).Seconds()))

	return result, nil
}

// extractAll pulls word tokens out of every input, stamps document indices,
// and enforces the empty-page policy.
func (p *Pipeline) extractAll(ctx context.Context, paths []string) ([][]extractor.PageWords, error) {
	docs := make([][]extractor.PageWords, len(paths))
	for i, path := range paths {
		ctx2, span := p.tracer.StartSpan(ctx, "extract")
		start := time.Now()
		pages, err := p.source.Extract(ctx2, path)
		if err != nil {
			span.SetError(err)
			span.Finish()
			return nil, err
		}
		span.Finish()

		words := 0
		for _, page := range pages {
			words += len(page.Words)
			if len(page.Words) == 0 && !p.opts.AllowEmptyPages {
				return nil, &NoTextLayerError{Path: path, Page: page.Page}
			}
		}
		extractor.StampDoc(pages, i)
		docs[i] = pages
		p.logger.Debug("extracted",
			observability.String("doc", path),
			observability.Int(observability.MetricPageCount, len(pages)),
			observability.Int(observability.MetricWordCount, words),
			observability.Float64(observability.MetricExtractTime, time.Since(start).Seconds()))
	}
	return docs, nil
}

// compareDoc diffs one compared document against the reference page by page
// and maps the runs to highlight regions.
func (p *Pipeline) compareDoc(ctx context.Context, ref, doc []extractor.PageWords, pages int) ([]highlight.Region, error) {
	var regions []highlight.Region
	diffOpts := diff.Options{CaseSensitive: p.opts.CaseSensitive}
	for page := 0; page < pages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		runs := diff.Compare(ref[page].Words, doc[page].Words, diffOpts)
		regions = append(regions, highlight.Map(runs, p.opts.Palette)...)
	}
	return regions, nil
}

func (p *Pipeline) outputPath(name string) string {
	if p.opts.OutputDir == "" {
		return name
	}
	return filepath.Join(p.opts.OutputDir, name)
}

// highlightedName derives the output file name of a compared document:
// "report.pdf" becomes "report_highlighted.pdf".
func highlightedName(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_highlighted.pdf"
}
