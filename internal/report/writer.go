// Package report renders recommendation results and catalog previews.
package report

import (
	"context"
	"diet-menu-planner/internal/domain"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// SupportedFormats returns all output formats.
func SupportedFormats() []string {
	return []string{
		string(FormatTable),
		string(FormatJSON),
		string(FormatYAML),
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %s)", s, strings.Join(SupportedFormats(), ", "))
	}
	return f, nil
}

// Footnote printed under every table report.
const Footnote = "Note: greedy selection does not guarantee a globally optimal menu. " +
	"Closest First picks the item nearest to the remaining calories at each step."

const chartWidth = 40

// Options tune table output; structured formats ignore them.
type Options struct {
	Chart bool
}

// Writer renders reports in one format to one destination.
// Close must be called to release the file handle when created with NewFileWriterOrStdout.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
	opts   Options
}

// NewWriter creates a Writer. A nil output means os.Stdout.
func NewWriter(format Format, output io.Writer, opts Options) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: format, output: output, opts: opts}
}

// NewFileWriterOrStdout writes to path, or to stdout when path is empty.
func NewFileWriterOrStdout(format Format, path string, opts Options) (*Writer, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return NewWriter(format, os.Stdout, opts), nil
	}

	file, err := os.Create(trimmed)
	if err != nil {
		return nil, fmt.Errorf("create output file %q: %w", trimmed, err)
	}

	w := NewWriter(format, file, opts)
	w.closer = file
	return w, nil
}

// Close releases the output file, if any. Safe to call more than once.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// WriteReport renders a recommendation report.
func (w *Writer) WriteReport(ctx context.Context, r *domain.Report) error {
	if r == nil {
		return fmt.Errorf("write report: report is nil")
	}

	switch w.format {
	case FormatJSON:
		return w.serializeJSON(r)
	case FormatYAML:
		return w.serializeYAML(r)
	case FormatTable:
		return w.reportTable(r)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

// CatalogPreview is the first rows of a loaded catalog plus its counts.
type CatalogPreview struct {
	Source  string            `json:"source" yaml:"source"`
	Items   int               `json:"item_count" yaml:"item_count"`
	Dropped int               `json:"dropped_rows" yaml:"dropped_rows"`
	Rows    []domain.FoodItem `json:"rows" yaml:"rows"`
}

// NewCatalogPreview captures at most limit rows of c.
func NewCatalogPreview(c *domain.Catalog, limit int) CatalogPreview {
	return CatalogPreview{
		Source:  c.Source(),
		Items:   c.Len(),
		Dropped: c.Dropped(),
		Rows:    c.Head(limit),
	}
}

// WriteCatalog renders a catalog preview.
func (w *Writer) WriteCatalog(ctx context.Context, p CatalogPreview) error {
	switch w.format {
	case FormatJSON:
		return w.serializeJSON(p)
	case FormatYAML:
		return w.serializeYAML(p)
	case FormatTable:
		return w.catalogTable(p)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) serializeJSON(v any) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return nil
}

func (w *Writer) serializeYAML(v any) error {
	encoder := yaml.NewEncoder(w.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	return encoder.Close()
}

func (w *Writer) reportTable(r *domain.Report) error {
	out := &errWriter{w: w.output}

	out.printf("Greedy diet menu (Closest First)\n")
	out.printf("Catalog: %s (%d items", r.Source, r.CatalogSize)
	if r.Dropped > 0 {
		out.printf(", %d rows dropped", r.Dropped)
	}
	out.printf(")  Target: %d kcal  Trials: %d\n", r.Target, r.Trials)

	for _, vr := range []domain.VariantReport{r.Iterative, r.Recursive} {
		out.printf("\n== %s ==\n", vr.Variant.Label())
		out.printf("Total: %d kcal  Items: %d  Time: %.2f µs\n", vr.Summary.Total, vr.Summary.Count, vr.MeanMicros)
		out.printf("Status: %s\n", vr.Summary.Status)
		if out.err != nil {
			return out.err
		}
		if err := writeItems(w.output, vr.Items); err != nil {
			return err
		}
	}

	same := "DIFFERENT"
	if r.Comparison.SameTotal {
		same = "SAME"
	}
	out.printf("\n")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FASTER\tTOTALS\tTIME DELTA")
	fmt.Fprintf(tw, "%s\t%s\t%.2f µs\n", r.Comparison.Faster, same, r.Comparison.TimeDeltaMicros)
	if err := tw.Flush(); err != nil {
		return err
	}

	if w.opts.Chart {
		out.printf("\n")
		writeChart(out, r)
	}

	out.printf("\n%s\n", Footnote)
	return out.err
}

func writeItems(w io.Writer, items []domain.FoodItem) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tMENU\tKCAL")
	for i, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", i+1, it.Name, it.Calories)
	}
	return tw.Flush()
}

// writeChart draws both mean times as horizontal bars scaled to the slower one.
func writeChart(out *errWriter, r *domain.Report) {
	bars := []struct {
		label string
		value float64
	}{
		{domain.VariantIterative.Label(), r.Iterative.MeanMicros},
		{domain.VariantRecursive.Label(), r.Recursive.MeanMicros},
	}

	peak := 0.0
	for _, b := range bars {
		peak = max(peak, b.value)
	}

	out.printf("Mean execution time (target = %d kcal)\n", r.Target)
	for _, b := range bars {
		n := 0
		if peak > 0 {
			n = int(b.value / peak * chartWidth)
		}
		out.printf("%-10s %s%s %.2f µs\n", b.label, strings.Repeat("█", n), strings.Repeat(" ", chartWidth-n), b.value)
	}
}

func (w *Writer) catalogTable(p CatalogPreview) error {
	out := &errWriter{w: w.output}
	out.printf("Catalog: %s\n", p.Source)
	out.printf("Items: %d  Dropped rows: %d\n\n", p.Items, p.Dropped)
	if out.err != nil {
		return out.err
	}
	if err := writeItems(w.output, p.Rows); err != nil {
		return err
	}
	if len(p.Rows) < p.Items {
		out.printf("... %d more\n", p.Items-len(p.Rows))
	}
	return out.err
}

// errWriter remembers the first write error so rendering code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}
