// Package app implements the application layer for labgen.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"go.trai.ch/labgen/internal/core/domain"
	"go.trai.ch/labgen/internal/core/ports"
	"go.trai.ch/labgen/internal/engine/matrix"
	"go.trai.ch/zerr"
)

// stdoutOutput selects standard output as the generation target.
const stdoutOutput = "-"

// App represents the main application logic.
type App struct {
	loader    ports.CatalogLoader
	generator *matrix.Generator
	encoder   ports.DocumentEncoder
	store     ports.StampStore
	logger    ports.Logger
	telemetry ports.Telemetry
	stdout    io.Writer
	now       func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.CatalogLoader,
	generator *matrix.Generator,
	encoder ports.DocumentEncoder,
	store ports.StampStore,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		loader:    loader,
		generator: generator,
		encoder:   encoder,
		store:     store,
		logger:    logger,
		telemetry: telemetry,
		stdout:    os.Stdout,
		now:       time.Now,
	}
}

// WithStdout sets the writer documents and listings are printed to.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithClock sets the clock used to timestamp stamps.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// CatalogOptions selects the catalog of a run.
type CatalogOptions struct {
	// ConfigPath is the catalog file; empty means discovery or the built-in catalog.
	ConfigPath string
	// Distributions replaces the catalog distributions when not empty.
	Distributions []string
	// Variants replaces the catalog variants when not empty.
	Variants []string
	// NoVariants drops every build variant, leaving only plain records.
	NoVariants bool
}

// GenerateOptions configures Generate and Check.
type GenerateOptions struct {
	CatalogOptions
	// Output is the file the document is written to. Empty or "-" means stdout.
	Output string
}

// Generate renders the lab configuration and writes it to stdout or to opts.Output.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) error {
	doc, data, err := a.render(ctx, opts.CatalogOptions)
	if err != nil {
		return err
	}

	if opts.Output == "" || opts.Output == stdoutOutput {
		if _, err := a.stdout.Write(data); err != nil {
			return zerr.Wrap(err, "failed to write document")
		}
		return nil
	}

	return a.writeOutput(ctx, opts.Output, doc, data)
}

// Check compares opts.Output with what the catalog generates.
// Any status other than up-to-date is returned together with ErrOutputOutOfDate.
func (a *App) Check(ctx context.Context, opts GenerateOptions) (domain.CheckStatus, error) {
	if opts.Output == "" || opts.Output == stdoutOutput {
		return "", domain.ErrOutputRequired
	}

	_, data, err := a.render(ctx, opts.CatalogOptions)
	if err != nil {
		return "", err
	}

	existing, err := os.ReadFile(opts.Output) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.CheckMissing, outOfDate(opts.Output, domain.CheckMissing)
		}
		return "", zerr.Wrap(err, "failed to read output")
	}

	fileDigest := domain.Digest(existing)
	if fileDigest == domain.Digest(data) {
		return domain.CheckUpToDate, nil
	}

	stamp, err := a.store.Get(opts.Output)
	if err != nil {
		return "", zerr.Wrap(err, "failed to read stamp")
	}

	status := domain.CheckStale
	if stamp != nil && stamp.Digest != fileDigest {
		status = domain.CheckModified
	}
	return status, outOfDate(opts.Output, status)
}

func outOfDate(output string, status domain.CheckStatus) error {
	return errors.Join(
		domain.ErrOutputOutOfDate,
		zerr.With(zerr.With(zerr.New(string(status)), "output", output), "status", string(status)),
	)
}

// Catalog prints the records the catalog expands to.
func (a *App) Catalog(ctx context.Context, opts CatalogOptions) error {
	doc, _, err := a.render(ctx, opts)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "LABEL\tHOST\tDISTRO\tVARIANT")
	for rec := range doc.Records() {
		variant := string(rec.Variant)
		if variant == "" {
			variant = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rec.Label, rec.Hostname(), rec.Distribution, variant)
	}
	if err := tw.Flush(); err != nil {
		return zerr.Wrap(err, "failed to write catalog")
	}
	return nil
}

func (a *App) loadCatalog(opts CatalogOptions) (*domain.Catalog, error) {
	catalog, err := a.loader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load catalog")
	}

	if len(opts.Distributions) > 0 {
		catalog.Distributions = domain.ParseDistributions(opts.Distributions)
	}
	switch {
	case opts.NoVariants:
		catalog.Variants = nil
	case len(opts.Variants) > 0:
		catalog.Variants = domain.ParseVariants(opts.Variants)
	}
	return catalog, nil
}

// render loads the catalog, expands it and encodes the resulting document.
func (a *App) render(ctx context.Context, opts CatalogOptions) (*domain.Document, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	catalog, err := a.loadCatalog(opts)
	if err != nil {
		return nil, nil, err
	}

	_, vertex := a.telemetry.Record(ctx, "generate")

	doc, err := a.generator.Generate(catalog)
	if err != nil {
		vertex.Complete(err)
		return nil, nil, zerr.Wrap(err, "failed to generate lab matrix")
	}
	for _, s := range doc.Sections {
		vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%s: %d records", s.Title, len(s.Records)))
	}

	var buf bytes.Buffer
	if err := a.encoder.Encode(&buf, doc); err != nil {
		vertex.Complete(err)
		return nil, nil, zerr.Wrap(err, "failed to encode document")
	}
	vertex.Complete(nil)

	return doc, buf.Bytes(), nil
}

// writeOutput writes data to output unless the file already holds it, and stamps the result.
func (a *App) writeOutput(ctx context.Context, output string, doc *domain.Document, data []byte) error {
	_, vertex := a.telemetry.Record(ctx, "write "+output)
	digest := domain.Digest(data)

	existing, err := os.ReadFile(output) //nolint:gosec // path is provided by user
	switch {
	case err == nil && domain.Digest(existing) == digest:
		vertex.Cached()
		a.logger.Info(output + " is up to date")
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		vertex.Complete(err)
		return zerr.Wrap(err, "failed to read output")
	default:
		if err := writeFileAtomic(output, data); err != nil {
			vertex.Complete(err)
			return zerr.With(err, "output", output)
		}
		a.logger.Info(fmt.Sprintf("wrote %d records to %s", doc.Len(), output))
	}

	stamp, err := a.store.Get(output)
	if err != nil {
		vertex.Complete(err)
		return zerr.Wrap(err, "failed to read stamp")
	}
	if stamp == nil || stamp.Digest != digest {
		err := a.store.Put(domain.Stamp{
			Output:      output,
			Digest:      digest,
			Records:     doc.Len(),
			GeneratedAt: a.now().UTC(),
		})
		if err != nil {
			vertex.Complete(err)
			return zerr.Wrap(err, "failed to record stamp")
		}
	}

	vertex.Complete(nil)
	return nil
}

// writeFileAtomic replaces path with data through a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.PrivateDirPerm); err != nil {
		return zerr.Wrap(err, "failed to create output directory")
	}

	tmpFile, err := os.CreateTemp(dir, ".labgen-*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp output file")
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, "failed to write output")
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp output file")
	}
	if err := os.Chmod(tmpName, domain.DocumentFilePerm); err != nil {
		return zerr.Wrap(err, "failed to chmod output file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(err, "failed to rename temp output file")
	}
	return nil
}
