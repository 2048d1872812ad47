package csvparser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"

	"golang.org/x/sync/errgroup"
)

// Source is one uploaded statement. When Reader is nil, Name is opened as
// a file path.
type Source struct {
	Name   string
	Reader io.Reader
}

// FileSources turns paths into sources read from disk.
func FileSources(paths ...string) []Source {
	out := make([]Source, 0, len(paths))
	for _, p := range paths {
		out = append(out, Source{Name: p})
	}
	return out
}

// IngestStats aggregates the per-document counters for a whole ingest.
type IngestStats struct {
	Stats        `yaml:",inline"`
	Files        int `json:"files" yaml:"files"`
	FilesSkipped int `json:"filesSkipped" yaml:"files_skipped"`
	Duplicates   int `json:"duplicates" yaml:"duplicates"`
}

// IngestResult is the merged, deduplicated transaction set in file then
// row order.
type IngestResult struct {
	Transactions []models.Transaction
	Stats        IngestStats
}

type fileResult struct {
	txs     []models.Transaction
	stats   Stats
	skipped bool
}

// Ingest parses every source concurrently, then merges the documents in
// the order given and drops repeated (date, description, amount) triples,
// keeping the first. A document with an unusable header is logged and
// skipped; an unreadable file aborts the ingest.
func (p *Parser) Ingest(ctx context.Context, sources []Source) (IngestResult, error) {
	start := time.Now()
	results := make([]fileResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.parseSource(src)
			if err != nil {
				var formatErr *parsererror.InvalidFormatError
				if errors.As(err, &formatErr) {
					p.logger.WithError(err).Warn("Skipping file with invalid format",
						logging.F(logging.FieldFile, src.Name))
					results[i] = fileResult{skipped: true}
					return nil
				}
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return IngestResult{}, err
	}

	var res IngestResult
	res.Stats.Files = len(sources)
	merged := make([]models.Transaction, 0)
	for _, fr := range results {
		if fr.skipped {
			res.Stats.FilesSkipped++
			continue
		}
		res.Stats.add(fr.stats)
		merged = append(merged, fr.txs...)
	}

	res.Transactions, res.Stats.Duplicates = Dedup(merged)
	res.Stats.Accepted = len(res.Transactions)

	if len(res.Transactions) == 0 && len(sources) > 0 {
		p.logger.WithError(&parsererror.ValidationError{Reason: "no rows qualify as spending"}).
			Warn("Ingest produced an empty transaction set")
	}
	p.logger.Info("Ingest complete",
		logging.F("files", res.Stats.Files),
		logging.F("files_skipped", res.Stats.FilesSkipped),
		logging.F("rows_read", res.Stats.RowsRead),
		logging.F("duplicates", res.Stats.Duplicates),
		logging.F(logging.FieldCount, len(res.Transactions)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return res, nil
}

func (p *Parser) parseSource(src Source) (fileResult, error) {
	r := src.Reader
	if r == nil {
		f, err := os.Open(src.Name)
		if err != nil {
			return fileResult{}, fmt.Errorf("failed to open %s: %w", src.Name, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				p.logger.WithError(cerr).Warn("Failed to close file", logging.F(logging.FieldFile, src.Name))
			}
		}()
		r = f
	}

	txs, stats, err := p.parseDocument(src.Name, r)
	if err != nil {
		return fileResult{}, err
	}
	return fileResult{txs: txs, stats: stats}, nil
}

// Dedup keeps the first transaction of each (date, description, amount)
// triple, preserving order. It returns the number of dropped duplicates.
func Dedup(txs []models.Transaction) ([]models.Transaction, int) {
	seen := make(map[models.TransactionKey]struct{}, len(txs))
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		k := tx.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, tx)
	}
	return out, len(txs) - len(out)
}
