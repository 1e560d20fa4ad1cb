// Package convert drives the BOLD to APSCALE pipeline: rewrite the FASTA
// headers, load and join the taxonomy, write the parquet artifact, and hand
// the clean FASTA to makeblastdb.
package convert

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/yumyai/bold2apscale/internal/util"
	"github.com/yumyai/bold2apscale/pkg/blastdb"
	"github.com/yumyai/bold2apscale/pkg/fasta"
	"github.com/yumyai/bold2apscale/pkg/taxonomy"
)

// Run executes one conversion. On success the returned report holds the full
// set of counters; the caller emits it. A dry run performs every validation
// and parse but writes no file and spawns no process.
func Run(opts Options, log *zap.Logger) (*Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	opts.normalize()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if opts.DryRun {
		// Resolve-only: a dry run must not spawn anything.
		if err := blastdb.LookPath(); err != nil {
			return nil, err
		}
	} else {
		if err := blastdb.Available(); err != nil {
			return nil, err
		}
		if err := util.EnsureDir(opts.OutputDir); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
		if err := util.EnsureDir(opts.TempDir); err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
	}

	report := newReport()
	report.DryRun = opts.DryRun
	report.DatabasePath = opts.DatabasePath()
	report.TaxonomyPath = opts.TaxonomyPath()
	report.CleanFastaPath = opts.CleanFastaPath()

	log.Info("Starting BOLD to APSCALE conversion",
		zap.String("run_id", report.RunID),
		zap.String("input", opts.InputFasta),
		zap.String("taxonomy", opts.TaxonomyTSV),
		zap.String("blast_db", report.DatabasePath),
		zap.String("artifact", report.TaxonomyPath))

	// The taxonomy table is small enough to hold in memory and its schema
	// check must fail before any sequence work starts.
	table, lstats, err := taxonomy.Load(opts.TaxonomyTSV, log)
	if err != nil {
		return nil, err
	}
	report.TaxonomyRows = lstats.Rows
	report.EmptyBinRows = lstats.EmptyBin
	report.DuplicateBins = lstats.Duplicates
	log.Info("Loaded taxonomy table", zap.Int("rows", lstats.Rows), zap.Int("bins", table.Len()))

	pairs, rstats, err := rewriteFasta(opts, log)
	if err != nil {
		return nil, err
	}
	report.Sequences = rstats.Records
	report.Skipped = rstats.Skipped
	log.Info("Cleaned sequence headers", zap.Int("records", rstats.Records), zap.Int("skipped", rstats.Skipped))

	joined, jstats := taxonomy.Join(pairs, table, log)
	report.JoinedRows = jstats.Rows
	report.UnmatchedBins = jstats.Unmatched

	if opts.DryRun {
		for i, p := range pairs {
			if _, ok := table.Lookup(p.BIN); ok {
				log.Debug("Record", zap.Int("index", i+1), zap.String("process_id", p.ProcessID), zap.String("bin", p.BIN))
			} else {
				log.Debug("Record with no taxonomy match", zap.Int("index", i+1), zap.String("process_id", p.ProcessID), zap.String("bin", p.BIN))
			}
		}
		log.Info("Would write clean FASTA", zap.String("path", report.CleanFastaPath))
		log.Info("Would write taxonomy artifact", zap.String("path", report.TaxonomyPath))
		log.Info("Would run makeblastdb",
			zap.String("cmd", "makeblastdb "+strings.Join(blastdb.Args(report.CleanFastaPath, report.DatabasePath, opts.Title), " ")))
		return report, nil
	}

	if err := taxonomy.WriteParquet(report.TaxonomyPath, joined, opts.AccessionColumn); err != nil {
		return nil, err
	}
	log.Info("Wrote taxonomy artifact", zap.String("path", report.TaxonomyPath), zap.Int("rows", len(joined)))

	if err := blastdb.Build(report.CleanFastaPath, report.DatabasePath, opts.Title, log); err != nil {
		return nil, err
	}
	log.Info("Built BLAST database", zap.String("path", report.DatabasePath))

	if err := blastdb.Verify(report.DatabasePath); err != nil {
		return nil, err
	}
	if err := taxonomy.VerifyParquet(report.TaxonomyPath, opts.AccessionColumn, len(joined)); err != nil {
		return nil, err
	}

	if !opts.KeepTemp {
		if err := os.Remove(report.CleanFastaPath); err != nil {
			log.Warn("Failed to remove temporary file", zap.String("path", report.CleanFastaPath), zap.Error(err))
		}
	}

	return report, nil
}

// rewriteFasta streams the input once, writing the clean FASTA unless this is
// a dry run, and returns the ordered (process ID, BIN) pairs.
func rewriteFasta(opts Options, log *zap.Logger) ([]fasta.Pair, fasta.RewriteStats, error) {
	in, err := fasta.Open(opts.InputFasta)
	if err != nil {
		return nil, fasta.RewriteStats{}, err
	}
	defer in.Close()

	policy := fasta.AbortOnBadHeader
	if opts.SkipBadHeaders {
		policy = fasta.SkipBadHeaders
	}

	var out *fasta.Writer
	if !opts.DryRun {
		fh, err := os.Create(opts.CleanFastaPath())
		if err != nil {
			return nil, fasta.RewriteStats{}, fmt.Errorf("create clean FASTA: %w", err)
		}
		defer fh.Close()
		out = fasta.NewWriter(fh)
	}

	return fasta.Rewrite(fasta.NewReader(in), out, policy, log)
}
