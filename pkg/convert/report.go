package convert

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Report is the run context: it carries the per-run counters through the
// pipeline and emits the final summary at teardown. There is no package
// state; every counter lives here.
type Report struct {
	RunID  string
	DryRun bool

	Sequences     int // records written to the clean FASTA
	Skipped       int // malformed records dropped (SkipBadHeaders only)
	TaxonomyRows  int // data rows read from the taxonomy TSV
	EmptyBinRows  int // taxonomy rows excluded for an empty bin
	DuplicateBins int // taxonomy rows collapsed by last-wins
	JoinedRows    int // rows written to the artifact
	UnmatchedBins int // joined rows with no taxonomy match

	DatabasePath   string
	TaxonomyPath   string
	CleanFastaPath string
}

func newReport() *Report {
	return &Report{RunID: uuid.NewString()}
}

// UnmatchedRatio is the share of joined rows that fell back to the
// unknown-marker lineage.
func (r *Report) UnmatchedRatio() float64 {
	if r.JoinedRows == 0 {
		return 0
	}
	return float64(r.UnmatchedBins) / float64(r.JoinedRows)
}

// Emit writes the end-of-run summary.
func (r *Report) Emit(log *zap.Logger) {
	if log == nil {
		return
	}

	fields := []zap.Field{
		zap.String("run_id", r.RunID),
		zap.Int("sequences", r.Sequences),
		zap.Int("taxonomy_rows", r.TaxonomyRows),
		zap.Int("joined_rows", r.JoinedRows),
		zap.Int("unmatched_bins", r.UnmatchedBins),
		zap.Float64("unmatched_ratio", r.UnmatchedRatio()),
	}
	if r.Skipped > 0 {
		fields = append(fields, zap.Int("skipped_records", r.Skipped))
	}
	if r.EmptyBinRows > 0 {
		fields = append(fields, zap.Int("empty_bin_rows", r.EmptyBinRows))
	}
	if r.DuplicateBins > 0 {
		fields = append(fields, zap.Int("duplicate_bins", r.DuplicateBins))
	}

	if r.DryRun {
		log.Info("Dry run completed, nothing written", fields...)
		return
	}

	fields = append(fields,
		zap.String("blast_db", r.DatabasePath),
		zap.String("taxonomy", r.TaxonomyPath),
	)
	log.Info("Conversion completed", fields...)
}
