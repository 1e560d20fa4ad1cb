package taxonomy

import (
	"go.uber.org/zap"

	"github.com/yumyai/bold2apscale/pkg/fasta"
)

// UnknownMarker replaces every lineage field that is empty in the source
// table or whose BIN has no taxonomy row. Downstream tooling pattern-matches
// on it, so it must stay stable across runs.
const UnknownMarker = "unknown"

// JoinedRow is one APSCALE taxonomy record. The kingdom rank from the source
// table is published as superkingdom, matching the consuming pipeline.
type JoinedRow struct {
	Accession    string
	Superkingdom string
	Phylum       string
	Class        string
	Order        string
	Family       string
	Genus        string
	Species      string
}

// JoinStats summarizes one join pass.
type JoinStats struct {
	Rows      int
	Unmatched int // pairs whose BIN had no taxonomy row
}

// UnmatchedRatio is the share of pairs that joined to no lineage. A high
// ratio is a data-quality signal, never a failure.
func (s JoinStats) UnmatchedRatio() float64 {
	if s.Rows == 0 {
		return 0
	}
	return float64(s.Unmatched) / float64(s.Rows)
}

// Join produces one row per (process ID, BIN) pair, in pair order. Pairs are
// never reordered, deduplicated, or dropped: the output row count always
// equals len(pairs).
func Join(pairs []fasta.Pair, table *Table, log *zap.Logger) ([]JoinedRow, JoinStats) {
	if log == nil {
		log = zap.NewNop()
	}

	rows := make([]JoinedRow, 0, len(pairs))
	var stats JoinStats
	for _, p := range pairs {
		jr := JoinedRow{Accession: p.ProcessID}
		if tr, ok := table.Lookup(p.BIN); ok {
			jr.Superkingdom = orUnknown(tr.Kingdom)
			jr.Phylum = orUnknown(tr.Phylum)
			jr.Class = orUnknown(tr.Class)
			jr.Order = orUnknown(tr.Order)
			jr.Family = orUnknown(tr.Family)
			jr.Genus = orUnknown(tr.Genus)
			jr.Species = orUnknown(tr.Species)
		} else {
			stats.Unmatched++
			jr.Superkingdom = UnknownMarker
			jr.Phylum = UnknownMarker
			jr.Class = UnknownMarker
			jr.Order = UnknownMarker
			jr.Family = UnknownMarker
			jr.Genus = UnknownMarker
			jr.Species = UnknownMarker
		}
		rows = append(rows, jr)
		stats.Rows++
	}

	if stats.Unmatched > 0 {
		log.Warn("BINs without taxonomy", zap.Int("count", stats.Unmatched), zap.Float64("ratio", stats.UnmatchedRatio()))
	}

	return rows, stats
}

func orUnknown(v string) string {
	if v == "" {
		return UnknownMarker
	}
	return v
}
