package fasta

import (
	"errors"
	"io"

	"go.uber.org/zap"
)

// progressEvery controls how often the rewrite pass logs progress.
const progressEvery = 100000

// HeaderPolicy selects what a rewrite pass does with a malformed header.
type HeaderPolicy int

const (
	// AbortOnBadHeader stops the pass at the first malformed header. This is
	// the default: a silently dropped record would desynchronize the clean
	// FASTA from the taxonomy artifact.
	AbortOnBadHeader HeaderPolicy = iota
	// SkipBadHeaders drops malformed records from both outputs and counts
	// them.
	SkipBadHeaders
)

// Pair is the (process ID, BIN) extracted from one record header, in file
// order. The taxonomy join consumes these without re-parsing the headers.
type Pair struct {
	ProcessID string
	BIN       string
}

// RewriteStats summarizes one rewrite pass.
type RewriteStats struct {
	Records int // records written (and paired)
	Skipped int // malformed records dropped under SkipBadHeaders
}

// Rewrite streams records from in, writes each to out with the header
// reduced to the process ID, and returns the ordered (process ID, BIN)
// pairs. Body lines pass through untouched. A nil out parses and pairs
// without writing, which is what a dry run needs.
func Rewrite(in *Reader, out *Writer, policy HeaderPolicy, log *zap.Logger) ([]Pair, RewriteStats, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var (
		pairs []Pair
		stats RewriteStats
		index int
	)

	for {
		rec, err := in.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, err
		}
		index++

		processID, bin, err := SplitHeader(rec.Header)
		if err != nil {
			var mh *MalformedHeaderError
			if errors.As(err, &mh) {
				mh.Index = index
			}
			if policy == SkipBadHeaders {
				stats.Skipped++
				log.Warn("Skipping malformed record", zap.Int("record", index), zap.String("header", rec.Header))
				continue
			}
			return nil, stats, err
		}

		if out != nil {
			if err := out.WriteRecord(processID, rec.Lines); err != nil {
				return nil, stats, err
			}
		}
		pairs = append(pairs, Pair{ProcessID: processID, BIN: bin})
		stats.Records++

		if stats.Records%progressEvery == 0 {
			log.Info("Rewriting sequences", zap.Int("processed", stats.Records))
		}
	}

	if out != nil {
		if err := out.Flush(); err != nil {
			return nil, stats, err
		}
	}
	return pairs, stats, nil
}
