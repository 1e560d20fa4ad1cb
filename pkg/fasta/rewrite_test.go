package fasta

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRewrite(t *testing.T) {
	in := ">P1|BOLD:AAA0017\nACGT\nACGT\n>P2|BOLD:ZZZ9999\nNNNN\n"

	var buf bytes.Buffer
	pairs, stats, err := Rewrite(NewReader(strings.NewReader(in)), NewWriter(&buf), AbortOnBadHeader, nil)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	want := ">P1\nACGT\nACGT\n>P2\nNNNN\n"
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
	if stats.Records != 2 || stats.Skipped != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if len(pairs) != 2 ||
		pairs[0] != (Pair{ProcessID: "P1", BIN: "BOLD:AAA0017"}) ||
		pairs[1] != (Pair{ProcessID: "P2", BIN: "BOLD:ZZZ9999"}) {
		t.Errorf("pairs = %+v", pairs)
	}
}

func TestRewriteAbortsOnMalformedHeader(t *testing.T) {
	in := ">P1|B1\nAC\n>bare_header\nGT\n>P3|B3\nTT\n"

	var buf bytes.Buffer
	_, _, err := Rewrite(NewReader(strings.NewReader(in)), NewWriter(&buf), AbortOnBadHeader, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var mh *MalformedHeaderError
	if !errors.As(err, &mh) {
		t.Fatalf("expected *MalformedHeaderError, got %T", err)
	}
	if mh.Index != 2 {
		t.Errorf("error index = %d, want 2", mh.Index)
	}
}

func TestRewriteSkipPolicy(t *testing.T) {
	in := ">P1|B1\nAC\n>bare_header\nGT\n>P3|B3\nTT\n"

	var buf bytes.Buffer
	pairs, stats, err := Rewrite(NewReader(strings.NewReader(in)), NewWriter(&buf), SkipBadHeaders, nil)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if stats.Records != 2 || stats.Skipped != 1 {
		t.Errorf("stats = %+v", stats)
	}
	// the skipped record must be absent from both outputs
	if strings.Contains(buf.String(), "GT") {
		t.Errorf("skipped record leaked into output:\n%s", buf.String())
	}
	if len(pairs) != 2 || pairs[1].ProcessID != "P3" {
		t.Errorf("pairs = %+v", pairs)
	}
}

func TestRewriteNilWriterParsesOnly(t *testing.T) {
	in := ">P1|B1\nAC\n>P2|B2\nGT\n"

	pairs, stats, err := Rewrite(NewReader(strings.NewReader(in)), nil, AbortOnBadHeader, nil)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if stats.Records != 2 || len(pairs) != 2 {
		t.Errorf("stats = %+v, pairs = %+v", stats, pairs)
	}
}

// Round-trip: output record count equals input record count when nothing is
// skipped, and duplicate process IDs pass through unmodified.
func TestRewriteKeepsCardinality(t *testing.T) {
	in := ">P1|B1\nAC\n>P1|B2\nGT\n>P1|B1\nTT\n"

	var buf bytes.Buffer
	pairs, stats, err := Rewrite(NewReader(strings.NewReader(in)), NewWriter(&buf), AbortOnBadHeader, nil)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if stats.Records != 3 || len(pairs) != 3 {
		t.Fatalf("stats = %+v, pairs = %d", stats, len(pairs))
	}
	if got := strings.Count(buf.String(), ">P1\n"); got != 3 {
		t.Errorf("expected 3 identical headers, got %d:\n%s", got, buf.String())
	}
}
