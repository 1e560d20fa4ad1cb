package taxonomy

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func sampleRows() []JoinedRow {
	return []JoinedRow{
		{
			Accession:    "P1",
			Superkingdom: "Animalia",
			Phylum:       "Arthropoda",
			Class:        "Insecta",
			Order:        "Lepidoptera",
			Family:       "Depressariidae",
			Genus:        "Cerconota",
			Species:      UnknownMarker,
		},
		{
			Accession:    "P2",
			Superkingdom: UnknownMarker,
			Phylum:       UnknownMarker,
			Class:        UnknownMarker,
			Order:        UnknownMarker,
			Family:       UnknownMarker,
			Genus:        UnknownMarker,
			Species:      UnknownMarker,
		},
	}
}

func TestWriteAndVerifyParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db_taxonomy.parquet.snappy")

	if err := WriteParquet(path, sampleRows(), ""); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := VerifyParquet(path, "", 2); err != nil {
		t.Fatalf("verify: %v", err)
	}

	// wrong expected row count must fail
	if err := VerifyParquet(path, "", 3); err == nil {
		t.Fatal("expected row-count mismatch")
	}
	// wrong accession column name must fail
	if err := VerifyParquet(path, "SeqID", 2); err == nil {
		t.Fatal("expected column mismatch")
	}
}

func TestWriteParquetCustomAccessionColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db_taxonomy.parquet.snappy")

	if err := WriteParquet(path, sampleRows(), "SeqID"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := VerifyParquet(path, "SeqID", 2); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

// Two writes of the same rows must be byte-identical.
func TestWriteParquetDeterministic(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.parquet.snappy")
	p2 := filepath.Join(dir, "b.parquet.snappy")

	if err := WriteParquet(p1, sampleRows(), ""); err != nil {
		t.Fatalf("write 1: %v", err)
	}
	if err := WriteParquet(p2, sampleRows(), ""); err != nil {
		t.Fatalf("write 2: %v", err)
	}

	b1, err := os.ReadFile(p1)
	if err != nil {
		t.Fatalf("read 1: %v", err)
	}
	b2, err := os.ReadFile(p2)
	if err != nil {
		t.Fatalf("read 2: %v", err)
	}
	if !bytes.Equal(b1, b2) {
		t.Fatal("artifacts differ between identical runs")
	}
}

func TestWriteParquetEmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet.snappy")

	if err := WriteParquet(path, nil, ""); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := VerifyParquet(path, "", 0); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestWriteParquetUnwritablePath(t *testing.T) {
	err := WriteParquet(filepath.Join(t.TempDir(), "no-such-dir", "x.parquet.snappy"), sampleRows(), "")
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
	var se *SerializationError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SerializationError, got %T", err)
	}
}

func TestColumnNames(t *testing.T) {
	got := ColumnNames("")
	want := []string{"Accession", "superkingdom", "phylum", "class", "order", "family", "genus", "species"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
}
