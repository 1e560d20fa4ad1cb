package taxonomy

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
)

// DefaultAccessionColumn is the column name APSCALE expects for the process
// ID. It is configurable for pipelines that key on a different field name.
const DefaultAccessionColumn = "Accession"

// SerializationError wraps any failure while writing or verifying the
// taxonomy artifact.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("taxonomy artifact %s: %v", e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// ColumnNames is the fixed artifact column order, with the accession column
// first. An empty accessionCol falls back to DefaultAccessionColumn.
func ColumnNames(accessionCol string) []string {
	if accessionCol == "" {
		accessionCol = DefaultAccessionColumn
	}
	return []string{accessionCol, "superkingdom", "phylum", "class", "order", "family", "genus", "species"}
}

// WriteParquet writes the joined rows to a snappy-compressed parquet file in
// row order. All columns are UTF8 byte arrays with plain encoding and the
// writer runs single-threaded, so identical input yields a byte-identical
// artifact.
func WriteParquet(path string, rows []JoinedRow, accessionCol string) error {
	md := make([]string, 0, 8)
	for _, name := range ColumnNames(accessionCol) {
		md = append(md, fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN", name))
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return &SerializationError{Path: path, Err: err}
	}

	pw, err := writer.NewCSVWriter(md, fw, 1)
	if err != nil {
		_ = fw.Close()
		return &SerializationError{Path: path, Err: err}
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, r := range rows {
		rec := []interface{}{r.Accession, r.Superkingdom, r.Phylum, r.Class, r.Order, r.Family, r.Genus, r.Species}
		if err := pw.Write(rec); err != nil {
			_ = fw.Close()
			return &SerializationError{Path: path, Err: err}
		}
	}

	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return &SerializationError{Path: path, Err: err}
	}
	if err := fw.Close(); err != nil {
		return &SerializationError{Path: path, Err: err}
	}
	return nil
}

// VerifyParquet reads the artifact back and checks the column layout and row
// count against what the run just wrote.
func VerifyParquet(path string, accessionCol string, wantRows int) error {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return &SerializationError{Path: path, Err: err}
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, nil, 1)
	if err != nil {
		return &SerializationError{Path: path, Err: err}
	}
	defer pr.ReadStop()

	if got := pr.GetNumRows(); got != int64(wantRows) {
		return &SerializationError{Path: path, Err: fmt.Errorf("row count %d, want %d", got, wantRows)}
	}

	want := ColumnNames(accessionCol)
	schema := pr.Footer.GetSchema()
	if len(schema) != len(want)+1 { // schema[0] is the root element
		return &SerializationError{Path: path, Err: fmt.Errorf("column count %d, want %d", len(schema)-1, len(want))}
	}
	for i, name := range want {
		if got := schema[i+1].GetName(); got != name {
			return &SerializationError{Path: path, Err: fmt.Errorf("column %d is %q, want %q", i, got, name)}
		}
	}
	return nil
}
