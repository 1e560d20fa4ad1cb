package taxonomy

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// RequiredColumns are the column names the taxonomy TSV must carry, matched
// case-sensitively against the header row. Extra columns are ignored.
var RequiredColumns = []string{"bin", "kingdom", "phylum", "class", "order", "family", "genus", "species"}

// SchemaError reports every required column missing from the taxonomy file.
// It is raised before any data row is read.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("taxonomy file %s: missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
}

// Row is one lineage as it appears in the source table. Empty fields stay
// empty here; the unknown-marker substitution happens at join time.
type Row struct {
	Kingdom string
	Phylum  string
	Class   string
	Order   string
	Family  string
	Genus   string
	Species string
}

// Table maps BIN identifiers to lineages.
type Table struct {
	rows map[string]Row
}

func (t *Table) Lookup(bin string) (Row, bool) {
	r, ok := t.rows[bin]
	return r, ok
}

func (t *Table) Len() int {
	return len(t.rows)
}

// LoadStats summarizes one load of the taxonomy table.
type LoadStats struct {
	Rows       int // data rows read from the file
	EmptyBin   int // rows excluded because the bin field was empty
	Duplicates int // rows collapsed by the last-wins duplicate policy
}

// Load reads a tab-separated taxonomy table with a header row. The schema is
// validated up front; rows with an empty bin are excluded with a warning, and
// a repeated bin keeps the last occurrence in file order.
func Load(path string, log *zap.Logger) (*Table, LoadStats, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, err
	}
	defer fh.Close()
	return Read(fh, path, log)
}

// Read is Load over an arbitrary reader; path is used in error messages only.
func Read(r io.Reader, path string, log *zap.Logger) (*Table, LoadStats, error) {
	if log == nil {
		log = zap.NewNop()
	}

	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, LoadStats{}, &SchemaError{Path: path, Missing: RequiredColumns}
		}
		return nil, LoadStats{}, fmt.Errorf("read taxonomy header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := col[name]; !seen {
			col[name] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, LoadStats{}, &SchemaError{Path: path, Missing: missing}
	}

	field := func(rec []string, name string) string {
		i := col[name]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	rows := make(map[string]Row)
	var stats LoadStats
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read taxonomy row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		bin := strings.TrimSpace(field(rec, "bin"))
		if bin == "" {
			stats.EmptyBin++
			log.Warn("Excluding taxonomy row with empty bin", zap.Int("row", stats.Rows))
			continue
		}
		if _, dup := rows[bin]; dup {
			stats.Duplicates++
		}
		rows[bin] = Row{
			Kingdom: field(rec, "kingdom"),
			Phylum:  field(rec, "phylum"),
			Class:   field(rec, "class"),
			Order:   field(rec, "order"),
			Family:  field(rec, "family"),
			Genus:   field(rec, "genus"),
			Species: field(rec, "species"),
		}
	}

	if stats.Duplicates > 0 {
		log.Warn("Duplicate bins collapsed, last occurrence kept", zap.Int("count", stats.Duplicates))
	}

	return &Table{rows: rows}, stats, nil
}
