package convert

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yumyai/bold2apscale/internal/util"
	"github.com/yumyai/bold2apscale/pkg/taxonomy"
)

// Options configures one conversion run.
type Options struct {
	InputFasta  string // BOLD FASTA with ProcessID|BIN headers
	TaxonomyTSV string // tab-separated taxonomy with bin..species columns

	OutName   string // base name of the outputs, default "db"
	OutputDir string // default "."
	Title     string // BLAST database title

	TempDir  string // where the clean FASTA goes, default OutputDir
	KeepTemp bool   // keep the clean FASTA after a successful run

	SkipBadHeaders  bool   // skip malformed records instead of aborting
	AccessionColumn string // artifact column name for the process ID
	DryRun          bool   // validate and report, write nothing
}

func (o *Options) normalize() {
	if o.OutName == "" {
		o.OutName = "db"
	}
	if o.OutputDir == "" {
		o.OutputDir = "."
	}
	if o.Title == "" {
		o.Title = "BOLD Database"
	}
	if o.TempDir == "" {
		o.TempDir = o.OutputDir
	}
	if o.AccessionColumn == "" {
		o.AccessionColumn = taxonomy.DefaultAccessionColumn
	}
}

func (o *Options) validate() error {
	if o.InputFasta == "" {
		return errors.New("input FASTA path is required")
	}
	if o.TaxonomyTSV == "" {
		return errors.New("taxonomy TSV path is required")
	}
	if !util.FileExists(o.InputFasta) {
		return fmt.Errorf("input FASTA file not found: %s", o.InputFasta)
	}
	if !util.FileExists(o.TaxonomyTSV) {
		return fmt.Errorf("taxonomy file not found: %s", o.TaxonomyTSV)
	}
	return nil
}

// DatabasePath is where the BLAST database is written.
func (o *Options) DatabasePath() string {
	return filepath.Join(o.OutputDir, o.OutName)
}

// TaxonomyPath is where the taxonomy artifact is written.
func (o *Options) TaxonomyPath() string {
	return filepath.Join(o.OutputDir, o.OutName+"_taxonomy.parquet.snappy")
}

// CleanFastaPath is where the rewritten FASTA is written before the index
// build.
func (o *Options) CleanFastaPath() string {
	return filepath.Join(o.TempDir, o.OutName+"_clean.fasta")
}
