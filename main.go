package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/bold2apscale/logger"
	"github.com/yumyai/bold2apscale/pkg/convert"
	"github.com/yumyai/bold2apscale/pkg/taxonomy"
)

const VERSION = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {

	var opts convert.Options
	var verbose bool

	flag.StringVar(&opts.InputFasta, "i", "", "input FASTA file with ProcessID|BIN headers (required)")
	flag.StringVar(&opts.TaxonomyTSV, "t", "", "input taxonomy TSV file with BIN mappings (required)")
	flag.StringVar(&opts.OutName, "o", "db", "output database name")
	flag.StringVar(&opts.OutputDir, "output-dir", "", "output directory (default \".\")")
	flag.StringVar(&opts.Title, "title", "BOLD Database", "database title for BLAST")
	flag.StringVar(&opts.TempDir, "temp-dir", "", "directory for intermediate files (default: output directory)")
	flag.BoolVar(&opts.KeepTemp, "keep-temp", false, "keep temporary files after completion")
	flag.BoolVar(&opts.SkipBadHeaders, "skip-bad-headers", false, "skip records with malformed headers instead of aborting")
	flag.StringVar(&opts.AccessionColumn, "accession-col", taxonomy.DefaultAccessionColumn, "accession column name in the taxonomy artifact")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "show what would be done without writing anything")
	flag.BoolVar(&verbose, "v", false, "enable verbose logging")
	flag.Parse()

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	log, err := logger.New(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return 1
	}
	defer log.Sync() // Make sure that the buffered is flushed.

	// Try load env
	if dotenvErr := godotenv.Load(); dotenvErr != nil {
		log.Debug("No .env found, using local environment")
	}

	if opts.OutputDir == "" {
		opts.OutputDir = os.Getenv("BOLD2APSCALE_OUTPUT_DIR")
	}

	log.Info("Start:", zap.String("Version", VERSION))

	report, err := convert.Run(opts, log)
	if err != nil {
		log.Error("Conversion failed", zap.Error(err))
		return 1
	}

	report.Emit(log)
	return 0
}
