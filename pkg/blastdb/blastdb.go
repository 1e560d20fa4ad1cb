// Package blastdb shells out to NCBI makeblastdb to build the nucleotide
// database from a clean FASTA file. The tool's output is surfaced, never
// interpreted.
package blastdb

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/yumyai/bold2apscale/internal/util"
)

const tool = "makeblastdb"

// Extensions are the files makeblastdb leaves behind for a nucleotide
// database; Verify checks all of them.
var Extensions = []string{".ndb", ".nhr", ".nin", ".nsq", ".ntf", ".nto"}

// BuildError reports a non-zero exit from makeblastdb, with its stderr passed
// through untouched.
type BuildError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", tool, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// LookPath resolves the tool on PATH without spawning a process.
func LookPath() error {
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%s not found in PATH, install BLAST+: %w", tool, err)
	}
	return nil
}

// Available resolves the tool and probes it with -version.
func Available() error {
	if err := LookPath(); err != nil {
		return err
	}
	if err := exec.Command(tool, "-version").Run(); err != nil {
		return fmt.Errorf("%s not working: %w", tool, err)
	}
	return nil
}

// Args is the exact argument list Build runs, exposed so a dry run can report
// the intended command without executing it.
func Args(fastaPath, dbPath, title string) []string {
	return []string{
		"-in", fastaPath,
		"-dbtype", "nucl",
		"-out", dbPath,
		"-title", title,
		"-parse_seqids",
	}
}

// Build runs makeblastdb over the clean FASTA file. Sequence type is always
// nucleotide.
func Build(fastaPath, dbPath, title string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	args := Args(fastaPath, dbPath, title)
	log.Debug("Running "+tool, zap.Strings("args", args))

	cmd := exec.Command(tool, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return &BuildError{ExitCode: ee.ExitCode(), Stderr: stderr.String(), Err: err}
		}
		return fmt.Errorf("run %s: %w", tool, err)
	}

	log.Debug(tool+" output", zap.String("stdout", stdout.String()))
	return nil
}

// Verify checks that every database file makeblastdb should have produced is
// present.
func Verify(dbPath string) error {
	for _, ext := range Extensions {
		if !util.FileExists(dbPath + ext) {
			return fmt.Errorf("BLAST database file missing: %s%s", dbPath, ext)
		}
	}
	return nil
}
