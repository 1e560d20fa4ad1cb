package blastdb

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestArgs(t *testing.T) {
	args := Args("/tmp/db_clean.fasta", "/out/db", "BOLD Database")

	want := []string{"-in", "/tmp/db_clean.fasta", "-dbtype", "nucl", "-out", "/out/db", "-title", "BOLD Database", "-parse_seqids"}
	if len(args) != len(want) {
		t.Fatalf("args = %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestBuildErrorMessage(t *testing.T) {
	err := &BuildError{ExitCode: 2, Stderr: "BLAST options error\n"}
	msg := err.Error()
	if !strings.Contains(msg, "status 2") || !strings.Contains(msg, "BLAST options error") {
		t.Errorf("message = %q", msg)
	}

	bare := &BuildError{ExitCode: 1}
	if strings.HasSuffix(bare.Error(), ": ") {
		t.Errorf("message = %q", bare.Error())
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db")

	if err := Verify(dbPath); err == nil {
		t.Fatal("expected error for missing database files")
	}

	for _, ext := range Extensions {
		if err := os.WriteFile(dbPath+ext, []byte("x"), 0o644); err != nil {
			t.Fatalf("tmp: %v", err)
		}
	}
	if err := Verify(dbPath); err != nil {
		t.Fatalf("verify: %v", err)
	}

	// one missing extension fails again
	if err := os.Remove(dbPath + ".nsq"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := Verify(dbPath); err == nil {
		t.Fatal("expected error for missing .nsq")
	}
}

func TestBuild(t *testing.T) {
	if _, err := exec.LookPath(tool); err != nil {
		t.Skipf("%s not installed", tool)
	}

	dir := t.TempDir()
	fastaPath := filepath.Join(dir, "clean.fasta")
	if err := os.WriteFile(fastaPath, []byte(">P1\nACGTACGTACGTACGT\n"), 0o644); err != nil {
		t.Fatalf("tmp: %v", err)
	}

	dbPath := filepath.Join(dir, "db")
	if err := Build(fastaPath, dbPath, "test db", nil); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := Verify(dbPath); err != nil {
		t.Fatalf("verify after build: %v", err)
	}
}

func TestBuildMissingInput(t *testing.T) {
	if _, err := exec.LookPath(tool); err != nil {
		t.Skipf("%s not installed", tool)
	}

	err := Build(filepath.Join(t.TempDir(), "nope.fasta"), filepath.Join(t.TempDir(), "db"), "t", nil)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}
