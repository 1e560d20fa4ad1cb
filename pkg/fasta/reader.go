package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA record with its body lines kept exactly as they appear
// in the source, so the original line wrapping survives a rewrite.
type Record struct {
	Header string   // raw header text, without the leading '>'
	Lines  []string // sequence lines, verbatim
}

// Sequence returns the concatenated sequence body.
func (r *Record) Sequence() string {
	return strings.Join(r.Lines, "")
}

// Reader is a single-pass cursor over the records of a FASTA stream. Records
// are produced lazily; the whole file is never held in memory.
type Reader struct {
	sc      *bufio.Scanner
	pending string // header of the next record, already consumed from the stream
	started bool
	done    bool
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	// allow very long single-line sequences
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, 64*1024*1024)
	return &Reader{sc: sc}
}

// Next returns the next record, or io.EOF once the stream is exhausted.
func (r *Reader) Next() (*Record, error) {
	if r.done {
		return nil, io.EOF
	}

	rec := &Record{}
	if r.started {
		rec.Header = r.pending
	}

	for r.sc.Scan() {
		line := strings.TrimRight(r.sc.Text(), "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			header := strings.TrimSpace(line[1:])
			if !r.started {
				r.started = true
				rec.Header = header
				continue
			}
			r.pending = header
			return rec, nil
		}
		if !r.started {
			return nil, fmt.Errorf("sequence data before first header: %q", line)
		}
		rec.Lines = append(rec.Lines, line)
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("scan fasta: %w", err)
	}

	r.done = true
	if !r.started {
		return nil, io.EOF
	}
	return rec, nil
}

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens a FASTA file for reading, transparently decompressing gzip input
// detected by magic number (1F 8B) or by a .gz suffix.
func Open(path string) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
