package fasta

import (
	"bufio"
	"io"
)

// Writer emits FASTA records incrementally. Body lines are written exactly as
// handed in, one per line.
type Writer struct {
	bw *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

func (w *Writer) WriteRecord(header string, lines []string) error {
	if err := w.bw.WriteByte('>'); err != nil {
		return err
	}
	if _, err := w.bw.WriteString(header); err != nil {
		return err
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := w.bw.WriteString(line); err != nil {
			return err
		}
		if err := w.bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// Flush pushes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
