package fasta

import (
	"fmt"
	"strings"
)

// Delim separates the process ID from the BIN in a BOLD header.
const Delim = "|"

// MalformedHeaderError reports a header that cannot be split into a process
// ID and a BIN. Index is the 1-based record position in the input file; it is
// zero when the error is raised outside of a file pass.
type MalformedHeaderError struct {
	Index  int
	Header string
}

func (e *MalformedHeaderError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("record %d: malformed header %q: want ProcessID%sBIN", e.Index, e.Header, Delim)
	}
	return fmt.Sprintf("malformed header %q: want ProcessID%sBIN", e.Header, Delim)
}

// SplitHeader splits a raw header (without the leading '>') on the first
// delimiter into a process ID and a BIN, trimming surrounding whitespace from
// both. Headers without a delimiter, or with an empty part, are rejected.
func SplitHeader(header string) (processID, bin string, err error) {
	left, right, found := strings.Cut(header, Delim)
	if !found {
		return "", "", &MalformedHeaderError{Header: header}
	}
	processID = strings.TrimSpace(left)
	bin = strings.TrimSpace(right)
	if processID == "" || bin == "" {
		return "", "", &MalformedHeaderError{Header: header}
	}
	return processID, bin, nil
}
