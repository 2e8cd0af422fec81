package dsv

import (
	"fmt"
	"strings"
)

// Format describes how a delimited file is laid out. The zero value is
// tab-separated with "#" comments, which is the format every reader and
// writer defaults to.
type Format struct {
	// Delimiter separates tokens within a line. It may be longer than one
	// character. Defaults to a tab.
	Delimiter string
	// Comment prefixes preface lines before the header. Defaults to "#".
	Comment string
}

// normalize fills in defaults and rejects formats that cannot be parsed
// unambiguously.
func (f Format) normalize() (Format, error) {
	if f.Delimiter == "" {
		f.Delimiter = "\t"
	}
	if f.Comment == "" {
		f.Comment = "#"
	}
	if strings.ContainsAny(f.Delimiter, "\r\n") {
		return Format{}, fmt.Errorf("delimiter %q must not contain line breaks", f.Delimiter)
	}
	if strings.ContainsAny(f.Comment, "\r\n") {
		return Format{}, fmt.Errorf("comment prefix %q must not contain line breaks", f.Comment)
	}
	if f.Delimiter == f.Comment {
		return Format{}, fmt.Errorf("delimiter and comment prefix are both %q", f.Delimiter)
	}
	return f, nil
}
