package dsv

import (
	"bufio"
	"io"
	"strings"
)

// Header is the leading section of a delimited file: any number of preface
// lines (comments or blanks) followed by one line naming the fields.
type Header struct {
	// Preface holds the lines before the fieldnames line, trimmed of
	// surrounding whitespace. Comment prefixes are kept.
	Preface []string
	// Fieldnames are the column names from the header line, in file order.
	Fieldnames []string
}

// ReadHeader consumes lines from br until it finds the fieldnames line.
// Lines that start with the comment prefix or contain only whitespace are
// collected as preface. ErrNoHeader is returned when the input ends before
// a fieldnames line appears.
func ReadHeader(br *bufio.Reader, format Format) (*Header, error) {
	format, err := format.normalize()
	if err != nil {
		return nil, err
	}

	var preface []string
	for {
		line, err := readLine(br)
		if err == io.EOF {
			return nil, ErrNoHeader
		}
		if err != nil {
			return nil, err
		}

		if strings.HasPrefix(line, format.Comment) || strings.TrimSpace(line) == "" {
			preface = append(preface, strings.TrimSpace(line))
			continue
		}

		return &Header{
			Preface:    preface,
			Fieldnames: strings.Split(strings.TrimSpace(line), format.Delimiter),
		}, nil
	}
}

// readLine returns the next line without its trailing newline. A final line
// with no newline is still returned; io.EOF only appears once no data is
// left.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return chomp(line), nil
		}
		return "", err
	}
	return chomp(line), nil
}

func chomp(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
