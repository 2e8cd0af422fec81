package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"

	"github.com/tabkit/tabrec/pkg/schema"
)

// printRecords displays records in the chosen output format: an aligned
// table, raw delimited lines, or spew dumps of the coerced values.
func printRecords(w io.Writer, sch *schema.Schema, recs []schema.Record, format, delimiter string) error {
	switch format {
	case "table":
		return printRecordsTable(w, sch.Fieldnames(), recs)
	case "tsv":
		return printRecordsRaw(w, sch, recs, delimiter)
	case "go":
		spew.Fdump(w, recs)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// printRecordsTable renders one record per line under a fieldname header,
// aligned into columns.
func printRecordsTable(w io.Writer, fieldnames []string, recs []schema.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(fieldnames, "\t"))

	for _, rec := range recs {
		cells := make([]string, len(fieldnames))
		for i, name := range fieldnames {
			if v, ok := rec[name]; ok && v != nil {
				cells[i] = fmt.Sprintf("%v", v)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// printRecordsRaw re-encodes each record the way the writer would, one
// delimited line per record with no header.
func printRecordsRaw(w io.Writer, sch *schema.Schema, recs []schema.Record, delimiter string) error {
	fieldnames := sch.Fieldnames()
	for _, rec := range recs {
		tokens, err := sch.Row(rec, fieldnames)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, strings.Join(tokens, delimiter)); err != nil {
			return err
		}
	}
	return nil
}
