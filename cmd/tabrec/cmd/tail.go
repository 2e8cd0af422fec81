package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tabkit/tabrec/pkg/dsv"
	"github.com/tabkit/tabrec/pkg/fsx"
	"github.com/tabkit/tabrec/pkg/schema"
)

// tailCmd represents the tail command
var tailCmd = &cobra.Command{
	Use:   "tail <file>",
	Short: "Show the last rows of a file",
	Long: `Read a delimited file and show its last rows. With --follow the
command keeps the file open and prints rows as they are appended,
until interrupted.

Examples:
  tabrec tail pets.tsv
  tabrec tail -n 3 pets.tsv
  tabrec tail --follow --schema pet.yaml pets.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("rows")
		follow, _ := cmd.Flags().GetBool("follow")
		format, _ := cmd.Flags().GetString("format")

		r, err := openInput(args[0])
		if err != nil {
			return err
		}
		defer r.Close()

		// Keep a sliding window of the last n rows. Bad rows are reported
		// and skipped so one stray line does not hide the tail.
		last := make([]schema.Record, 0, n)
		for {
			rec, err := r.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			var rowErr *dsv.RowError
			if errors.As(err, &rowErr) {
				fmt.Fprintln(cmd.ErrOrStderr(), rowErr)
				continue
			}
			if err != nil {
				return err
			}
			last = append(last, rec)
			if len(last) > n {
				last = last[1:]
			}
		}

		if err := printRecords(cmd.OutOrStdout(), r.Schema(), last, format, fileFormat().Delimiter); err != nil {
			return err
		}
		if !follow {
			return nil
		}
		return followRows(cmd, args[0], r)
	},
}

// followRows blocks, printing rows appended to path, until the file goes
// away or the command's context ends.
func followRows(cmd *cobra.Command, path string, r *dsv.DynamicReader) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file itself so rename and remove
	// events for the file are still delivered.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != abs {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				return fmt.Errorf("%s: file went away while following", path)
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			if err := verifyHeader(path, fileFormat(), r.Schema().Fieldnames()); err != nil {
				return err
			}
			if err := drainRows(cmd, r); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

// verifyHeader re-reads the header from disk and confirms the file still
// carries the fields the follow started with.
func verifyHeader(path string, format dsv.Format, fieldnames []string) error {
	f, err := fsx.OpenRead(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header, err := dsv.ReadHeader(bufio.NewReader(f), format)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if !slices.Equal(header.Fieldnames, fieldnames) {
		return fmt.Errorf("%s: header changed while following", path)
	}
	return nil
}

// drainRows reads until the reader runs dry, printing each row as one
// delimited line.
func drainRows(cmd *cobra.Command, r *dsv.DynamicReader) error {
	delimiter := fileFormat().Delimiter
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var rowErr *dsv.RowError
		if errors.As(err, &rowErr) {
			fmt.Fprintln(cmd.ErrOrStderr(), rowErr)
			continue
		}
		if err != nil {
			return err
		}
		if err := printRecordsRaw(cmd.OutOrStdout(), r.Schema(), []schema.Record{rec}, delimiter); err != nil {
			return err
		}
	}
}

func init() {
	tailCmd.Flags().IntP("rows", "n", 10, "number of rows to show")
	tailCmd.Flags().BoolP("follow", "f", false, "keep reading and print rows as they are appended")
	tailCmd.Flags().String("format", "table", "output format (table, tsv, or go)")
	rootCmd.AddCommand(tailCmd)
}
