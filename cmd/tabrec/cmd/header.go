package cmd

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabkit/tabrec/pkg/dsv"
	"github.com/tabkit/tabrec/pkg/fsx"
)

// headerCmd represents the header command
var headerCmd = &cobra.Command{
	Use:   "header <file>",
	Short: "Show a file's preface and fieldnames",
	Long: `Show the header of a delimited file: the preface lines that come
before the fieldnames, then the fieldnames with their column numbers.

Example:
  tabrec header pets.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := fsx.OpenRead(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		header, err := dsv.ReadHeader(bufio.NewReader(f), fileFormat())
		if errors.Is(err, dsv.ErrNoHeader) {
			if fi, serr := f.Stat(); serr == nil && fi.Size() == 0 {
				return fmt.Errorf("%s: %w", args[0], fsx.ErrEmptyFile)
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		for _, line := range header.Preface {
			cmd.Println(line)
		}
		for i, name := range header.Fieldnames {
			cmd.Printf("%d\t%s\n", i+1, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headerCmd)
}
