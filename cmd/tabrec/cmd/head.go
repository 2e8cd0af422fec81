package cmd

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/tabkit/tabrec/pkg/schema"
)

// headCmd represents the head command
var headCmd = &cobra.Command{
	Use:   "head <file>",
	Short: "Show the first rows of a file",
	Long: `Read and type-check the first rows of a delimited file.

Examples:
  tabrec head pets.tsv
  tabrec head -n 3 --schema pet.yaml pets.tsv
  tabrec head --format go pets.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("rows")
		format, _ := cmd.Flags().GetString("format")

		r, err := openInput(args[0])
		if err != nil {
			return err
		}
		defer r.Close()

		recs := make([]schema.Record, 0, n)
		for len(recs) < n {
			rec, err := r.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		return printRecords(cmd.OutOrStdout(), r.Schema(), recs, format, fileFormat().Delimiter)
	},
}

func init() {
	headCmd.Flags().IntP("rows", "n", 10, "number of rows to show")
	headCmd.Flags().String("format", "table", "output format (table, tsv, or go)")
	rootCmd.AddCommand(headCmd)
}
