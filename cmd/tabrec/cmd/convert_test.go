package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabkit/tabrec/pkg/dsv"
)

func TestConvertFile(t *testing.T) {
	t.Run("Delimiter swap keeps preface", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "pets.tsv")
		dst := filepath.Join(dir, "pets.csv")
		require.NoError(t, os.WriteFile(src,
			[]byte("# herd of 2025\nname\tage\nrex\t1\nfido\t2\n"), 0644))

		err := convertFile(src, dst, nil, dsv.ReaderConfig{}, dsv.WriterConfig{
			Format: dsv.Format{Delimiter: ","},
		})
		require.NoError(t, err)

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "# herd of 2025\nname,age\nrex,1\nfido,2\n", string(data))
	})

	t.Run("Include reorders fields", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "pets.tsv")
		dst := filepath.Join(dir, "out.tsv")
		require.NoError(t, os.WriteFile(src, []byte("name\tage\nrex\t1\n"), 0644))

		err := convertFile(src, dst, nil, dsv.ReaderConfig{}, dsv.WriterConfig{
			Include: []string{"age", "name"},
		})
		require.NoError(t, err)

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "age\tname\n1\trex\n", string(data))
	})

	t.Run("Typed values re-encode canonically", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "pets.tsv")
		dst := filepath.Join(dir, "out.tsv")
		require.NoError(t, os.WriteFile(src, []byte("name\tage\nrex\t007\n"), 0644))

		err := convertFile(src, dst, petSchema(t), dsv.ReaderConfig{}, dsv.WriterConfig{})
		require.NoError(t, err)

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "name\tage\nrex\t7\n", string(data))
	})

	t.Run("Source row errors abort", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "pets.tsv")
		dst := filepath.Join(dir, "out.tsv")
		require.NoError(t, os.WriteFile(src, []byte("name\tage\nrex\tbad\n"), 0644))

		err := convertFile(src, dst, petSchema(t), dsv.ReaderConfig{}, dsv.WriterConfig{})
		var rowErr *dsv.RowError
		assert.ErrorAs(t, err, &rowErr)
	})

	t.Run("Refuses existing destination", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "pets.tsv")
		dst := filepath.Join(dir, "out.tsv")
		require.NoError(t, os.WriteFile(src, []byte("name\tage\nrex\t1\n"), 0644))
		require.NoError(t, os.WriteFile(dst, []byte("keep me\n"), 0644))

		err := convertFile(src, dst, nil, dsv.ReaderConfig{}, dsv.WriterConfig{FailIfExists: true})
		assert.Error(t, err)

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "keep me\n", string(data))
	})
}
