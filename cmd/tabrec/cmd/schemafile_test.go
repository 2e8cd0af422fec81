package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabkit/tabrec/pkg/schema"
)

func writeSchemaFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSchemaFile(t *testing.T) {
	t.Run("Valid schema", func(t *testing.T) {
		path := writeSchemaFile(t, `name: pet
fields:
  - name: name
    type: string
  - name: age
    type: int
  - name: weight
    type: float64
`)
		sch, err := loadSchemaFile(path)
		require.NoError(t, err)
		assert.Equal(t, "pet", sch.Name())
		assert.Equal(t, []string{"name", "age", "weight"}, sch.Fieldnames())
		assert.True(t, sch.Dynamic())
	})

	t.Run("Type aliases", func(t *testing.T) {
		path := writeSchemaFile(t, `name: reading
fields:
  - name: at
    type: datetime
  - name: value
    type: float
`)
		sch, err := loadSchemaFile(path)
		require.NoError(t, err)
		fields := sch.Fields()
		assert.Equal(t, schema.KindTime, fields[0].Kind)
		assert.Equal(t, schema.KindFloat64, fields[1].Kind)
	})

	t.Run("Unknown field type", func(t *testing.T) {
		path := writeSchemaFile(t, `name: pet
fields:
  - name: name
    type: varchar
`)
		_, err := loadSchemaFile(path)
		assert.ErrorContains(t, err, "unknown field type")
	})

	t.Run("Duplicate fields", func(t *testing.T) {
		path := writeSchemaFile(t, `name: pet
fields:
  - name: name
    type: string
  - name: name
    type: string
`)
		_, err := loadSchemaFile(path)
		assert.ErrorIs(t, err, schema.ErrDuplicateField)
	})

	t.Run("Malformed yaml", func(t *testing.T) {
		path := writeSchemaFile(t, "fields: [}")
		_, err := loadSchemaFile(path)
		assert.ErrorContains(t, err, "failed to parse schema file")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := loadSchemaFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorContains(t, err, "failed to read schema file")
	})
}

func TestUnescapeDelimiter(t *testing.T) {
	assert.Equal(t, "\t", unescapeDelimiter(`\t`))
	assert.Equal(t, ",", unescapeDelimiter(","))
	assert.Equal(t, "\t", unescapeDelimiter("\t"))
}
