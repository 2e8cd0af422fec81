package dsv

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabkit/tabrec/pkg/schema"
)

type observation struct {
	Site    string        `dsv:"site"`
	Active  bool          `dsv:"active"`
	Count   int           `dsv:"count"`
	Total   int64         `dsv:"total"`
	Seq     uint32        `dsv:"seq"`
	Density float64       `dsv:"density"`
	Seen    time.Time     `dsv:"seen"`
	Wait    time.Duration `dsv:"wait"`
	Sensor  net.IP        `dsv:"sensor"`
	Remark  *string       `dsv:"remark"`
}

func TestRoundTrip_AllKinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.tsv")

	remark := "wind picked up"
	want := []observation{
		{
			Site:    "north ridge",
			Active:  true,
			Count:   14,
			Total:   9000000000,
			Seq:     7,
			Density: 0.725,
			Seen:    time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
			Wait:    90 * time.Minute,
			Sensor:  net.ParseIP("10.1.2.3"),
			Remark:  &remark,
		},
		{
			Site:    "east fork 🌲",
			Active:  false,
			Count:   -3,
			Total:   -1,
			Seq:     0,
			Density: -0.5,
			Seen:    time.Date(2023, 12, 31, 23, 59, 59, 123456789, time.UTC),
			Wait:    time.Second,
			Sensor:  net.ParseIP("192.168.10.20"),
			Remark:  nil,
		},
	}

	w, err := NewWriter[observation](path, WriterConfig{})
	require.NoError(t, err)
	require.NoError(t, w.WriteAll(want))
	require.NoError(t, w.Close())

	r, err := NewReader[observation](path, ReaderConfig{})
	require.NoError(t, err)
	defer r.Close()

	got, err := r.All()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestRoundTrip_RereadingIsIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")

	w, err := NewWriter[fooBar](path, WriterConfig{})
	require.NoError(t, err)
	require.NoError(t, w.WriteAll([]fooBar{{"abc", 1}, {"def", 2}, {"ghi", 3}}))
	require.NoError(t, w.Close())

	read := func() []fooBar {
		r, err := NewReader[fooBar](path, ReaderConfig{})
		require.NoError(t, err)
		defer r.Close()
		recs, err := r.All()
		require.NoError(t, err)
		return recs
	}

	first := read()
	second := read()
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestRoundTrip_AppendPreservesEarlierRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")

	w, err := NewWriter[fooBar](path, WriterConfig{})
	require.NoError(t, err)
	require.NoError(t, w.WriteAll([]fooBar{{"abc", 1}, {"def", 2}}))
	require.NoError(t, w.Close())

	a, err := NewWriter[fooBar](path, WriterConfig{Mode: Append})
	require.NoError(t, err)
	require.NoError(t, a.Write(fooBar{"ghi", 3}))
	require.NoError(t, a.Close())

	r, err := NewReader[fooBar](path, ReaderConfig{})
	require.NoError(t, err)
	defer r.Close()

	got, err := r.All()
	require.NoError(t, err)
	assert.Equal(t, []fooBar{{"abc", 1}, {"def", 2}, {"ghi", 3}}, got)
}

func TestRoundTrip_ProjectedSubset(t *testing.T) {
	type fooOnly struct {
		Foo string `dsv:"foo"`
	}

	path := filepath.Join(t.TempDir(), "data.tsv")

	w, err := NewWriter[fooBar](path, WriterConfig{Include: []string{"foo"}})
	require.NoError(t, err)
	require.NoError(t, w.WriteAll([]fooBar{{"abc", 1}, {"def", 2}}))
	require.NoError(t, w.Close())

	r, err := NewReader[fooOnly](path, ReaderConfig{})
	require.NoError(t, err)
	defer r.Close()

	got, err := r.All()
	require.NoError(t, err)
	assert.Equal(t, []fooOnly{{"abc"}, {"def"}}, got)
}

func TestRoundTrip_DynamicWriterTypedReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")

	sch, err := schema.New("row", []schema.Field{
		{Name: "foo", Kind: schema.KindString},
		{Name: "bar", Kind: schema.KindInt},
	})
	require.NoError(t, err)

	w, err := NewDynamicWriter(path, sch, WriterConfig{})
	require.NoError(t, err)
	require.NoError(t, w.WriteAll([]schema.Record{
		{"foo": "abc", "bar": 1},
		{"foo": "def", "bar": 2},
	}))
	require.NoError(t, w.Close())

	r, err := NewReader[fooBar](path, ReaderConfig{})
	require.NoError(t, err)
	defer r.Close()

	got, err := r.All()
	require.NoError(t, err)
	assert.Equal(t, []fooBar{{"abc", 1}, {"def", 2}}, got)
}

func TestRoundTrip_TypedWriterDynamicReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")

	w, err := NewWriter[fooBar](path, WriterConfig{})
	require.NoError(t, err)
	require.NoError(t, w.Write(fooBar{"abc", 1}))
	require.NoError(t, w.Close())

	r, err := NewDynamicReader(path, nil, ReaderConfig{})
	require.NoError(t, err)
	defer r.Close()

	got, err := r.All()
	require.NoError(t, err)
	assert.Equal(t, []schema.Record{{"foo": "abc", "bar": "1"}}, got)
}

func TestRoundTrip_CustomFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	format := Format{Delimiter: ",", Comment: ";"}

	w, err := NewWriter[fooBar](path, WriterConfig{
		Format:  format,
		Preface: []string{"quarterly export"},
	})
	require.NoError(t, err)
	require.NoError(t, w.WriteAll([]fooBar{{"abc", 1}, {"def", 2}}))
	require.NoError(t, w.Close())

	r, err := NewReader[fooBar](path, ReaderConfig{Format: format})
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"; quarterly export"}, r.Header().Preface)

	got, err := r.All()
	require.NoError(t, err)
	assert.Equal(t, []fooBar{{"abc", 1}, {"def", 2}}, got)
}
