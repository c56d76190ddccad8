package srgsrc_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/fetch"
	"github.com/Techcable/minecraft-mappings/pkg/core/version"
	"github.com/Techcable/minecraft-mappings/pkg/source/srgsrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls   int
	archive []byte
}

func (f *countingFetcher) Get(url string) ([]byte, error) {
	f.calls++
	return f.archive, nil
}

func zipWith(entry string, content string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create(entry)
	w.Write([]byte(content))
	zw.Close()
	return buf.Bytes()
}

func TestLegacyFetchThenCacheHit(t *testing.T) {
	dir := t.TempDir()
	archive := zipWith("joined.srg", "CL: a/B x/Y\n")
	f := &countingFetcher{archive: archive}
	src := srgsrc.New(dir, f, fetch.ExtractZipEntry)

	v := version.GameVersion{Major: 1, Minor: 8, Patch: 8}
	m1, err := src.Get(v)
	require.NoError(t, err)
	assert.Equal(t, 1, m1.ClassCount())
	assert.Equal(t, 1, f.calls)

	m2, err := src.Get(v)
	require.NoError(t, err)
	assert.Equal(t, 1, m2.ClassCount())
	assert.Equal(t, 1, f.calls, "second Get must not refetch")
}

func TestMcpConfigFetchConvertsTSRG(t *testing.T) {
	dir := t.TempDir()
	archive := zipWith("config/joined.tsrg", "a/B x/Y\n\tf g\n")
	f := &countingFetcher{archive: archive}
	src := srgsrc.New(dir, f, fetch.ExtractZipEntry)

	v := version.GameVersion{Major: 1, Minor: 13, Patch: 0}
	m, err := src.Get(v)
	require.NoError(t, err)
	assert.Equal(t, 1, m.ClassCount())
	assert.Equal(t, 1, m.FieldCount())
}
