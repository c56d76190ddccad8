package mcpsrc_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/fetch"
	"github.com/Techcable/minecraft-mappings/pkg/core/version"
	"github.com/Techcable/minecraft-mappings/pkg/source/mcpsrc"
	"github.com/Techcable/minecraft-mappings/pkg/source/srgsrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedFetcher struct {
	calls     int
	responses map[string][]byte
}

func (f *scriptedFetcher) Get(url string) ([]byte, error) {
	f.calls++
	return f.responses[url], nil
}

func mcpZip() []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, _ := zw.Create("fields.csv")
	fw.Write([]byte("searge,name,side,desc\nfield_1_a,myField,0,\n"))
	mw, _ := zw.Create("methods.csv")
	mw.Write([]byte("searge,name,side,desc\nfunc_1_b,myMethod,0,\n"))
	zw.Close()
	return buf.Bytes()
}

func TestResolveRevisionFetchesThenCaches(t *testing.T) {
	dir := t.TempDir()
	f := &scriptedFetcher{responses: map[string][]byte{
		"http://export.mcpbot.bspk.rs/versions.json": []byte(`{"1.12.2":{"snapshot":[20180808],"stable":[39]}}`),
		"http://export.mcpbot.bspk.rs/mcp_snapshot_nodoc/20180808-1.12.2/mcp_snapshot_nodoc-20180808-1.12.2.zip": mcpZip(),
	}}
	srg := srgsrc.New(t.TempDir(), f, fetch.ExtractZipEntry)
	src := mcpsrc.New(dir, f, fetch.ExtractZipEntry, srg)

	rev := version.McpVersion{Revision: 20180808, Channel: version.Snapshot}
	e, err := src.Get(rev)
	require.NoError(t, err)
	assert.Equal(t, version.GameVersion{Major: 1, Minor: 12, Patch: 2}, e.GameVersion)
	name, ok := e.Fields.Lookup("field_1_a")
	require.True(t, ok)
	assert.Equal(t, "myField", name)

	callsAfterFirst := f.calls
	_, err = src.Get(rev)
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, f.calls, "cache hit must skip both the version index and the archive fetch")
}

func TestUnknownRevisionFails(t *testing.T) {
	dir := t.TempDir()
	f := &scriptedFetcher{responses: map[string][]byte{
		"http://export.mcpbot.bspk.rs/versions.json": []byte(`{"1.12.2":{"snapshot":[1],"stable":[]}}`),
	}}
	srg := srgsrc.New(t.TempDir(), f, fetch.ExtractZipEntry)
	src := mcpsrc.New(dir, f, fetch.ExtractZipEntry, srg)

	_, err := src.Get(version.McpVersion{Revision: 999, Channel: version.Snapshot})
	require.Error(t, err)
}
