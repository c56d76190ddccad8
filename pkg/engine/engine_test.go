package engine_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/fetch"
	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
	"github.com/Techcable/minecraft-mappings/pkg/core/mappings"
	"github.com/Techcable/minecraft-mappings/pkg/core/target"
	"github.com/Techcable/minecraft-mappings/pkg/core/version"
	"github.com/Techcable/minecraft-mappings/pkg/engine"
	"github.com/Techcable/minecraft-mappings/pkg/source/cache"
	"github.com/Techcable/minecraft-mappings/pkg/source/mcpsrc"
	"github.com/Techcable/minecraft-mappings/pkg/source/spigotsrc"
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
	if data, ok := f.responses[url]; ok {
		return data, nil
	}
	return nil, cerr.NewHTTPNotFound(url)
}

func zipWith(entries map[string]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, _ := zw.Create(name)
		w.Write([]byte(content))
	}
	zw.Close()
	return buf.Bytes()
}

type fakeGitRepo struct {
	files map[string][]byte
}

func (r *fakeGitRepo) EnsureCommit(remoteName, commitID string) error { return nil }
func (r *fakeGitRepo) ReadFileAtCommit(commitID, path string) ([]byte, error) {
	return r.files[path], nil
}

// Fixture convention: "ala" is the obfuscated class name, matching
// "net/minecraft/server/MinecraftServer" once deobfuscated by SRG, and
// "a" is the obfuscated field name inside it, matching SRG-side
// "field_1_a" and then MCP-side "running".
func testCache(t *testing.T) (*cache.MinecraftMappingsCache, *scriptedFetcher) {
	t.Helper()
	srgArchive := zipWith(map[string]string{
		"joined.srg": "CL: ala net/minecraft/server/MinecraftServer\nFD: ala/a net/minecraft/server/MinecraftServer/field_1_a\n",
	})
	mcpCSVArchive := zipWith(map[string]string{
		"fields.csv":  "searge,name,side,desc\nfield_1_a,running,0,\n",
		"methods.csv": "searge,name,side,desc\n",
	})
	f := &scriptedFetcher{responses: map[string][]byte{
		"http://files.minecraftforge.net/maven/de/oceanlabs/mcp/mcp/1.8.8/mcp-1.8.8-srg.zip": srgArchive,
		"http://export.mcpbot.bspk.rs/versions.json": []byte(`{"1.8.8":{"snapshot":[20180808],"stable":[]}}`),
		"http://export.mcpbot.bspk.rs/mcp_snapshot_nodoc/20180808-1.8.8/mcp_snapshot_nodoc-20180808-1.8.8.zip": mcpCSVArchive,
	}}

	srg := srgsrc.New(t.TempDir(), f, fetch.ExtractZipEntry)
	mcp := mcpsrc.New(t.TempDir(), f, fetch.ExtractZipEntry, srg)
	repo := &fakeGitRepo{files: map[string][]byte{
		"info.json": []byte(`{"minecraftVersion":"1.8.8","classMappings":"cl.csrg","memberMappings":"members.csrg"}`),
		"mappings/cl.csrg":      []byte("ala MinecraftServer\n"),
		"mappings/members.csrg": []byte("ala a running\n"),
	}}
	spigotFetcher := &scriptedFetcher{responses: map[string][]byte{
		"https://hub.spigotmc.org/versions/1.8.8.json": []byte(`{"name":"1.8.8","refs":{"BuildData":"deadbeef"}}`),
	}}
	spigot := spigotsrc.New(t.TempDir(), spigotFetcher, repo)

	return &cache.MinecraftMappingsCache{SRG: srg, MCP: mcp, Spigot: spigot}, f
}

func TestComputeObf2SrgAndCacheHit(t *testing.T) {
	c, f := testCache(t)
	e := engine.New(c, version.GameVersion{Major: 1, Minor: 8, Patch: 8}, nil)

	m, err := e.ComputeTarget(target.New(target.Obf, target.Srg))
	require.NoError(t, err)
	renamed, ok := m.GetRemappedClass("ala")
	require.True(t, ok)
	assert.Equal(t, "net/minecraft/server/MinecraftServer", string(renamed))

	callsAfterFirst := f.calls
	_, err = e.ComputeTarget(target.New(target.Obf, target.Srg))
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, f.calls, "second computeTarget call must be served from the engine memo")
}

func TestComputeSrg2Mcp(t *testing.T) {
	c, _ := testCache(t)
	rev := version.McpVersion{Revision: 20180808, Channel: version.Snapshot}
	e := engine.New(c, version.GameVersion{Major: 1, Minor: 8, Patch: 8}, &rev)

	m, err := e.ComputeTarget(target.New(target.Srg, target.Mcp))
	require.NoError(t, err)
	renamed, ok := m.GetRemappedField(mappings.FieldRef{
		DeclaringClass: "net/minecraft/server/MinecraftServer",
		Name:           "field_1_a",
	})
	require.True(t, ok)
	assert.Equal(t, "running", renamed.Name)
}

func TestSrgSpigotChainUsesObf2SpigotNotSelfChain(t *testing.T) {
	c, _ := testCache(t)
	e := engine.New(c, version.GameVersion{Major: 1, Minor: 8, Patch: 8}, nil)

	m, err := e.ComputeTarget(target.New(target.Srg, target.Spigot))
	require.NoError(t, err)
	renamed, ok := m.GetRemappedClass("net/minecraft/server/MinecraftServer")
	require.True(t, ok)
	assert.Equal(t, "net/minecraft/server/MinecraftServer", string(renamed))
}

func TestMissingMcpVersionFails(t *testing.T) {
	c, _ := testCache(t)
	e := engine.New(c, version.GameVersion{Major: 1, Minor: 8, Patch: 8}, nil)
	_, err := e.ComputeTarget(target.New(target.Srg, target.Mcp))
	require.Error(t, err)
}

func TestIdentityTargetPanics(t *testing.T) {
	c, _ := testCache(t)
	e := engine.New(c, version.GameVersion{Major: 1, Minor: 8, Patch: 8}, nil)
	assert.Panics(t, func() {
		e.ComputeTarget(target.New(target.Obf, target.Obf))
	})
}

func TestOnlyObfIdempotentWhenFromIsObf(t *testing.T) {
	c, _ := testCache(t)
	e := engine.New(c, version.GameVersion{Major: 1, Minor: 8, Patch: 8}, nil)
	plain, err := e.ComputeTarget(target.New(target.Obf, target.Srg))
	require.NoError(t, err)
	withOnlyObf, err := e.ComputeTarget(target.TargetMapping{
		From: target.Obf, To: target.Srg, Flags: target.NewTargetFlags(false, false, true),
	})
	require.NoError(t, err)
	assert.Equal(t, plain.ClassCount(), withOnlyObf.ClassCount())
}
