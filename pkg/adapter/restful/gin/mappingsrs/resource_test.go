package mappingsrs_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/fetch"
	"github.com/Techcable/minecraft-mappings/pkg/adapter/restful/gin/mappingsrs"
	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
	"github.com/Techcable/minecraft-mappings/pkg/source/cache"
	"github.com/Techcable/minecraft-mappings/pkg/source/mcpsrc"
	"github.com/Techcable/minecraft-mappings/pkg/source/spigotsrc"
	"github.com/Techcable/minecraft-mappings/pkg/source/srgsrc"
)

type scriptedFetcher struct {
	responses map[string][]byte
}

func (f *scriptedFetcher) Get(url string) ([]byte, error) {
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

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	srgArchive := zipWith(map[string]string{
		"joined.srg": "CL: ala net/minecraft/server/MinecraftServer\nFD: ala/a net/minecraft/server/MinecraftServer/field_1_a\n",
	})
	f := &scriptedFetcher{responses: map[string][]byte{
		"http://files.minecraftforge.net/maven/de/oceanlabs/mcp/mcp/1.8.8/mcp-1.8.8-srg.zip": srgArchive,
	}}
	srg := srgsrc.New(t.TempDir(), f, fetch.ExtractZipEntry)
	mcp := mcpsrc.New(t.TempDir(), f, fetch.ExtractZipEntry, srg)
	repo := &fakeGitRepo{files: map[string][]byte{
		"info.json":             []byte(`{"minecraftVersion":"1.8.8","classMappings":"cl.csrg","memberMappings":"members.csrg"}`),
		"mappings/cl.csrg":      []byte("ala MinecraftServer\n"),
		"mappings/members.csrg": []byte("ala a running\n"),
	}}
	spigotFetcher := &scriptedFetcher{responses: map[string][]byte{
		"https://hub.spigotmc.org/versions/1.8.8.json": []byte(`{"name":"1.8.8","refs":{"BuildData":"deadbeef"}}`),
	}}
	spigot := spigotsrc.New(t.TempDir(), spigotFetcher, repo)
	c := &cache.MinecraftMappingsCache{SRG: srg, MCP: mcp, Spigot: spigot}

	gin.SetMode(gin.TestMode)
	e := gin.New()
	r := e.Group("/api/mcmap/v1")
	mappingsrs.Register(r, c)
	return e
}

func TestBuildObf2SrgReturnsSerializedMappings(t *testing.T) {
	e := testEngine(t)
	body := `{"minecraftVersion":"1.8.8","targets":["obf2srg"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/mcmap/v1/mappings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp mappingsrs.BuildResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.SerializedMappings["obf2srg"], "CL: ala net/minecraft/server/MinecraftServer")
}

func TestBuildUnknownGameVersionReturns404(t *testing.T) {
	e := testEngine(t)
	body := `{"minecraftVersion":"9.9.9","targets":["obf2srg"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/mcmap/v1/mappings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBuildMissingMcpVersionReturns400(t *testing.T) {
	e := testEngine(t)
	body := `{"minecraftVersion":"1.8.8","targets":["srg2mcp"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/mcmap/v1/mappings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuildMissingTargetsFailsValidation(t *testing.T) {
	e := testEngine(t)
	body := `{"minecraftVersion":"1.8.8"}`
	req := httptest.NewRequest(http.MethodPost, "/api/mcmap/v1/mappings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
