package spigotsrc_test

import (
	"testing"

	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
	"github.com/Techcable/minecraft-mappings/pkg/core/version"
	"github.com/Techcable/minecraft-mappings/pkg/source/spigotsrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	responses map[string][]byte
	notFound  map[string]bool
}

func (f *fakeFetcher) Get(url string) ([]byte, error) {
	if f.notFound[url] {
		return nil, cerr.NewHTTPNotFound(url)
	}
	return f.responses[url], nil
}

type fakeGitRepo struct {
	ensureCalls int
	files       map[string][]byte
}

func (r *fakeGitRepo) EnsureCommit(remoteName, commitID string) error {
	r.ensureCalls++
	return nil
}

func (r *fakeGitRepo) ReadFileAtCommit(commitID, path string) ([]byte, error) {
	return r.files[path], nil
}

func TestSpigotLoadThenCacheHit(t *testing.T) {
	dir := t.TempDir()
	v := version.GameVersion{Major: 1, Minor: 8, Patch: 8}
	f := &fakeFetcher{responses: map[string][]byte{
		"https://hub.spigotmc.org/versions/1.8.8.json": []byte(`{"name":"1.8.8","refs":{"BuildData":"abc123"}}`),
	}}
	repo := &fakeGitRepo{files: map[string][]byte{
		"info.json": []byte(`{"minecraftVersion":"1.8.8","classMappings":"bukkit-1.8.8-cl.csrg","memberMappings":"bukkit-1.8.8-members.csrg"}`),
		"mappings/bukkit-1.8.8-cl.csrg":      []byte("a/B x/Y\ninvalid.artifact here\n"),
		"mappings/bukkit-1.8.8-members.csrg": []byte("a/B f g\n"),
	}}
	src := spigotsrc.New(dir, f, repo)

	e, err := src.Get(v)
	require.NoError(t, err)
	assert.Equal(t, 1, e.ClassMappings.ClassCount())
	assert.Equal(t, 1, e.MemberMappings.FieldCount())
	assert.Equal(t, 1, repo.ensureCalls)

	renamedClass, ok := e.Chained.GetRemappedClass("a/B")
	require.True(t, ok)
	assert.Equal(t, "x/Y", string(renamedClass))

	_, err = src.Get(v)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.ensureCalls, "second Get must be served from memory, no git traversal")
}

func TestSpigotUnknownVersionTranslates404(t *testing.T) {
	dir := t.TempDir()
	v := version.GameVersion{Major: 99, Minor: 99}
	f := &fakeFetcher{notFound: map[string]bool{
		"https://hub.spigotmc.org/versions/99.99.json": true,
	}}
	src := spigotsrc.New(dir, f, &fakeGitRepo{})

	_, err := src.Get(v)
	require.Error(t, err)
	_, ok := err.(*cerr.UnknownGameVersion)
	assert.True(t, ok, "404 on version-info must translate to UnknownGameVersion, got %T", err)
}
