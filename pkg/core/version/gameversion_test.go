package version_test

import (
	"testing"

	"github.com/Techcable/minecraft-mappings/pkg/core/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGameVersionRoundTrip(t *testing.T) {
	v, err := version.ParseGameVersion("1.13")
	require.NoError(t, err)
	assert.Equal(t, version.GameVersion{Major: 1, Minor: 13, Patch: 0}, v)
	assert.Equal(t, "1.13", v.String())

	v, err = version.ParseGameVersion("1.8.8")
	require.NoError(t, err)
	assert.Equal(t, version.GameVersion{Major: 1, Minor: 8, Patch: 8}, v)
	assert.Equal(t, "1.8.8", v.String())
}

func TestParseGameVersionRejectsFourComponents(t *testing.T) {
	_, err := version.ParseGameVersion("1.8.8.1")
	require.Error(t, err)
}

func TestGameVersionOrdering(t *testing.T) {
	a := version.GameVersion{Major: 1, Minor: 8, Patch: 0}
	b := version.GameVersion{Major: 1, Minor: 13, Patch: 0}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, b.AtLeast(a))
}
