package target_test

import (
	"testing"

	"github.com/Techcable/minecraft-mappings/pkg/core/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	f, err := target.ParseTargetFlags("")
	require.NoError(t, err)
	assert.Equal(t, target.TargetFlags{}, f)

	f, err = target.ParseTargetFlags("onlyobf")
	require.NoError(t, err)
	assert.Equal(t, target.NewTargetFlags(false, false, true), f)

	f, err = target.ParseTargetFlags("classes")
	require.NoError(t, err)
	assert.Equal(t, target.NewTargetFlags(true, false, false), f)

	f, err = target.ParseTargetFlags("members")
	require.NoError(t, err)
	assert.Equal(t, target.NewTargetFlags(false, true, false), f)

	f, err = target.ParseTargetFlags("classes-onlyobf")
	require.NoError(t, err)
	assert.Equal(t, target.NewTargetFlags(true, false, true), f)

	f, err = target.ParseTargetFlags("onlyobf-classes")
	require.NoError(t, err)
	assert.Equal(t, target.NewTargetFlags(true, false, true), f)
	assert.Equal(t, "classes-onlyobf", f.String())
}

func TestTargetFlagsConflictingFilterPanics(t *testing.T) {
	assert.Panics(t, func() {
		target.NewTargetFlags(true, true, false)
	})
}

func TestParseTarget(t *testing.T) {
	tm, err := target.Parse("srg2mcp")
	require.NoError(t, err)
	assert.Equal(t, target.New(target.Srg, target.Mcp), tm)
	assert.Equal(t, "srg2mcp", tm.String())

	tm, err = target.Parse("spigot2mcp-classes-onlyobf")
	require.NoError(t, err)
	assert.Equal(t, target.TargetMapping{
		From:  target.Spigot,
		To:    target.Mcp,
		Flags: target.NewTargetFlags(true, false, true),
	}, tm)
	assert.Equal(t, "spigot2mcp-classes-onlyobf", tm.String())

	tm2, err := target.Parse("onlyobf-classes")
	require.Error(t, err) // missing the from2to part entirely
	_ = tm2

	tm3, err := target.Parse("spigot2mcp-onlyobf-classes")
	require.NoError(t, err)
	assert.Equal(t, tm, tm3)
	assert.Equal(t, "spigot2mcp-classes-onlyobf", tm3.String())
}

func TestTargetMappingNeedsMcpVersion(t *testing.T) {
	assert.True(t, target.New(target.Srg, target.Mcp).NeedsMcpVersion())
	assert.True(t, target.New(target.Obf, target.Srg).NeedsMcpVersion())
	assert.False(t, target.New(target.Obf, target.Spigot).NeedsMcpVersion())
}

func TestTargetMappingParseAllRoundTrip(t *testing.T) {
	systems := []target.MappingSystem{target.Obf, target.Srg, target.Mcp, target.Spigot}
	filters := []*target.TargetFilter{nil}
	cf := target.FilterClasses
	mf := target.FilterMembers
	filters = append(filters, &cf, &mf)
	for _, from := range systems {
		for _, to := range systems {
			if from == to {
				continue
			}
			for _, filter := range filters {
				for _, onlyObf := range []bool{false, true} {
					tm := target.TargetMapping{From: from, To: to, Flags: target.TargetFlags{Filter: filter, OnlyObf: onlyObf}}
					parsed, err := target.Parse(tm.String())
					require.NoError(t, err)
					assert.Equal(t, tm, parsed)
				}
			}
		}
	}
}
