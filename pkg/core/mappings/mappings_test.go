package mappings_test

import (
	"testing"

	"github.com/Techcable/minecraft-mappings/pkg/core/mappings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinySrg() mappings.Mappings {
	return mappings.NewSimpleMappings().
		SetClassName("a/B", "x/Y").
		SetFieldName(
			mappings.FieldRef{DeclaringClass: "a/B", Name: "f"},
			mappings.FieldRef{DeclaringClass: "x/Y", Name: "g"},
		).
		Freeze()
}

func TestScenario4TinySrgAndInverse(t *testing.T) {
	m := tinySrg()
	renamedClass, ok := m.GetRemappedClass("a/B")
	require.True(t, ok)
	assert.Equal(t, mappings.InternalClassName("x/Y"), renamedClass)

	renamedField, ok := m.GetRemappedField(mappings.FieldRef{DeclaringClass: "a/B", Name: "f"})
	require.True(t, ok)
	assert.Equal(t, mappings.FieldRef{DeclaringClass: "x/Y", Name: "g"}, renamedField)

	inv, err := m.Invert()
	require.NoError(t, err)

	invClass, ok := inv.GetRemappedClass("x/Y")
	require.True(t, ok)
	assert.Equal(t, mappings.InternalClassName("a/B"), invClass)

	invField, ok := inv.GetRemappedField(mappings.FieldRef{DeclaringClass: "x/Y", Name: "g"})
	require.True(t, ok)
	assert.Equal(t, mappings.FieldRef{DeclaringClass: "a/B", Name: "f"}, invField)
}

func TestInvertRoundTrip(t *testing.T) {
	m := tinySrg()
	inv, err := m.Invert()
	require.NoError(t, err)
	back, err := inv.Invert()
	require.NoError(t, err)
	assert.Equal(t, m.OriginalClasses(), back.OriginalClasses())
	assert.Equal(t, m.OriginalFields(), back.OriginalFields())
	assert.Equal(t, m.OriginalMethods(), back.OriginalMethods())
	for _, c := range m.OriginalClasses() {
		want, _ := m.GetRemappedClass(c)
		got, ok := back.GetRemappedClass(c)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestInvertRejectsNonInjective(t *testing.T) {
	m := mappings.NewSimpleMappings().
		SetClassName("a/A", "x/Y").
		SetClassName("a/B", "x/Y").
		Freeze()
	_, err := m.Invert()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invariant")
}

func TestIdentityChain(t *testing.T) {
	m := tinySrg()
	n := mappings.NewSimpleMappings().
		SetClassName("q/Unrelated", "q/Other").
		Freeze()
	c := m.Chain(n)
	assert.Equal(t, m.OriginalClasses(), c.OriginalClasses())
	for _, orig := range m.OriginalClasses() {
		want, _ := m.GetRemappedClass(orig)
		got, _ := c.GetRemappedClass(orig)
		assert.Equal(t, want, got)
	}
}

func TestChainAssociativity(t *testing.T) {
	a := mappings.NewSimpleMappings().SetClassName("a/A", "b/B").Freeze()
	b := mappings.NewSimpleMappings().SetClassName("b/B", "c/C").Freeze()
	c := mappings.NewSimpleMappings().SetClassName("c/C", "d/D").Freeze()

	left := a.Chain(b).Chain(c)
	right := a.Chain(b.Chain(c))

	lv, ok := left.GetRemappedClass("a/A")
	require.True(t, ok)
	rv, ok := right.GetRemappedClass("a/A")
	require.True(t, ok)
	assert.Equal(t, lv, rv)
	assert.Equal(t, mappings.InternalClassName("d/D"), lv)
}

func TestSrgSpigotChainBugFix(t *testing.T) {
	// Regression test for a historical copy-paste bug: the (srg,spigot)
	// case must compute srg2obf.chain(obf2spigot), not
	// srg2obf.chain(srg2obf) again.
	srg2obf := mappings.NewSimpleMappings().SetClassName("net/minecraft/server/MinecraftServer", "ala").Freeze()
	obf2spigot := mappings.NewSimpleMappings().SetClassName("ala", "net/minecraft/server/v1_8_R1/MinecraftServer").Freeze()

	correct := srg2obf.Chain(obf2spigot)
	buggy := srg2obf.Chain(srg2obf)

	want, ok := correct.GetRemappedClass("net/minecraft/server/MinecraftServer")
	require.True(t, ok)
	assert.Equal(t, mappings.InternalClassName("net/minecraft/server/v1_8_R1/MinecraftServer"), want)

	buggyResult, ok := buggy.GetRemappedClass("net/minecraft/server/MinecraftServer")
	require.True(t, ok)
	assert.NotEqual(t, want, buggyResult)
}

func TestSignatureConsistencyUnderChain(t *testing.T) {
	a := mappings.NewSimpleMappings().
		SetClassName("a/A", "b/B").
		SetMethodName(
			mappings.MethodRef{DeclaringClass: "a/A", Name: "m", Signature: "(La/A;)La/A;"},
			mappings.MethodRef{DeclaringClass: "b/B", Name: "n", Signature: "(Lb/B;)Lb/B;"},
		).
		Freeze()
	b := mappings.NewSimpleMappings().SetClassName("b/B", "c/C").Freeze()

	c := a.Chain(b)
	renamed, ok := c.GetRemappedMethod(mappings.MethodRef{DeclaringClass: "a/A", Name: "m", Signature: "(La/A;)La/A;"})
	require.True(t, ok)
	assert.Equal(t, mappings.MethodSignature("(Lc/C;)Lc/C;"), renamed.Signature)
	assert.Equal(t, mappings.InternalClassName("c/C"), renamed.DeclaringClass)
}

func TestRebuildRetainAndClear(t *testing.T) {
	m := mappings.NewSimpleMappings().
		SetClassName("a/A", "x/X").
		SetClassName("a/B", "x/Y").
		SetFieldName(
			mappings.FieldRef{DeclaringClass: "a/A", Name: "f"},
			mappings.FieldRef{DeclaringClass: "x/X", Name: "g"},
		).
		Freeze()

	onlyA := m.Rebuild().
		RetainClasses(func(orig, _ mappings.InternalClassName) bool { return orig == "a/A" }).
		Freeze()
	assert.Equal(t, 1, onlyA.ClassCount())
	_, ok := onlyA.GetRemappedClass("a/B")
	assert.False(t, ok)

	noFields := m.Rebuild().ClearFields().Freeze()
	assert.Equal(t, 0, noFields.FieldCount())
	assert.Equal(t, 2, noFields.ClassCount())
}

func TestTransformPackages(t *testing.T) {
	m := mappings.NewSimpleMappings().
		SetClassName("a/B", "old/pkg/Y").
		SetFieldName(
			mappings.FieldRef{DeclaringClass: "a/B", Name: "f"},
			mappings.FieldRef{DeclaringClass: "old/pkg/Y", Name: "g"},
		).
		Freeze()

	out := m.TransformPackages(func(pkg string) (string, bool) {
		if pkg == "old/pkg" {
			return "new/pkg", true
		}
		return "", false
	})

	renamedClass, ok := out.GetRemappedClass("a/B")
	require.True(t, ok)
	assert.Equal(t, mappings.InternalClassName("new/pkg/Y"), renamedClass)

	renamedField, ok := out.GetRemappedField(mappings.FieldRef{DeclaringClass: "a/B", Name: "f"})
	require.True(t, ok)
	assert.Equal(t, mappings.InternalClassName("new/pkg/Y"), renamedField.DeclaringClass)
	assert.Equal(t, "g", renamedField.Name)
}

func TestTransformPackagesSpigotEmptyPackage(t *testing.T) {
	m := mappings.NewSimpleMappings().SetClassName("a/B", "MinecraftServer").Freeze()
	out := m.TransformPackages(func(pkg string) (string, bool) {
		if pkg == "" {
			return "net/minecraft/server", true
		}
		return "", false
	})
	renamed, ok := out.GetRemappedClass("a/B")
	require.True(t, ok)
	assert.Equal(t, mappings.InternalClassName("net/minecraft/server/MinecraftServer"), renamed)
}
