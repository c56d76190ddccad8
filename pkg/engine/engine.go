// Package engine implements the composition engine: given a
// TargetMapping, resolve it through a fixed algebra of base mappings
// rooted at the three primitives (obf2srg, obf2spigot, srg2mcp),
// memoizing every derived target along the way.
package engine

import (
	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
	"github.com/Techcable/minecraft-mappings/pkg/core/mappings"
	"github.com/Techcable/minecraft-mappings/pkg/core/target"
	"github.com/Techcable/minecraft-mappings/pkg/core/version"
	"github.com/Techcable/minecraft-mappings/pkg/source/cache"
)

// Engine computes TargetMapping values for one fixed GameVersion
// (and, when needed, one fixed McpVersion). It has mutable-interior
// semantics and is not safe for concurrent use: create one per request
// batch.
type Engine struct {
	cache       *cache.MinecraftMappingsCache
	gameVersion version.GameVersion
	mcpVersion  *version.McpVersion

	memo     map[target.TargetMapping]mappings.Mappings
	inFlight map[target.TargetMapping]bool
}

// New returns an Engine bound to gameVersion, optionally also bound to
// mcpVersion for targets whose computation needs one.
func New(c *cache.MinecraftMappingsCache, gameVersion version.GameVersion, mcpVersion *version.McpVersion) *Engine {
	return &Engine{
		cache:       c,
		gameVersion: gameVersion,
		mcpVersion:  mcpVersion,
		memo:        make(map[target.TargetMapping]mappings.Mappings),
		inFlight:    make(map[target.TargetMapping]bool),
	}
}

// ComputeTarget resolves t, from memo if present, else by dispatch
// through the base algebra table, applying flags, then memoizing.
// Failures are wrapped as *cerr.TargetComputeError{Target: t, ...}.
func (e *Engine) ComputeTarget(t target.TargetMapping) (mappings.Mappings, error) {
	if m, ok := e.memo[t]; ok {
		return m, nil
	}
	if t.From == t.To {
		panic("engine: identity target " + t.String() + " is a programming error")
	}
	if e.inFlight[t] {
		panic("engine: cyclic computation of " + t.String())
	}
	e.inFlight[t] = true
	defer delete(e.inFlight, t)

	base, err := e.computeBase(t.WithDefaultFlags())
	if err != nil {
		return mappings.Mappings{}, cerr.NewTargetComputeError(t.String(), err)
	}
	result, err := e.applyFlags(t, base)
	if err != nil {
		return mappings.Mappings{}, cerr.NewTargetComputeError(t.String(), err)
	}
	e.memo[t] = result
	return result, nil
}

func (e *Engine) computeBase(t target.TargetMapping) (mappings.Mappings, error) {
	if m, ok := e.memo[t]; ok {
		return m, nil
	}
	from, to := t.From, t.To
	var result mappings.Mappings
	var err error
	switch {
	case from == target.Obf && to == target.Srg:
		result, err = e.cache.SRG.Get(e.gameVersion)
	case from == target.Obf && to == target.Spigot:
		var entry *spigotEntryResult
		entry, err = e.spigotEntry()
		if err == nil {
			result = entry.Chained
		}
	case from == target.Srg && to == target.Mcp:
		result, err = e.computeSrg2Mcp()
	case from == target.Srg && to == target.Obf:
		result, err = e.invertOf(target.New(target.Obf, target.Srg))
	case from == target.Mcp && to == target.Srg:
		result, err = e.invertOf(target.New(target.Srg, target.Mcp))
	case from == target.Spigot && to == target.Obf:
		result, err = e.invertOf(target.New(target.Obf, target.Spigot))
	case from == target.Obf && to == target.Mcp:
		result, err = e.chainOf(target.New(target.Obf, target.Srg), target.New(target.Srg, target.Mcp))
	case from == target.Mcp && to == target.Obf:
		result, err = e.invertOf(target.New(target.Obf, target.Mcp))
	case from == target.Spigot && to == target.Srg:
		result, err = e.chainOf(target.New(target.Spigot, target.Obf), target.New(target.Obf, target.Srg))
	case from == target.Spigot && to == target.Mcp:
		result, err = e.chainOf(target.New(target.Spigot, target.Obf), target.New(target.Obf, target.Mcp))
	case from == target.Mcp && to == target.Spigot:
		result, err = e.chainOf(target.New(target.Mcp, target.Obf), target.New(target.Obf, target.Spigot))
	case from == target.Srg && to == target.Spigot:
		// Historical bug fix: the original implementation accidentally
		// computed srg2obf.chain(srg2obf) here (a copy-paste error). The
		// correct composition chains through obf2spigot.
		result, err = e.chainOf(target.New(target.Srg, target.Obf), target.New(target.Obf, target.Spigot))
	default:
		err = cerr.NewUnknownCommand(t.String())
	}
	if err != nil {
		return mappings.Mappings{}, err
	}
	e.memo[t] = result
	return result, nil
}

func (e *Engine) chainOf(first, second target.TargetMapping) (mappings.Mappings, error) {
	a, err := e.computeBase(first)
	if err != nil {
		return mappings.Mappings{}, err
	}
	b, err := e.computeBase(second)
	if err != nil {
		return mappings.Mappings{}, err
	}
	return a.Chain(b), nil
}

func (e *Engine) invertOf(t target.TargetMapping) (mappings.Mappings, error) {
	m, err := e.computeBase(t)
	if err != nil {
		return mappings.Mappings{}, err
	}
	return m.Invert()
}

type spigotEntryResult struct {
	Chained mappings.Mappings
}

func (e *Engine) spigotEntry() (*spigotEntryResult, error) {
	entry, err := e.cache.Spigot.Get(e.gameVersion)
	if err != nil {
		return nil, err
	}
	return &spigotEntryResult{Chained: entry.Chained}, nil
}

func (e *Engine) computeSrg2Mcp() (mappings.Mappings, error) {
	if e.mcpVersion == nil {
		return mappings.Mappings{}, cerr.NewMissingMcpVersion()
	}
	obf2srg, err := e.computeBase(target.New(target.Obf, target.Srg))
	if err != nil {
		return mappings.Mappings{}, err
	}
	mcpEntry, err := e.cache.MCP.Get(*e.mcpVersion)
	if err != nil {
		return mappings.Mappings{}, err
	}
	b := mappings.NewSimpleMappings()
	obf2srg.EachField(func(_, srgField mappings.FieldRef) {
		name := srgField.Name
		if human, ok := mcpEntry.Fields.Lookup(srgField.Name); ok {
			name = human
		}
		b.SetFieldName(srgField, srgField.WithName(name))
	})
	obf2srg.EachMethod(func(_, srgMethod mappings.MethodRef) {
		name := srgMethod.Name
		if human, ok := mcpEntry.Methods.Lookup(srgMethod.Name); ok {
			name = human
		}
		b.SetMethodName(srgMethod, srgMethod.WithNameAndSignature(name, srgMethod.Signature))
	})
	return b.Freeze(), nil
}

// applyFlags applies onlyObf then filter, in that order, to base
// (already memoized under its default-flags key by computeBase).
func (e *Engine) applyFlags(t target.TargetMapping, base mappings.Mappings) (mappings.Mappings, error) {
	result := base
	if t.Flags.OnlyObf && t.From != target.Obf {
		f2obf, err := e.computeBase(target.New(t.From, target.Obf))
		if err != nil {
			return mappings.Mappings{}, err
		}
		result = result.Rebuild().
			RetainClasses(func(c, _ mappings.InternalClassName) bool {
				renamed, ok := f2obf.GetRemappedClass(c)
				return !ok || renamed == c
			}).
			RetainFields(func(f, _ mappings.FieldRef) bool {
				renamed, ok := f2obf.GetRemappedField(f)
				return !ok || renamed.Name == f.Name
			}).
			RetainMethods(func(m, _ mappings.MethodRef) bool {
				renamed, ok := f2obf.GetRemappedMethod(m)
				return !ok || renamed.Name == m.Name
			}).
			Freeze()
	}
	if t.Flags.Filter != nil {
		switch *t.Flags.Filter {
		case target.FilterClasses:
			result = result.Rebuild().ClearFields().ClearMethods().Freeze()
		case target.FilterMembers:
			result = result.Rebuild().ClearClasses().Freeze()
		}
	}
	return result, nil
}
