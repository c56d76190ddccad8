// Package target models a requested translation between two of the
// four naming systems (obf, srg, mcp, spigot), optionally restricted to
// classes or members only and optionally filtered to only-still-obfuscated
// identifiers. TargetMapping is the flat record the composition engine
// dispatches on.
package target

import (
	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
)

// MappingSystem is one of the four naming systems this tool translates
// between. It is a closed enumeration with exhaustive dispatch.
type MappingSystem int

const (
	Obf MappingSystem = iota
	Srg
	Mcp
	Spigot
)

// IsMcp reports whether the system is interpreted relative to an MCP
// dictionary revision (srg and mcp both require one; obf and spigot do
// not).
func (m MappingSystem) IsMcp() bool {
	return m == Srg || m == Mcp
}

func (m MappingSystem) id() string {
	switch m {
	case Obf:
		return "obf"
	case Srg:
		return "srg"
	case Mcp:
		return "mcp"
	case Spigot:
		return "spigot"
	default:
		return "?"
	}
}

// String renders the canonical lower-case identifier.
func (m MappingSystem) String() string {
	return m.id()
}

func mappingSystemFromID(id string) (MappingSystem, bool) {
	switch id {
	case "obf":
		return Obf, true
	case "srg":
		return Srg, true
	case "mcp":
		return Mcp, true
	case "spigot":
		return Spigot, true
	default:
		return 0, false
	}
}

// ParseMappingSystem parses s as a MappingSystem.
func ParseMappingSystem(s string) (MappingSystem, error) {
	if m, ok := mappingSystemFromID(s); ok {
		return m, nil
	}
	return 0, cerr.NewInvalidIdentifier("MappingSystem", s)
}
