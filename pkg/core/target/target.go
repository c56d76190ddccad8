package target

import (
	"fmt"
	"strings"

	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
)

// TargetFilter restricts a TargetMapping to only classes or only
// members (fields and methods); at most one of these may be present
// on a TargetFlags.
type TargetFilter int

const (
	// FilterClasses keeps only the classes table, dropping fields and
	// methods.
	FilterClasses TargetFilter = iota
	// FilterMembers keeps only the fields and methods tables, dropping
	// classes.
	FilterMembers
)

func (f TargetFilter) String() string {
	switch f {
	case FilterClasses:
		return "classes"
	case FilterMembers:
		return "members"
	default:
		return "?"
	}
}

// TargetFlags further restricts a TargetMapping: an optional
// class/member-only Filter, and OnlyObf which suppresses rename
// entries whose original side is already deobfuscated in the "from"
// naming.
type TargetFlags struct {
	Filter  *TargetFilter
	OnlyObf bool
}

// NewTargetFlags builds a TargetFlags from the classes/members/onlyObf
// booleans. It panics if both classes and members are requested: this
// is a programming error in the caller, matching the original
// implementation's behavior, not a recoverable parse failure.
func NewTargetFlags(classes, members, onlyObf bool) TargetFlags {
	var filter *TargetFilter
	switch {
	case classes && members:
		panic("can't filter both classes and members")
	case classes:
		f := FilterClasses
		filter = &f
	case members:
		f := FilterMembers
		filter = &f
	}
	return TargetFlags{Filter: filter, OnlyObf: onlyObf}
}

// IsDefault reports whether f has neither a filter nor onlyObf set.
func (f TargetFlags) IsDefault() bool {
	return f.Filter == nil && !f.OnlyObf
}

// ParseTargetFlags parses the dash-separated flag list in s (e.g.
// "classes-onlyobf" or "onlyobf-classes"; order is not significant on
// input).
func ParseTargetFlags(s string) (TargetFlags, error) {
	result := TargetFlags{}
	if s == "" {
		return result, nil
	}
	invalid := func() error {
		return cerr.NewInvalidIdentifier("TargetFlags", s)
	}
	for _, flag := range strings.Split(s, "-") {
		switch flag {
		case "classes":
			if result.Filter != nil {
				return TargetFlags{}, invalid()
			}
			f := FilterClasses
			result.Filter = &f
		case "members":
			if result.Filter != nil {
				return TargetFlags{}, invalid()
			}
			f := FilterMembers
			result.Filter = &f
		case "onlyobf":
			if result.OnlyObf {
				return TargetFlags{}, invalid()
			}
			result.OnlyObf = true
		default:
			return TargetFlags{}, invalid()
		}
	}
	return result, nil
}

// String renders flags in filter-then-onlyobf order, dash-separated,
// empty for the default flags.
func (f TargetFlags) String() string {
	var b strings.Builder
	if f.Filter != nil {
		b.WriteString(f.Filter.String())
	}
	if f.OnlyObf {
		if b.Len() > 0 {
			b.WriteByte('-')
		}
		b.WriteString("onlyobf")
	}
	return b.String()
}

// TargetMapping is a requested translation between two naming systems,
// with optional flags. Its string form is "<from>2<to>[-<flag>...]".
type TargetMapping struct {
	From, To MappingSystem
	Flags    TargetFlags
}

// New builds a TargetMapping with default flags.
func New(from, to MappingSystem) TargetMapping {
	return TargetMapping{From: from, To: to}
}

// Reversed swaps From and To, keeping Flags unchanged.
func (t TargetMapping) Reversed() TargetMapping {
	return TargetMapping{From: t.To, To: t.From, Flags: t.Flags}
}

// WithDefaultFlags returns a copy of t with Flags reset to default.
func (t TargetMapping) WithDefaultFlags() TargetMapping {
	t.Flags = TargetFlags{}
	return t
}

// NeedsMcpVersion reports whether computing t requires an McpVersion,
// i.e. either endpoint is srg or mcp.
func (t TargetMapping) NeedsMcpVersion() bool {
	return t.From.IsMcp() || t.To.IsMcp()
}

// Parse parses s as a TargetMapping, e.g. "srg2mcp" or
// "spigot2mcp-classes-onlyobf" (flags may appear in either order).
func Parse(s string) (TargetMapping, error) {
	invalid := func() error {
		return cerr.NewInvalidIdentifier("TargetMapping", s)
	}
	first := s
	var flagsPart string
	hasFlags := false
	if dash := strings.IndexByte(s, '-'); dash >= 0 {
		first = s[:dash]
		flagsPart = s[dash+1:]
		hasFlags = true
	}
	sep := strings.IndexByte(first, '2')
	if sep < 0 {
		return TargetMapping{}, invalid()
	}
	from, err := ParseMappingSystem(first[:sep])
	if err != nil {
		return TargetMapping{}, invalid()
	}
	to, err := ParseMappingSystem(first[sep+1:])
	if err != nil {
		return TargetMapping{}, invalid()
	}
	flags := TargetFlags{}
	if hasFlags {
		flags, err = ParseTargetFlags(flagsPart)
		if err != nil {
			return TargetMapping{}, err
		}
	}
	return TargetMapping{From: from, To: to, Flags: flags}, nil
}

// String renders t as "<from>2<to>[-<flags>]".
func (t TargetMapping) String() string {
	s := fmt.Sprintf("%s2%s", t.From, t.To)
	if flags := t.Flags.String(); flags != "" {
		s += "-" + flags
	}
	return s
}
