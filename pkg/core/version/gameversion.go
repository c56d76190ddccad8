// Package version provides the identifier types used to select a
// game version and an MCP dictionary revision: GameVersion, McpChannel,
// McpVersion, and McpVersionSpec. All of them parse from and format to
// the canonical textual forms documented in the mapping targets grammar.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
)

// GameVersion is a totally ordered (major, minor, patch) triple
// identifying a shipped game release. Its string form is "M.m" when
// patch is zero, or "M.m.p" otherwise.
type GameVersion struct {
	Major, Minor, Patch uint32
}

// ParseGameVersion parses s as a GameVersion. Patch defaults to zero
// when s has only two dot-separated components; a fourth component is
// rejected.
func ParseGameVersion(s string) (GameVersion, error) {
	parts := strings.Split(s, ".")
	invalid := func() error {
		return cerr.NewInvalidIdentifier("GameVersion", s)
	}
	if len(parts) < 2 || len(parts) > 3 {
		return GameVersion{}, invalid()
	}
	major, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return GameVersion{}, invalid()
	}
	minor, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return GameVersion{}, invalid()
	}
	var patch uint64
	if len(parts) == 3 {
		patch, err = strconv.ParseUint(parts[2], 10, 32)
		if err != nil {
			return GameVersion{}, invalid()
		}
	}
	return GameVersion{
		Major: uint32(major),
		Minor: uint32(minor),
		Patch: uint32(patch),
	}, nil
}

// String renders v as "M.m" (patch == 0) or "M.m.p".
func (v GameVersion) String() string {
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1, 0, or 1 as v is lexicographically less than,
// equal to, or greater than other, comparing major, then minor, then
// patch.
func (v GameVersion) Compare(other GameVersion) int {
	switch {
	case v.Major != other.Major:
		return cmp(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmp(v.Minor, other.Minor)
	default:
		return cmp(v.Patch, other.Patch)
	}
}

func cmp(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether v sorts strictly before other.
func (v GameVersion) Less(other GameVersion) bool {
	return v.Compare(other) < 0
}

// AtLeast reports whether v is greater than or equal to other.
func (v GameVersion) AtLeast(other GameVersion) bool {
	return v.Compare(other) >= 0
}
