package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
)

// McpChannel distinguishes the two MCP dictionary release trains.
type McpChannel int

const (
	// Snapshot is the frequently-updated, potentially-unstable channel.
	Snapshot McpChannel = iota
	// Stable is the curated, infrequently-updated channel.
	Stable
)

// ParseMcpChannel parses s ("snapshot" or "stable") as an McpChannel.
func ParseMcpChannel(s string) (McpChannel, error) {
	switch s {
	case "snapshot":
		return Snapshot, nil
	case "stable":
		return Stable, nil
	default:
		return 0, cerr.NewInvalidIdentifier("McpChannel", s)
	}
}

// String renders the canonical, always-lower-case channel name.
//
// The historical Rust implementation displayed Snapshot as "snapshot"
// but Stable as "Stable", a capitalization anomaly that leaked into MCP
// URL construction. This implementation always lower-cases both
// channels, per spec; the anomaly is preserved only as a documented
// fixture in anomaly_test.go.
func (c McpChannel) String() string {
	switch c {
	case Snapshot:
		return "snapshot"
	case Stable:
		return "stable"
	default:
		return fmt.Sprintf("McpChannel(%d)", int(c))
	}
}

// McpVersion identifies one MCP dictionary release by its numeric
// revision and channel.
type McpVersion struct {
	Revision uint32
	Channel  McpChannel
}

// McpVersionSpec additionally records whether the "nodoc" variant of
// the dictionary (no javadoc comments bundled) was requested. Its
// string form is "<channel>[_nodoc]_<revision>".
type McpVersionSpec struct {
	Version McpVersion
	NoDoc   bool
}

// ParseMcpVersionSpec parses s as an McpVersionSpec.
func ParseMcpVersionSpec(s string) (McpVersionSpec, error) {
	invalid := func() error {
		return cerr.NewInvalidIdentifier("McpVersionSpec", s)
	}
	parts := strings.Split(s, "_")
	if len(parts) < 2 {
		return McpVersionSpec{}, invalid()
	}
	channel, err := ParseMcpChannel(parts[0])
	if err != nil {
		return McpVersionSpec{}, invalid()
	}
	rest := parts[1:]
	noDoc := false
	if rest[0] == "nodoc" {
		noDoc = true
		rest = rest[1:]
	}
	if len(rest) != 1 {
		return McpVersionSpec{}, invalid()
	}
	revision, err := strconv.ParseUint(rest[0], 10, 32)
	if err != nil {
		return McpVersionSpec{}, invalid()
	}
	return McpVersionSpec{
		Version: McpVersion{Revision: uint32(revision), Channel: channel},
		NoDoc:   noDoc,
	}, nil
}

// String renders s as "<channel>[_nodoc]_<revision>".
func (s McpVersionSpec) String() string {
	var b strings.Builder
	b.WriteString(s.Version.Channel.String())
	if s.NoDoc {
		b.WriteString("_nodoc")
	}
	fmt.Fprintf(&b, "_%d", s.Version.Revision)
	return b.String()
}

// WithoutDocs returns a copy of s with NoDoc set to true.
func (s McpVersionSpec) WithoutDocs() McpVersionSpec {
	s.NoDoc = true
	return s
}
