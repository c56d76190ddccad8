// Package codec implements the textual mapping formats: legacy SRG,
// tab-indented SRG (TSRG), compact SRG, and the MCP CSV dictionary. All
// codecs are deterministic and round-trip preserving for the entries
// they accept.
package codec

import (
	"bufio"
	"io"
	"strings"

	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
	"github.com/Techcable/minecraft-mappings/pkg/core/mappings"
)

// DecodeLegacySRG parses the legacy line-oriented SRG format:
//
//	CL: <origInternal> <renamedInternal>
//	FD: <origInternal>/<origName> <renamedInternal>/<renamedName>
//	MD: <origInternal>/<origName> <origDescriptor> <renamedInternal>/<renamedName> <renamedDescriptor>
func DecodeLegacySRG(r io.Reader) (mappings.Mappings, error) {
	b := mappings.NewSimpleMappings()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "CL:":
			if len(fields) != 3 {
				return mappings.Mappings{}, cerr.NewParseError("legacy-srg", lineNo, errBadArity("CL", 2, len(fields)-1))
			}
			b.SetClassName(mappings.InternalClassName(fields[1]), mappings.InternalClassName(fields[2]))
		case "FD:":
			if len(fields) != 3 {
				return mappings.Mappings{}, cerr.NewParseError("legacy-srg", lineNo, errBadArity("FD", 2, len(fields)-1))
			}
			orig, err := splitMemberPath(fields[1])
			if err != nil {
				return mappings.Mappings{}, cerr.NewParseError("legacy-srg", lineNo, err)
			}
			renamed, err := splitMemberPath(fields[2])
			if err != nil {
				return mappings.Mappings{}, cerr.NewParseError("legacy-srg", lineNo, err)
			}
			b.SetFieldName(
				mappings.FieldRef{DeclaringClass: orig.class, Name: orig.name},
				mappings.FieldRef{DeclaringClass: renamed.class, Name: renamed.name},
			)
		case "MD:":
			if len(fields) != 5 {
				return mappings.Mappings{}, cerr.NewParseError("legacy-srg", lineNo, errBadArity("MD", 4, len(fields)-1))
			}
			orig, err := splitMemberPath(fields[1])
			if err != nil {
				return mappings.Mappings{}, cerr.NewParseError("legacy-srg", lineNo, err)
			}
			renamed, err := splitMemberPath(fields[3])
			if err != nil {
				return mappings.Mappings{}, cerr.NewParseError("legacy-srg", lineNo, err)
			}
			b.SetMethodName(
				mappings.MethodRef{DeclaringClass: orig.class, Name: orig.name, Signature: mappings.MethodSignature(fields[2])},
				mappings.MethodRef{DeclaringClass: renamed.class, Name: renamed.name, Signature: mappings.MethodSignature(fields[4])},
			)
		default:
			return mappings.Mappings{}, cerr.NewParseError("legacy-srg", lineNo, errUnknownTag(fields[0]))
		}
	}
	if err := sc.Err(); err != nil {
		return mappings.Mappings{}, cerr.NewIOError("read legacy-srg", err)
	}
	return b.Freeze(), nil
}

// EncodeLegacySRG writes m in the legacy SRG text format, classes
// first, then fields, then methods, each in insertion order.
func EncodeLegacySRG(w io.Writer, m mappings.Mappings) error {
	bw := bufio.NewWriter(w)
	var writeErr error
	write := func(s string) {
		if writeErr != nil {
			return
		}
		_, writeErr = bw.WriteString(s)
	}
	m.EachClass(func(orig, renamed mappings.InternalClassName) {
		write("CL: ")
		write(string(orig))
		write(" ")
		write(string(renamed))
		write("\n")
	})
	m.EachField(func(orig, renamed mappings.FieldRef) {
		write("FD: ")
		write(string(orig.DeclaringClass))
		write("/")
		write(orig.Name)
		write(" ")
		write(string(renamed.DeclaringClass))
		write("/")
		write(renamed.Name)
		write("\n")
	})
	m.EachMethod(func(orig, renamed mappings.MethodRef) {
		write("MD: ")
		write(string(orig.DeclaringClass))
		write("/")
		write(orig.Name)
		write(" ")
		write(string(orig.Signature))
		write(" ")
		write(string(renamed.DeclaringClass))
		write("/")
		write(renamed.Name)
		write(" ")
		write(string(renamed.Signature))
		write("\n")
	})
	if writeErr != nil {
		return cerr.NewIOError("write legacy-srg", writeErr)
	}
	if err := bw.Flush(); err != nil {
		return cerr.NewIOError("flush legacy-srg", err)
	}
	return nil
}

type memberPath struct {
	class mappings.InternalClassName
	name  string
}

func splitMemberPath(s string) (memberPath, error) {
	idx := strings.LastIndexByte(s, '/')
	if idx < 0 {
		return memberPath{}, errMissingSlash(s)
	}
	return memberPath{class: mappings.InternalClassName(s[:idx]), name: s[idx+1:]}, nil
}

// DecodeTabSRG parses the indentation-based TSRG variant used by
// mcp_config's config/joined.tsrg: classes at column 0 as
// "<orig> <renamed>", members beneath their class preceded by a tab:
// "\t<origName> <origDescriptor>? <renamedName>" (descriptor absent
// for fields).
func DecodeTabSRG(r io.Reader) (mappings.Mappings, error) {
	b := mappings.NewSimpleMappings()
	sc := bufio.NewScanner(r)
	lineNo := 0
	var curOrigClass, curRenamedClass mappings.InternalClassName
	haveClass := false
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if strings.HasPrefix(raw, "\t") {
			if !haveClass {
				return mappings.Mappings{}, cerr.NewParseError("tab-srg", lineNo, errMemberBeforeClass())
			}
			fields := strings.Fields(raw)
			switch len(fields) {
			case 2:
				// field: origName renamedName
				b.SetFieldName(
					mappings.FieldRef{DeclaringClass: curOrigClass, Name: fields[0]},
					mappings.FieldRef{DeclaringClass: curRenamedClass, Name: fields[1]},
				)
			case 3:
				// method: origName origDescriptor renamedName
				b.SetMethodName(
					mappings.MethodRef{DeclaringClass: curOrigClass, Name: fields[0], Signature: mappings.MethodSignature(fields[1])},
					mappings.MethodRef{DeclaringClass: curRenamedClass, Name: fields[2]},
				)
			default:
				return mappings.Mappings{}, cerr.NewParseError("tab-srg", lineNo, errBadArity("member", 2, len(fields)))
			}
			continue
		}
		fields := strings.Fields(raw)
		if len(fields) != 2 {
			return mappings.Mappings{}, cerr.NewParseError("tab-srg", lineNo, errBadArity("class", 1, len(fields)-1))
		}
		curOrigClass = mappings.InternalClassName(fields[0])
		curRenamedClass = mappings.InternalClassName(fields[1])
		haveClass = true
		b.SetClassName(curOrigClass, curRenamedClass)
	}
	if err := sc.Err(); err != nil {
		return mappings.Mappings{}, cerr.NewIOError("read tab-srg", err)
	}
	return fixupTabMethodSignatures(b), nil
}

// fixupTabMethodSignatures fills the renamed signature of each method
// row, since TSRG only stores an unmapped original descriptor and the
// renamed class table (resolvable only after the whole file is read).
func fixupTabMethodSignatures(b *mappings.SimpleMappings) mappings.Mappings {
	frozen := b.Freeze()
	classes := make(map[mappings.InternalClassName]mappings.InternalClassName)
	frozen.EachClass(func(orig, renamed mappings.InternalClassName) { classes[orig] = renamed })
	out := mappings.NewSimpleMappings()
	frozen.EachClass(func(orig, renamed mappings.InternalClassName) { out.SetClassName(orig, renamed) })
	frozen.EachField(func(orig, renamed mappings.FieldRef) { out.SetFieldName(orig, renamed) })
	frozen.EachMethod(func(orig, renamed mappings.MethodRef) {
		sig := orig.Signature.TransformClass(classes)
		out.SetMethodName(orig, renamed.WithNameAndSignature(renamed.Name, sig))
	})
	return out.Freeze()
}

// DecodeCompactSRG parses whitespace-separated rename pairs, one per
// line ("orig renamed"), used for Spigot's BuildData class and member
// map files. Two-token lines are class renames; three-token lines
// ("origClass origName renamedName") are field renames; four-token
// lines ("origClass origName origDesc renamedName") are method renames.
// Member renames keep the original declaring class on both sides, and
// a method's renamed side carries no signature.
func DecodeCompactSRG(r io.Reader) (mappings.Mappings, error) {
	b := mappings.NewSimpleMappings()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 2:
			b.SetClassName(mappings.InternalClassName(fields[0]), mappings.InternalClassName(fields[1]))
		case 3:
			// class-qualified field rename: declaringClass origName renamedName
			b.SetFieldName(
				mappings.FieldRef{DeclaringClass: mappings.InternalClassName(fields[0]), Name: fields[1]},
				mappings.FieldRef{DeclaringClass: mappings.InternalClassName(fields[0]), Name: fields[2]},
			)
		case 4:
			class := mappings.InternalClassName(fields[0])
			b.SetMethodName(
				mappings.MethodRef{DeclaringClass: class, Name: fields[1], Signature: mappings.MethodSignature(fields[2])},
				mappings.MethodRef{DeclaringClass: class, Name: fields[3]},
			)
		default:
			return mappings.Mappings{}, cerr.NewParseError("compact-srg", lineNo, errBadArity("compact-srg row", 2, len(fields)))
		}
	}
	if err := sc.Err(); err != nil {
		return mappings.Mappings{}, cerr.NewIOError("read compact-srg", err)
	}
	return b.Freeze(), nil
}

// SanitizeCompactSRG drops every line containing a '.' character
// (invalid artifacts observed in old 1.8.8 Spigot class-mapping data)
// as well as blank leading/trailing lines, before the result is handed
// to DecodeCompactSRG.
func SanitizeCompactSRG(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.Contains(line, ".") {
			continue
		}
		kept = append(kept, line)
	}
	for len(kept) > 0 && strings.TrimSpace(kept[0]) == "" {
		kept = kept[1:]
	}
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}
	return strings.Join(kept, "\n")
}
