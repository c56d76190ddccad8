package codec

import (
	"encoding/csv"
	"io"

	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
	"github.com/Techcable/minecraft-mappings/pkg/core/mappings"
)

// mcpDictColumns is the MCP export header: searge,name,side,desc. Only
// searge and name matter; side and desc are dropped.
var mcpDictColumns = []string{"searge", "name", "side", "desc"}

// Dictionary is an insertion-ordered mapping from an SRG-side (searge)
// name to its human-readable MCP name.
type Dictionary struct {
	order []string
	names map[string]string
}

func newDictionary() *Dictionary {
	return &Dictionary{names: make(map[string]string)}
}

// Lookup returns the human name for a searge name, if present.
func (d *Dictionary) Lookup(searge string) (string, bool) {
	name, ok := d.names[searge]
	return name, ok
}

// Len reports the number of entries.
func (d *Dictionary) Len() int { return len(d.order) }

// Each calls fn for every (searge, name) pair in insertion order.
func (d *Dictionary) Each(fn func(searge, name string)) {
	for _, s := range d.order {
		fn(s, d.names[s])
	}
}

func (d *Dictionary) set(searge, name string) {
	if _, exists := d.names[searge]; !exists {
		d.order = append(d.order, searge)
	}
	d.names[searge] = name
}

// DecodeMcpCSV parses an MCP export CSV with header
// "searge,name,side,desc", keeping only the columns whose header is
// "searge" or "name" and ignoring all others.
func DecodeMcpCSV(r io.Reader) (*Dictionary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return newDictionary(), nil
	}
	if err != nil {
		return nil, cerr.NewParseError("mcp-csv", 1, err)
	}
	seargeIdx, nameIdx := columnIndex(header, "searge"), columnIndex(header, "name")
	if seargeIdx < 0 || nameIdx < 0 {
		return nil, cerr.NewParseError("mcp-csv", 1, errMissingColumns(header))
	}
	dict := newDictionary()
	lineNo := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			return nil, cerr.NewParseError("mcp-csv", lineNo, err)
		}
		if seargeIdx >= len(record) || nameIdx >= len(record) {
			return nil, cerr.NewParseError("mcp-csv", lineNo, errBadArity("mcp-csv row", len(header), len(record)))
		}
		dict.set(record[seargeIdx], record[nameIdx])
	}
	return dict, nil
}

// EncodeMcpCSV writes d back out with the canonical header.
func EncodeMcpCSV(w io.Writer, d *Dictionary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mcpDictColumns); err != nil {
		return cerr.NewIOError("write mcp-csv header", err)
	}
	var writeErr error
	d.Each(func(searge, name string) {
		if writeErr != nil {
			return
		}
		writeErr = cw.Write([]string{searge, name, "", ""})
	})
	if writeErr != nil {
		return cerr.NewIOError("write mcp-csv row", writeErr)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return cerr.NewIOError("flush mcp-csv", err)
	}
	return nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func errMissingColumns(header []string) error {
	return &missingColumnsError{header: header}
}

type missingColumnsError struct{ header []string }

func (e *missingColumnsError) Error() string {
	return "mcp-csv: missing searge/name column in header " + join(e.header)
}

func join(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}

// MappingsFromDictionary applies d's renames to the field and method
// tables of base, leaving classes untouched: each row keeps base's
// original side, and its renamed name is replaced by the dictionary
// entry for that name when one exists.
func MappingsFromDictionary(base mappings.Mappings, fields, methods *Dictionary) mappings.Mappings {
	b := mappings.NewSimpleMappings()
	base.EachClass(func(orig, renamed mappings.InternalClassName) { b.SetClassName(orig, renamed) })
	base.EachField(func(orig, renamed mappings.FieldRef) {
		name := renamed.Name
		if human, ok := fields.Lookup(renamed.Name); ok {
			name = human
		}
		b.SetFieldName(orig, renamed.WithName(name))
	})
	base.EachMethod(func(orig, renamed mappings.MethodRef) {
		name := renamed.Name
		if human, ok := methods.Lookup(renamed.Name); ok {
			name = human
		}
		b.SetMethodName(orig, renamed.WithNameAndSignature(name, renamed.Signature))
	})
	return b.Freeze()
}
