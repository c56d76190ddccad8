package mappings

// SimpleMappings is the only constructor for a Mappings value: callers
// add rows with SetClassName/SetFieldName/SetMethodName, in any order,
// then call Freeze to obtain an immutable snapshot. Setting the same
// original key twice replaces the earlier row: the last write wins on
// value, and the row takes the insertion position of that last write.
type SimpleMappings struct {
	m Mappings
}

// NewSimpleMappings returns an empty builder.
func NewSimpleMappings() *SimpleMappings {
	return &SimpleMappings{m: empty()}
}

// SetClassName records that orig renames to renamed.
func (b *SimpleMappings) SetClassName(orig, renamed InternalClassName) *SimpleMappings {
	b.m.classes.Set(orig, renamed)
	return b
}

// SetFieldName records that orig renames to renamed.
func (b *SimpleMappings) SetFieldName(orig, renamed FieldRef) *SimpleMappings {
	b.m.fields.Set(orig, renamed)
	return b
}

// SetMethodName records that orig renames to renamed.
func (b *SimpleMappings) SetMethodName(orig, renamed MethodRef) *SimpleMappings {
	b.m.methods.Set(orig, renamed)
	return b
}

// Freeze returns the accumulated Mappings. The builder remains usable
// afterward; further Set calls do not affect the value already
// returned, since each Freeze clones the underlying tables.
func (b *SimpleMappings) Freeze() Mappings {
	return Mappings{
		classes: b.m.classes.Clone(),
		fields:  b.m.fields.Clone(),
		methods: b.m.methods.Clone(),
	}
}

// Rebuilder is an open-state builder seeded from an existing Mappings,
// letting callers narrow it down with Retain/Clear calls before
// freezing a new, independent Mappings value.
type Rebuilder struct {
	m Mappings
}

// Rebuild seeds a Rebuilder with a copy of m's tables.
func (m Mappings) Rebuild() *Rebuilder {
	return &Rebuilder{m: Mappings{
		classes: m.classes.Clone(),
		fields:  m.fields.Clone(),
		methods: m.methods.Clone(),
	}}
}

// RetainClasses drops every class row whose original/renamed pair does
// not satisfy pred.
func (r *Rebuilder) RetainClasses(pred func(orig, renamed InternalClassName) bool) *Rebuilder {
	r.m.classes.Filter(pred)
	return r
}

// RetainFields drops every field row whose original/renamed pair does
// not satisfy pred.
func (r *Rebuilder) RetainFields(pred func(orig, renamed FieldRef) bool) *Rebuilder {
	r.m.fields.Filter(pred)
	return r
}

// RetainMethods drops every method row whose original/renamed pair
// does not satisfy pred.
func (r *Rebuilder) RetainMethods(pred func(orig, renamed MethodRef) bool) *Rebuilder {
	r.m.methods.Filter(pred)
	return r
}

// ClearClasses drops every class row.
func (r *Rebuilder) ClearClasses() *Rebuilder {
	r.m.classes.Clear()
	return r
}

// ClearFields drops every field row.
func (r *Rebuilder) ClearFields() *Rebuilder {
	r.m.fields.Clear()
	return r
}

// ClearMethods drops every method row.
func (r *Rebuilder) ClearMethods() *Rebuilder {
	r.m.methods.Clear()
	return r
}

// Freeze returns the narrowed Mappings.
func (r *Rebuilder) Freeze() Mappings {
	return r.m
}
