package mappings

import (
	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
)

// Mappings is an immutable snapshot of a class/field/method rename
// table. Values are only produced by SimpleMappings.Freeze or by the
// chain/invert/rebuild/transformPackages operations below; none of
// those operations mutate their receiver(s).
type Mappings struct {
	classes *orderedMap[InternalClassName, InternalClassName]
	fields  *orderedMap[FieldRef, FieldRef]
	methods *orderedMap[MethodRef, MethodRef]
}

func empty() Mappings {
	return Mappings{
		classes: newOrderedMap[InternalClassName, InternalClassName](),
		fields:  newOrderedMap[FieldRef, FieldRef](),
		methods: newOrderedMap[MethodRef, MethodRef](),
	}
}

// ClassCount, FieldCount, and MethodCount report the number of rows in
// each table.
func (m Mappings) ClassCount() int  { return m.classes.Len() }
func (m Mappings) FieldCount() int  { return m.fields.Len() }
func (m Mappings) MethodCount() int { return m.methods.Len() }

// GetRemappedClass looks up the renamed name for orig, if present.
func (m Mappings) GetRemappedClass(orig InternalClassName) (InternalClassName, bool) {
	return m.classes.Get(orig)
}

// GetRemappedField looks up the renamed FieldRef for orig, if present.
func (m Mappings) GetRemappedField(orig FieldRef) (FieldRef, bool) {
	return m.fields.Get(orig)
}

// GetRemappedMethod looks up the renamed MethodRef for orig, if
// present.
func (m Mappings) GetRemappedMethod(orig MethodRef) (MethodRef, bool) {
	return m.methods.Get(orig)
}

// EachClass, EachField, and EachMethod iterate their table in
// insertion order, calling fn(original, renamed) for every row.
func (m Mappings) EachClass(fn func(orig, renamed InternalClassName)) { m.classes.Each(fn) }
func (m Mappings) EachField(fn func(orig, renamed FieldRef))          { m.fields.Each(fn) }
func (m Mappings) EachMethod(fn func(orig, renamed MethodRef))        { m.methods.Each(fn) }

// OriginalClasses, OriginalFields, and OriginalMethods return the
// original-side keys of each table, in insertion order.
func (m Mappings) OriginalClasses() []InternalClassName {
	out := make([]InternalClassName, 0, m.classes.Len())
	m.classes.Each(func(orig, _ InternalClassName) { out = append(out, orig) })
	return out
}

func (m Mappings) OriginalFields() []FieldRef {
	out := make([]FieldRef, 0, m.fields.Len())
	m.fields.Each(func(orig, _ FieldRef) { out = append(out, orig) })
	return out
}

func (m Mappings) OriginalMethods() []MethodRef {
	out := make([]MethodRef, 0, m.methods.Len())
	m.methods.Each(func(orig, _ MethodRef) { out = append(out, orig) })
	return out
}

// classesMap materializes the classes table as a plain map, for use by
// MethodSignature.TransformClass.
func (m Mappings) classesMap() map[InternalClassName]InternalClassName {
	out := make(map[InternalClassName]InternalClassName, m.classes.Len())
	m.classes.Each(func(orig, renamed InternalClassName) { out[orig] = renamed })
	return out
}

// resolveClass returns the renamed form of x under m's classes table,
// or x unchanged if m does not remap it (the "identity mapped" case
// described by the Mappings value invariants).
func (m Mappings) resolveClass(x InternalClassName) InternalClassName {
	if renamed, ok := m.classes.Get(x); ok {
		return renamed
	}
	return x
}

// Chain composes a with b: the result's original side is a's original
// side, and its renamed side is b's renamed side, following each of
// a's renamed entries through b. A class that b does not further remap
// passes through a's renaming unchanged (b is treated as identity on
// anything outside its domain).
func Chain(a, b Mappings) Mappings {
	c := empty()
	a.classes.Each(func(orig, renamedByA InternalClassName) {
		renamed := renamedByA
		if viaB, ok := b.classes.Get(renamedByA); ok {
			renamed = viaB
		}
		c.classes.Set(orig, renamed)
	})
	a.fields.Each(func(orig, renamedByA FieldRef) {
		name := renamedByA.Name
		if viaB, ok := b.fields.Get(renamedByA); ok {
			name = viaB.Name
		}
		c.fields.Set(orig, FieldRef{
			DeclaringClass: c.resolveClass(orig.DeclaringClass),
			Name:           name,
		})
	})
	classesMap := c.classesMap()
	a.methods.Each(func(orig, renamedByA MethodRef) {
		name := renamedByA.Name
		sig := orig.Signature
		if viaB, ok := b.methods.Get(renamedByA); ok {
			name = viaB.Name
		}
		c.methods.Set(orig, MethodRef{
			DeclaringClass: c.resolveClass(orig.DeclaringClass),
			Name:           name,
			Signature:      sig.TransformClass(classesMap),
		})
	})
	return c
}

// Chain is the method form of the Chain function: m.Chain(other) is
// equivalent to Chain(m, other).
func (m Mappings) Chain(other Mappings) Mappings {
	return Chain(m, other)
}

// Invert swaps the original and renamed sides of every table. It fails
// with a *cerr.MappingsInvariantViolation if any table's renamed side
// is not injective (two distinct originals renamed to the same value).
func (m Mappings) Invert() (Mappings, error) {
	inv := empty()
	if err := invertClasses(m.classes, inv.classes); err != nil {
		return Mappings{}, err
	}
	if err := invertFields(m.fields, inv.fields); err != nil {
		return Mappings{}, err
	}
	classesMap := inv.classesMap()
	if err := invertMethods(m.methods, inv.methods, classesMap); err != nil {
		return Mappings{}, err
	}
	return inv, nil
}

func invertClasses(src, dst *orderedMap[InternalClassName, InternalClassName]) error {
	var err error
	src.Each(func(orig, renamed InternalClassName) {
		if err != nil {
			return
		}
		if _, exists := dst.Get(renamed); exists {
			err = cerr.NewMappingsInvariantViolation(
				"invert: renamed class " + string(renamed) + " is not unique",
			)
			return
		}
		dst.Set(renamed, orig)
	})
	return err
}

func invertFields(src, dst *orderedMap[FieldRef, FieldRef]) error {
	var err error
	src.Each(func(orig, renamed FieldRef) {
		if err != nil {
			return
		}
		if _, exists := dst.Get(renamed); exists {
			err = cerr.NewMappingsInvariantViolation(
				"invert: renamed field " + renamed.Name + " is not unique",
			)
			return
		}
		dst.Set(renamed, orig)
	})
	return err
}

func invertMethods(
	src, dst *orderedMap[MethodRef, MethodRef],
	invertedClasses map[InternalClassName]InternalClassName,
) error {
	var err error
	src.Each(func(orig, renamed MethodRef) {
		if err != nil {
			return
		}
		if _, exists := dst.Get(renamed); exists {
			err = cerr.NewMappingsInvariantViolation(
				"invert: renamed method " + renamed.Name + " is not unique",
			)
			return
		}
		dst.Set(renamed, MethodRef{
			DeclaringClass: orig.DeclaringClass,
			Name:           orig.Name,
			Signature:      orig.Signature.TransformClass(invertedClasses),
		})
	})
	return err
}

// TransformPackages renames the package part of every class this
// Mappings renames a class into: for a class mapping a -> b, fn is
// called with b's package; if it returns (newPkg, true), b's package
// is replaced by newPkg (keeping b's simple name). Field, method, and
// signature tables are rewritten consistently.
func (m Mappings) TransformPackages(fn func(pkg string) (string, bool)) Mappings {
	out := empty()
	m.classes.Each(func(orig, renamed InternalClassName) {
		if newPkg, ok := fn(renamed.Package()); ok {
			renamed = renamed.WithPackage(newPkg)
		}
		out.classes.Set(orig, renamed)
	})
	m.fields.Each(func(orig, renamed FieldRef) {
		out.fields.Set(orig, FieldRef{
			DeclaringClass: out.resolveClass(orig.DeclaringClass),
			Name:           renamed.Name,
		})
	})
	classesMap := out.classesMap()
	m.methods.Each(func(orig, renamed MethodRef) {
		out.methods.Set(orig, MethodRef{
			DeclaringClass: out.resolveClass(orig.DeclaringClass),
			Name:           renamed.Name,
			Signature:      orig.Signature.TransformClass(classesMap),
		})
	})
	return out
}
