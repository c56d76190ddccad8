// Package mappings implements the mappings algebra: an immutable
// snapshot of a class/field/method rename table plus the chain,
// invert, rebuild-with-filter, and transform-packages operations it
// supports. Construction is only through the SimpleMappings builder;
// methods on a frozen Mappings never mutate their receiver.
package mappings

import (
	"strings"
)

// InternalClassName is a slash-separated JVM internal class name, e.g.
// "net/minecraft/server/Foo".
type InternalClassName string

// Package returns everything before the last '/' (empty if none).
func (c InternalClassName) Package() string {
	idx := strings.LastIndexByte(string(c), '/')
	if idx < 0 {
		return ""
	}
	return string(c)[:idx]
}

// SimpleName returns everything after the last '/'.
func (c InternalClassName) SimpleName() string {
	idx := strings.LastIndexByte(string(c), '/')
	if idx < 0 {
		return string(c)
	}
	return string(c)[idx+1:]
}

// WithPackage rebuilds a class name using newPkg as its package,
// keeping the same simple name.
func (c InternalClassName) WithPackage(newPkg string) InternalClassName {
	if newPkg == "" {
		return InternalClassName(c.SimpleName())
	}
	return InternalClassName(newPkg + "/" + c.SimpleName())
}

// FieldRef identifies a field by its declaring class and name.
type FieldRef struct {
	DeclaringClass InternalClassName
	Name           string
}

// WithName returns a copy of f with a different Name.
func (f FieldRef) WithName(name string) FieldRef {
	f.Name = name
	return f
}

// MethodSignature is a JVM method descriptor, "(P*)R", exposing
// TransformClass to remap every class referenced by its parameter and
// return types.
type MethodSignature string

// TransformClass returns a new signature with every class name it
// references remapped through classes (identity for classes it does
// not contain). It operates on the raw descriptor text, rewriting each
// "L<classname>;" occurrence in place.
func (s MethodSignature) TransformClass(classes map[InternalClassName]InternalClassName) MethodSignature {
	raw := string(s)
	var b strings.Builder
	b.Grow(len(raw))
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c == 'L' {
			end := strings.IndexByte(raw[i:], ';')
			if end < 0 {
				b.WriteString(raw[i:])
				break
			}
			end += i
			name := InternalClassName(raw[i+1 : end])
			if renamed, ok := classes[name]; ok {
				name = renamed
			}
			b.WriteByte('L')
			b.WriteString(string(name))
			b.WriteByte(';')
			i = end + 1
			continue
		}
		b.WriteByte(c)
		i++
	}
	return MethodSignature(b.String())
}

// MethodRef identifies a method by its declaring class, name, and
// descriptor signature.
type MethodRef struct {
	DeclaringClass InternalClassName
	Name           string
	Signature      MethodSignature
}

// WithNameAndSignature returns a copy of m with a different name and
// signature.
func (m MethodRef) WithNameAndSignature(name string, sig MethodSignature) MethodRef {
	m.Name = name
	m.Signature = sig
	return m
}
