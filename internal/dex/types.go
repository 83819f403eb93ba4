// Package dex implements the core DEX container decoder: it slices the
// six indexed sections of a DEX image, walks class definitions, and
// drives a visitor tree over classes, fields, methods, instructions,
// exception handlers, annotations, and debug events.
package dex

import "fmt"

// AccessFlags is the raw access_flags bitmask carried by classes,
// fields, and methods.
type AccessFlags uint32

const (
	AccPublic       AccessFlags = 0x1
	AccPrivate      AccessFlags = 0x2
	AccProtected    AccessFlags = 0x4
	AccStatic       AccessFlags = 0x8
	AccFinal        AccessFlags = 0x10
	AccSynchronized AccessFlags = 0x20
	AccVolatile     AccessFlags = 0x40
	AccBridge       AccessFlags = 0x40
	AccTransient    AccessFlags = 0x80
	AccVarargs      AccessFlags = 0x80
	AccNative       AccessFlags = 0x100
	AccInterface    AccessFlags = 0x200
	AccAbstract     AccessFlags = 0x400
	AccStrict       AccessFlags = 0x800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
	AccConstructor  AccessFlags = 0x10000
)

// Field identifies a field by its owning type, name, and type descriptor.
// Two Fields are equal exactly when all three components match.
type Field struct {
	Owner string
	Name  string
	Type  string
}

func (f Field) String() string {
	return fmt.Sprintf("%s->%s:%s", f.Owner, f.Name, f.Type)
}

// Equal reports whether f and o name the same field.
func (f Field) Equal(o Field) bool { return f == o }

// Method identifies a method by its owning type, name, parameter
// descriptors, and return descriptor.
type Method struct {
	Owner  string
	Name   string
	Params []string
	Return string
}

// String renders the method the way dex2jar/smali do:
// Lowner;->name(params)return
func (m Method) String() string {
	s := m.Owner + "->" + m.Name + "("
	for _, p := range m.Params {
		s += p
	}
	return s + ")" + m.Return
}

// Equal reports whether m and o name the same method (same owner, name,
// parameter list, and return type).
func (m Method) Equal(o Method) bool {
	if m.Owner != o.Owner || m.Name != o.Name || m.Return != o.Return {
		return false
	}
	if len(m.Params) != len(o.Params) {
		return false
	}
	for i := range m.Params {
		if m.Params[i] != o.Params[i] {
			return false
		}
	}
	return true
}

// ClassDef is one class_def_item, fully resolved (superclass/source_file
// are "" when absent, matching the -1 index sentinel).
type ClassDef struct {
	AccessFlags     AccessFlags
	Type            string
	Super           string
	Interfaces      []string
	SourceFile      string
	AnnotationsOff  uint32
	ClassDataOff    uint32
	StaticValuesOff uint32
}

// ValueTag identifies which of the sixteen encoded_value variants a
// Value holds.
type ValueTag int

const (
	ValByte ValueTag = iota
	ValShort
	ValChar
	ValInt
	ValLong
	ValFloat
	ValDouble
	ValString
	ValType
	ValField
	ValMethod
	ValEnum
	ValArray
	ValAnnotation
	ValNull
	ValBool
)

// Value is the decoded form of encoded_value: a tagged union over the
// sixteen variants DEX defines. Only the field matching Tag is
// meaningful; the rest are zero.
type Value struct {
	Tag        ValueTag
	Int        int64   // byte, short, char, int, long
	Float32    float32 // float
	Float64    float64 // double
	Bool       bool
	Str        string      // resolved string (string, type)
	Field      *Field      // resolved field (field, enum)
	Method     *Method     // resolved method (method)
	Array      []Value     // array
	Annotation *Annotation // annotation
}

// AnnotationElement is one (name, value) pair inside an encoded_annotation.
type AnnotationElement struct {
	Name  string
	Value Value
}

// Visibility is the visibility byte of an annotation_item.
type Visibility int

const (
	VisibilityBuild Visibility = iota
	VisibilityRuntime
	VisibilitySystem
)

func (v Visibility) String() string {
	switch v {
	case VisibilityBuild:
		return "BUILD"
	case VisibilityRuntime:
		return "RUNTIME"
	case VisibilitySystem:
		return "SYSTEM"
	default:
		return "UNKNOWN"
	}
}

// Annotation is a decoded encoded_annotation: a type name plus an
// ordered list of (name, value) elements. Nested inside Value.Annotation
// for VALUE_ANNOTATION, and returned directly by the annotation decoder
// for annotation_item entries (which additionally carry a Visibility,
// tracked alongside rather than inside this type since only top-level
// annotation_items have one).
type Annotation struct {
	Type     string
	Elements []AnnotationElement
}

// Label is a code-unit offset into a method's instruction stream that
// something branches to or names as a handler.
type Label uint32

// TryCatchHandler is one typed handler slot inside a resolved
// try/catch entry; Type == "" marks the catch-all slot.
type TryCatchHandler struct {
	Type    string
	Handler Label
}
