package ir

import (
	"fmt"
	"strings"
)

// TypeKind tags a parsed type expression. The set is closed; language
// constructs that do not fit any kind degrade to TypeUnknown carrying the
// raw source text.
type TypeKind string

const (
	TypeArray       TypeKind = "array"
	TypeConstructor TypeKind = "constructor"
	TypeFunction    TypeKind = "function"
	TypePointer     TypeKind = "pointer"
	TypeRecord      TypeKind = "record"
	TypeReference   TypeKind = "reference"
	TypeTypeOf      TypeKind = "type_of"
	TypeUnknown     TypeKind = "unknown"
)

// Field is one named member of a record type.
type Field struct {
	Name     string
	Optional bool
	Type     Type
}

func (f Field) String() string {
	name := f.Name
	if f.Optional {
		name += "?"
	}
	return fmt.Sprintf("%s:%s", name, f.Type)
}

// Type is a parsed type expression. Each kind carries a subset of
// Arguments, Fields and Name; construction never fails.
type Type struct {
	Kind      TypeKind
	Arguments []Type
	Fields    []Field
	Name      string
}

// UnknownType wraps unclassifiable type syntax, keeping the raw text.
func UnknownType(text string) Type {
	return Type{Kind: TypeUnknown, Name: text}
}

// ConstructorType builds a named type, optionally applied to arguments.
func ConstructorType(name string, arguments ...Type) Type {
	return Type{Kind: TypeConstructor, Name: name, Arguments: arguments}
}

// RecordType builds a record from its fields.
func RecordType(fields []Field) Type {
	return Type{Kind: TypeRecord, Fields: fields}
}

// Array wraps t as an array type.
func (t Type) Array() Type {
	return Type{Kind: TypeArray, Arguments: []Type{t}}
}

// Pointer wraps t as a pointer type.
func (t Type) Pointer() Type {
	return Type{Kind: TypePointer, Arguments: []Type{t}}
}

// Function wraps t as the result type of a function declarator.
func (t Type) Function() Type {
	return Type{Kind: TypeFunction, Arguments: []Type{t}}
}

// Reference wraps t as a reference type.
func (t Type) Reference() Type {
	return Type{Kind: TypeReference, Arguments: []Type{t}}
}

// TypeOf wraps t as the type of a value expression.
func (t Type) TypeOf() Type {
	return Type{Kind: TypeTypeOf, Arguments: []Type{t}}
}

// String renders the printable form derived from the kind tag, matching
// the surface syntax of the supported grammars.
func (t Type) String() string {
	switch t.Kind {
	case TypeArray:
		return t.Arguments[0].String() + "[]"
	case TypePointer:
		return t.Arguments[0].String() + "*"
	case TypeReference:
		return t.Arguments[0].String() + "&"
	case TypeFunction:
		return t.Arguments[0].String() + "()"
	case TypeConstructor:
		if len(t.Arguments) == 0 {
			return t.Name
		}
		args := make([]string, len(t.Arguments))
		for i, a := range t.Arguments {
			args[i] = a.String()
		}
		return fmt.Sprintf("%s[%s]", t.Name, strings.Join(args, ", "))
	case TypeRecord:
		fields := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = f.String()
		}
		return "{" + strings.Join(fields, ", ") + "}"
	case TypeTypeOf:
		return fmt.Sprintf("type_of(%s)", t.Arguments[0])
	default:
		return t.Name
	}
}

// Parameter is one function parameter: a name, an optional default-value
// source snippet (opaque, never evaluated), an optional type, and an
// optional-flag.
type Parameter struct {
	Name         string
	DefaultValue string
	Type         *Type
	Optional     bool
}

func (p Parameter) String() string {
	name := p.Name
	if p.Optional {
		name += "?"
	}
	if p.Type == nil {
		return name
	}
	return fmt.Sprintf("%s:%s", name, p.Type)
}
