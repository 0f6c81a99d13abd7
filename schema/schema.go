// Package schema describes target types at runtime. The descriptor is the
// only contract the coercion engine has with the caller's type; everything
// fuzzy is driven from the canonical names stored here.
package schema

// Kind identifies the shape of a schema node.
type Kind int

const (
	KindBool Kind = iota
	KindI64
	KindF64
	KindString
	KindOption
	KindSeq
	KindMap
	KindStruct
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindI64:
		return "i64"
	case KindF64:
		return "f64"
	case KindString:
		return "string"
	case KindOption:
		return "option"
	case KindSeq:
		return "seq"
	case KindMap:
		return "map"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	}
	return "unknown"
}

// Field is one struct field: canonical name, shape, requiredness, and an
// optional default inserted when the field is absent.
type Field struct {
	Name     string
	Schema   *Schema
	Required bool
	Default  any
}

// F declares a required field.
func F(name string, s *Schema) Field { return Field{Name: name, Schema: s, Required: true} }

// Optional marks the field as not required.
func (f Field) Optional() Field {
	f.Required = false
	return f
}

// WithDefault attaches a default; the default is used (and recorded as an
// insertion) when a required field is absent from the input. An absent
// Option field still decodes to none and an absent optional field is left
// out; neither uses the default.
func (f Field) WithDefault(v any) Field {
	f.Default = v
	return f
}

// VariantKind identifies the payload shape of an enum variant.
type VariantKind int

const (
	VariantUnit VariantKind = iota
	VariantNewtype
	VariantTuple
	VariantStruct
)

// Variant is one enum alternative.
type Variant struct {
	Name   string
	Kind   VariantKind
	Inner  *Schema   // Newtype payload
	Inners []*Schema // Tuple payload
	Fields []Field   // Struct payload
}

// Unit declares a payload-free variant.
func Unit(name string) Variant { return Variant{Name: name, Kind: VariantUnit} }

// Newtype declares a variant wrapping a single value.
func Newtype(name string, inner *Schema) Variant {
	return Variant{Name: name, Kind: VariantNewtype, Inner: inner}
}

// Tuple declares a variant wrapping a fixed sequence of values.
func Tuple(name string, inners ...*Schema) Variant {
	return Variant{Name: name, Kind: VariantTuple, Inners: inners}
}

// StructVariant declares a variant with named fields.
func StructVariant(name string, fields ...Field) Variant {
	return Variant{Name: name, Kind: VariantStruct, Fields: fields}
}

// Schema is the runtime descriptor, a tagged union over Kind.
type Schema struct {
	Kind Kind
	// Elem is the inner shape for Option, Seq, and Map (map keys are always
	// strings).
	Elem *Schema
	// Fields is the ordered field list for Struct.
	Fields []Field
	// SingleField permits a bare value to stand in for the struct by
	// wrapping it under the struct's only required field.
	SingleField bool
	// Variants is the ordered alternative list for Enum.
	Variants []Variant
	// Union selects enum variants by trial coercion of every alternative
	// instead of by name.
	Union bool
}

// Bool returns the bool primitive descriptor.
func Bool() *Schema { return &Schema{Kind: KindBool} }

// I64 returns the signed-integer primitive descriptor.
func I64() *Schema { return &Schema{Kind: KindI64} }

// F64 returns the float primitive descriptor.
func F64() *Schema { return &Schema{Kind: KindF64} }

// String returns the string primitive descriptor.
func String() *Schema { return &Schema{Kind: KindString} }

// Option wraps inner so that null and absence decode to none.
func Option(inner *Schema) *Schema { return &Schema{Kind: KindOption, Elem: inner} }

// Seq describes a sequence of inner.
func Seq(inner *Schema) *Schema { return &Schema{Kind: KindSeq, Elem: inner} }

// Map describes a string-keyed map of value.
func Map(value *Schema) *Schema { return &Schema{Kind: KindMap, Elem: value} }

// Struct describes an object with the given ordered fields.
func Struct(fields ...Field) *Schema { return &Schema{Kind: KindStruct, Fields: fields} }

// AsSingleField marks a struct as accepting a bare value under its only
// required field.
func (s *Schema) AsSingleField() *Schema {
	s.SingleField = true
	return s
}

// Enum describes a closed set of variants selected by name.
func Enum(variants ...Variant) *Schema { return &Schema{Kind: KindEnum, Variants: variants} }

// Union describes an enum whose variant is selected by trying all and
// keeping the cheapest coercion.
func Union(variants ...Variant) *Schema {
	return &Schema{Kind: KindEnum, Variants: variants, Union: true}
}

// TypeName renders a short human-readable name for error messages.
func (s *Schema) TypeName() string {
	switch s.Kind {
	case KindOption:
		return "option<" + s.Elem.TypeName() + ">"
	case KindSeq:
		return "seq<" + s.Elem.TypeName() + ">"
	case KindMap:
		return "map<string," + s.Elem.TypeName() + ">"
	case KindEnum:
		if s.Union {
			return "union"
		}
		return "enum"
	default:
		return s.Kind.String()
	}
}

// IsPrimitive reports whether the schema is a leaf shape.
func (s *Schema) IsPrimitive() bool {
	switch s.Kind {
	case KindBool, KindI64, KindF64, KindString:
		return true
	}
	return false
}
