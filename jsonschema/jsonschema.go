// Package jsonschema projects tryparse schema descriptors into JSON Schema
// documents, so hosts can advertise the expected shape to a model up front.
package jsonschema

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/microagents/tryparse/schema"
)

// Schema is a minimal draft-07-shaped document.
type Schema struct {
	Type                 string             `json:"type,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
	OneOf                []*Schema          `json:"oneOf,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
	Nullable             bool               `json:"nullable,omitempty"`
	Default              any                `json:"default,omitempty"`
}

// JSON renders the document.
func (s *Schema) JSON() ([]byte, error) { return json.Marshal(s) }

// FromSchema converts a descriptor into a JSON Schema document.
func FromSchema(s *schema.Schema) (*Schema, error) {
	switch s.Kind {
	case schema.KindBool:
		return &Schema{Type: "boolean"}, nil
	case schema.KindI64:
		return &Schema{Type: "integer"}, nil
	case schema.KindF64:
		return &Schema{Type: "number"}, nil
	case schema.KindString:
		return &Schema{Type: "string"}, nil
	case schema.KindOption:
		inner, err := FromSchema(s.Elem)
		if err != nil {
			return nil, err
		}
		inner.Nullable = true
		return inner, nil
	case schema.KindSeq:
		items, err := FromSchema(s.Elem)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case schema.KindMap:
		val, err := FromSchema(s.Elem)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: val}, nil
	case schema.KindStruct:
		out := &Schema{Type: "object", Properties: make(map[string]*Schema, len(s.Fields))}
		for _, f := range s.Fields {
			fs, err := FromSchema(f.Schema)
			if err != nil {
				return nil, err
			}
			if f.Default != nil {
				fs.Default = f.Default
			}
			out.Properties[f.Name] = fs
			if f.Required && f.Default == nil && f.Schema.Kind != schema.KindOption {
				out.Required = append(out.Required, f.Name)
			}
		}
		return out, nil
	case schema.KindEnum:
		return fromEnum(s)
	}
	return nil, fmt.Errorf("jsonschema: unsupported kind %v", s.Kind)
}

func fromEnum(s *schema.Schema) (*Schema, error) {
	allUnit := true
	for _, v := range s.Variants {
		if v.Kind != schema.VariantUnit {
			allUnit = false
			break
		}
	}
	if allUnit {
		out := &Schema{Type: "string"}
		for _, v := range s.Variants {
			out.Enum = append(out.Enum, v.Name)
		}
		return out, nil
	}
	out := &Schema{}
	for _, v := range s.Variants {
		alt, err := fromVariant(v)
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, alt)
	}
	return out, nil
}

func fromVariant(v schema.Variant) (*Schema, error) {
	switch v.Kind {
	case schema.VariantUnit:
		return &Schema{Type: "string", Enum: []string{v.Name}}, nil
	case schema.VariantNewtype:
		inner, err := FromSchema(v.Inner)
		if err != nil {
			return nil, err
		}
		return wrapVariant(v.Name, inner), nil
	case schema.VariantTuple:
		items := &Schema{Type: "array"}
		for _, in := range v.Inners {
			alt, err := FromSchema(in)
			if err != nil {
				return nil, err
			}
			items.OneOf = append(items.OneOf, alt)
		}
		return wrapVariant(v.Name, items), nil
	case schema.VariantStruct:
		inner, err := FromSchema(schema.Struct(v.Fields...))
		if err != nil {
			return nil, err
		}
		return wrapVariant(v.Name, inner), nil
	}
	return nil, fmt.Errorf("jsonschema: unsupported variant kind %v", v.Kind)
}

func wrapVariant(name string, payload *Schema) *Schema {
	return &Schema{
		Type:       "object",
		Properties: map[string]*Schema{name: payload},
		Required:   []string{name},
	}
}
