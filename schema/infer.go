package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Infer derives a descriptor from a Go type: structs become Struct fields in
// declaration order (json tags supply canonical names, ",omitempty" marks a
// field optional), pointers become Option, slices Seq, string-keyed maps
// Map. Hand-built descriptors remain the contract; Infer is a convenience
// that produces the same data.
func Infer(t reflect.Type) (*Schema, error) {
	return inferType(t, map[reflect.Type]bool{})
}

// InferOf is Infer for a value's type.
func InferOf(v any) (*Schema, error) { return Infer(reflect.TypeOf(v)) }

func inferType(t reflect.Type, seen map[reflect.Type]bool) (*Schema, error) {
	switch t.Kind() {
	case reflect.Bool:
		return Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return I64(), nil
	case reflect.Float32, reflect.Float64:
		return F64(), nil
	case reflect.String:
		return String(), nil
	case reflect.Pointer:
		inner, err := inferType(t.Elem(), seen)
		if err != nil {
			return nil, err
		}
		return Option(inner), nil
	case reflect.Slice, reflect.Array:
		inner, err := inferType(t.Elem(), seen)
		if err != nil {
			return nil, err
		}
		return Seq(inner), nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("schema: map key of %s must be string", t)
		}
		inner, err := inferType(t.Elem(), seen)
		if err != nil {
			return nil, err
		}
		return Map(inner), nil
	case reflect.Struct:
		if seen[t] {
			return nil, fmt.Errorf("schema: recursive type %s", t)
		}
		seen[t] = true
		defer delete(seen, t)
		fields := make([]Field, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			name, omitempty, skip := parseJSONTag(sf)
			if skip {
				continue
			}
			fs, err := inferType(sf.Type, seen)
			if err != nil {
				return nil, err
			}
			f := F(name, fs)
			if omitempty || sf.Type.Kind() == reflect.Pointer {
				f = f.Optional()
			}
			fields = append(fields, f)
		}
		return Struct(fields...), nil
	default:
		return nil, fmt.Errorf("schema: unsupported type %s", t)
	}
}

func parseJSONTag(sf reflect.StructField) (name string, omitempty, skip bool) {
	name = sf.Name
	tag, ok := sf.Tag.Lookup("json")
	if !ok {
		return name, false, false
	}
	parts := strings.Split(tag, ",")
	if parts[0] == "-" && len(parts) == 1 {
		return "", false, true
	}
	if parts[0] != "" {
		name = parts[0]
	}
	for _, p := range parts[1:] {
		if p == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty, false
}
