package tryparse

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/microagents/tryparse/internal/fuzzy"
)

// Bind projects a coerced value into out, which must be a non-nil pointer.
// Struct fields match map keys by json tag or normalised name; slices, maps,
// pointers, and numeric widenings are handled recursively. EnumValue binds
// its variant name into string fields.
func Bind(v any, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("tryparse: Bind target must be a non-nil pointer, got %T", out)
	}
	return bindValue(v, rv.Elem())
}

func bindValue(v any, dst reflect.Value) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	if ev, ok := v.(EnumValue); ok && dst.Kind() == reflect.String {
		dst.SetString(ev.Variant)
		return nil
	}
	switch dst.Kind() {
	case reflect.Pointer:
		p := reflect.New(dst.Type().Elem())
		if err := bindValue(v, p.Elem()); err != nil {
			return err
		}
		dst.Set(p)
		return nil
	case reflect.Interface:
		dst.Set(reflect.ValueOf(v))
		return nil
	case reflect.Struct:
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("tryparse: cannot bind %T into %s", v, dst.Type())
		}
		return bindStruct(m, dst)
	case reflect.Slice:
		items, ok := v.([]any)
		if !ok {
			return fmt.Errorf("tryparse: cannot bind %T into %s", v, dst.Type())
		}
		out := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, it := range items {
			if err := bindValue(it, out.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	case reflect.Map:
		m, ok := v.(map[string]any)
		if !ok || dst.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("tryparse: cannot bind %T into %s", v, dst.Type())
		}
		out := reflect.MakeMapWithSize(dst.Type(), len(m))
		for k, mv := range m {
			ev := reflect.New(dst.Type().Elem()).Elem()
			if err := bindValue(mv, ev); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(dst.Type().Key()), ev)
		}
		dst.Set(out)
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}
	if rv.Type().ConvertibleTo(dst.Type()) {
		switch dst.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64, reflect.String, reflect.Bool:
			dst.Set(rv.Convert(dst.Type()))
			return nil
		}
	}
	return fmt.Errorf("tryparse: cannot bind %T into %s", v, dst.Type())
}

func bindStruct(m map[string]any, dst reflect.Value) error {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			base := strings.Split(tag, ",")[0]
			if base == "-" {
				continue
			}
			if base != "" {
				name = base
			}
		}
		fv, ok := m[name]
		if !ok {
			for k, cv := range m {
				if fuzzy.Match(k, name) {
					fv, ok = cv, true
					break
				}
			}
		}
		if !ok || fv == nil {
			continue
		}
		if err := bindValue(fv, dst.Field(i)); err != nil {
			return err
		}
	}
	return nil
}
