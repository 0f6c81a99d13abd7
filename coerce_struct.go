package tryparse

import (
	"github.com/microagents/tryparse/i18n"
	"github.com/microagents/tryparse/internal/fuzzy"
	"github.com/microagents/tryparse/schema"
)

func (co *coercer) coerceStruct(s *schema.Schema, v *FlexValue, path string) (any, error) {
	obj := v
	if v.Kind != KindObject {
		f, ok := impliedField(s)
		if !ok || v.Kind == KindNull {
			return nil, co.mismatch(path, s, v)
		}
		co.record(TransKeyImplied, path, "", f.Name)
		obj = NewObject([]Member{{Key: f.Name, Value: v}}, Source{Kind: SourceSynthesized})
	}
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		node, key, found := co.findMember(obj, f.Name)
		if found {
			fieldPath := childPath(path, key)
			if key != f.Name {
				co.record(TransFieldRenamed, fieldPath, key, f.Name)
			}
			val, err := co.coerce(f.Schema, node, fieldPath)
			if err != nil {
				return nil, err
			}
			out[f.Name] = val
			continue
		}
		if f.Schema.Kind == schema.KindOption {
			out[f.Name] = nil
			continue
		}
		if !f.Required {
			continue
		}
		if f.Default != nil {
			co.record(TransDefaultInserted, childPath(path, f.Name), "", "")
			out[f.Name] = f.Default
			continue
		}
		return nil, Issues{Issue{
			Path:    childPath(path, f.Name),
			Code:    CodeMissingField,
			Message: i18n.T(CodeMissingField, nil),
			Params:  map[string]any{"field": f.Name},
		}}
	}
	return out, nil
}

// impliedField returns the struct's only required field when the struct
// accepts a bare value in its place.
func impliedField(s *schema.Schema) (schema.Field, bool) {
	if !s.SingleField {
		return schema.Field{}, false
	}
	var req *schema.Field
	for i := range s.Fields {
		if s.Fields[i].Required {
			if req != nil {
				return schema.Field{}, false
			}
			req = &s.Fields[i]
		}
	}
	if req == nil {
		return schema.Field{}, false
	}
	return *req, true
}

// findMember locates the first object entry whose key matches the canonical
// name: exactly in strict mode, modulo normalisation in fuzzy mode.
// Duplicate keys that both match resolve to the first in object order.
func (co *coercer) findMember(obj *FlexValue, name string) (*FlexValue, string, bool) {
	for _, m := range obj.Members {
		if m.Key == name || (co.fuzzy && fuzzy.Match(m.Key, name)) {
			return m.Value, m.Key, true
		}
	}
	return nil, "", false
}
