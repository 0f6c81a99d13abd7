package tryparse

import (
	"math"
	"strconv"
	"strings"

	"github.com/microagents/tryparse/i18n"
	"github.com/microagents/tryparse/schema"
)

// EnumValue is the typed result of a payload-carrying enum variant (and of
// every union selection).
type EnumValue struct {
	Variant string
	Value   any
}

// coercer walks a candidate against a schema descriptor, appending every
// edit to the candidate root's transformation log. A failed attempt rolls
// nothing back; callers work on clones.
type coercer struct {
	root  *FlexValue
	fuzzy bool
}

// coerceCandidate fits a candidate into a schema. On success it returns the
// typed value plus the updated candidate carrying the transformation log;
// the pooled original stays untouched.
func coerceCandidate(s *schema.Schema, c *FlexValue, fuzzy bool) (any, *FlexValue, error) {
	clone := c.Clone()
	co := &coercer{root: clone, fuzzy: fuzzy}
	v, err := co.coerce(s, clone, "")
	if err != nil {
		return nil, nil, err
	}
	return v, clone, nil
}

func (co *coercer) record(kind, path, from, to string) {
	co.root.AddTransformation(Transformation{Kind: kind, Path: path, From: from, To: to})
}

func (co *coercer) mismatch(path string, s *schema.Schema, v *FlexValue) error {
	return Issues{Issue{
		Path:    path,
		Code:    CodeCoercionFailed,
		Message: i18n.T(CodeCoercionFailed, nil),
		Params:  map[string]any{"expected": s.TypeName(), "got": v.Kind.String()},
	}}
}

func (co *coercer) coerce(s *schema.Schema, v *FlexValue, path string) (any, error) {
	switch s.Kind {
	case schema.KindBool:
		return co.coerceBool(s, v, path)
	case schema.KindI64:
		return co.coerceI64(s, v, path)
	case schema.KindF64:
		return co.coerceF64(s, v, path)
	case schema.KindString:
		return co.coerceString(s, v, path)
	case schema.KindOption:
		if v.Kind == KindNull {
			return nil, nil
		}
		return co.coerce(s.Elem, v, path)
	case schema.KindSeq:
		return co.coerceSeq(s, v, path)
	case schema.KindMap:
		return co.coerceMap(s, v, path)
	case schema.KindStruct:
		return co.coerceStruct(s, v, path)
	case schema.KindEnum:
		if s.Union {
			return co.coerceUnion(s, v, path)
		}
		return co.coerceEnum(s, v, path)
	}
	return nil, co.mismatch(path, s, v)
}

func (co *coercer) coerceBool(s *schema.Schema, v *FlexValue, path string) (any, error) {
	switch v.Kind {
	case KindBool:
		return v.Bool, nil
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "yes", "on", "1":
			co.record(TransStringToBool, path, v.Str, "true")
			return true, nil
		case "false", "no", "off", "0":
			co.record(TransStringToBool, path, v.Str, "false")
			return false, nil
		}
	case KindInt:
		if v.Int == 0 || v.Int == 1 {
			co.record(TransStringToBool, path, strconv.FormatInt(v.Int, 10), "")
			return v.Int == 1, nil
		}
	}
	return nil, co.mismatch(path, s, v)
}

func (co *coercer) coerceI64(s *schema.Schema, v *FlexValue, path string) (any, error) {
	switch v.Kind {
	case KindInt:
		return v.Int, nil
	case KindFloat:
		if v.Float == math.Trunc(v.Float) && v.Float >= -9.2233720368547758e18 && v.Float < 9.2233720368547758e18 {
			co.record(TransFloatToInt, path, strconv.FormatFloat(v.Float, 'g', -1, 64), "")
			return int64(v.Float), nil
		}
	case KindString:
		if i, ok := parseFlexInt(v.Str); ok {
			co.record(TransStringToNumber, path, v.Str, "")
			return i, nil
		}
	}
	return nil, co.mismatch(path, s, v)
}

// parseFlexInt accepts an optional sign, underscore separators, and 0x hex.
func parseFlexInt(s string) (int64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return 0, false
	}
	neg := false
	body := s
	if body[0] == '+' || body[0] == '-' {
		neg = body[0] == '-'
		body = body[1:]
	}
	var (
		i   int64
		err error
	)
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		i, err = strconv.ParseInt(body[2:], 16, 64)
	} else {
		i, err = strconv.ParseInt(body, 10, 64)
	}
	if err != nil {
		return 0, false
	}
	if neg {
		i = -i
	}
	return i, true
}

func (co *coercer) coerceF64(s *schema.Schema, v *FlexValue, path string) (any, error) {
	switch v.Kind {
	case KindFloat:
		return v.Float, nil
	case KindInt:
		// widening is exact, no penalty needed
		return float64(v.Int), nil
	case KindString:
		str := strings.ReplaceAll(strings.TrimSpace(v.Str), "_", "")
		if f, err := strconv.ParseFloat(str, 64); err == nil {
			co.record(TransStringToNumber, path, v.Str, "")
			return f, nil
		}
	}
	return nil, co.mismatch(path, s, v)
}

func (co *coercer) coerceString(s *schema.Schema, v *FlexValue, path string) (any, error) {
	switch v.Kind {
	case KindString:
		return v.Str, nil
	case KindInt:
		out := strconv.FormatInt(v.Int, 10)
		co.record(TransNumberToString, path, "", out)
		return out, nil
	case KindFloat:
		out := strconv.FormatFloat(v.Float, 'g', -1, 64)
		co.record(TransNumberToString, path, "", out)
		return out, nil
	case KindBool:
		out := strconv.FormatBool(v.Bool)
		co.record(TransNumberToString, path, "", out)
		return out, nil
	}
	return nil, co.mismatch(path, s, v)
}

func (co *coercer) coerceSeq(s *schema.Schema, v *FlexValue, path string) (any, error) {
	switch v.Kind {
	case KindArray:
		out := make([]any, len(v.Items))
		for i, it := range v.Items {
			ev, err := co.coerce(s.Elem, it, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case KindBool, KindInt, KindFloat, KindString:
		co.record(TransSingleToArray, path, "", "")
		ev, err := co.coerce(s.Elem, v, path)
		if err != nil {
			return nil, err
		}
		return []any{ev}, nil
	case KindObject:
		if kf, vf, ok := keyValueFields(s.Elem); ok {
			out := make([]any, 0, len(v.Members))
			for _, m := range v.Members {
				mp := childPath(path, m.Key)
				kv, err := co.coerce(kf.Schema, NewString(m.Key, v.Source), mp)
				if err != nil {
					return nil, err
				}
				vv, err := co.coerce(vf.Schema, m.Value, mp)
				if err != nil {
					return nil, err
				}
				out = append(out, map[string]any{kf.Name: kv, vf.Name: vv})
			}
			return out, nil
		}
	}
	return nil, co.mismatch(path, s, v)
}

// keyValueFields recognises the key/value struct convention for sequences
// fed from objects.
func keyValueFields(s *schema.Schema) (schema.Field, schema.Field, bool) {
	if s == nil || s.Kind != schema.KindStruct || len(s.Fields) != 2 {
		return schema.Field{}, schema.Field{}, false
	}
	var kf, vf *schema.Field
	for i := range s.Fields {
		switch s.Fields[i].Name {
		case "key":
			kf = &s.Fields[i]
		case "value":
			vf = &s.Fields[i]
		}
	}
	if kf == nil || vf == nil {
		return schema.Field{}, schema.Field{}, false
	}
	return *kf, *vf, true
}

func (co *coercer) coerceMap(s *schema.Schema, v *FlexValue, path string) (any, error) {
	switch v.Kind {
	case KindObject:
		out := make(map[string]any, len(v.Members))
		for _, m := range v.Members {
			if _, dup := out[m.Key]; dup {
				// first occurrence wins
				continue
			}
			mv, err := co.coerce(s.Elem, m.Value, childPath(path, m.Key))
			if err != nil {
				return nil, err
			}
			out[m.Key] = mv
		}
		return out, nil
	case KindArray:
		out := make(map[string]any, len(v.Items))
		for i, it := range v.Items {
			ip := indexPath(path, i)
			if it.Kind != KindObject {
				return nil, co.mismatch(ip, s, it)
			}
			keyNode, keyName, ok := co.findMember(it, "key")
			if !ok {
				return nil, co.mismatch(ip, s, it)
			}
			valNode, valName, ok := co.findMember(it, "value")
			if !ok {
				return nil, co.mismatch(ip, s, it)
			}
			if keyNode.Kind != KindString {
				return nil, co.mismatch(childPath(ip, keyName), schema.String(), keyNode)
			}
			if keyName != "key" {
				co.record(TransFieldRenamed, childPath(ip, keyName), keyName, "key")
			}
			if valName != "value" {
				co.record(TransFieldRenamed, childPath(ip, valName), valName, "value")
			}
			if _, dup := out[keyNode.Str]; dup {
				continue
			}
			mv, err := co.coerce(s.Elem, valNode, childPath(ip, valName))
			if err != nil {
				return nil, err
			}
			out[keyNode.Str] = mv
		}
		return out, nil
	}
	return nil, co.mismatch(path, s, v)
}
