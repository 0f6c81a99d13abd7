package tryparse

import (
	"strings"

	"github.com/microagents/tryparse/i18n"
	"github.com/microagents/tryparse/internal/fuzzy"
	"github.com/microagents/tryparse/schema"
)

func (co *coercer) invalidEnum(path string, got *FlexValue) error {
	return Issues{Issue{
		Path:    path,
		Code:    CodeInvalidEnum,
		Message: i18n.T(CodeInvalidEnum, nil),
		Params:  map[string]any{"got": got.Kind.String()},
	}}
}

func (co *coercer) coerceEnum(s *schema.Schema, v *FlexValue, path string) (any, error) {
	switch v.Kind {
	case KindString:
		idx, matched := co.matchVariantName(strings.TrimSpace(v.Str), s.Variants, schema.VariantUnit)
		if !matched {
			return nil, co.invalidEnum(path, v)
		}
		name := s.Variants[idx].Name
		if strings.TrimSpace(v.Str) != name {
			co.record(TransEnumFuzzyMatched, path, v.Str, name)
		}
		return name, nil
	case KindObject:
		if len(v.Members) != 1 {
			return nil, co.invalidEnum(path, v)
		}
		m := v.Members[0]
		idx := -1
		for i, vr := range s.Variants {
			if vr.Kind == schema.VariantUnit {
				continue
			}
			if m.Key == vr.Name || (co.fuzzy && fuzzy.Match(m.Key, vr.Name)) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, co.invalidEnum(path, v)
		}
		vr := s.Variants[idx]
		if m.Key != vr.Name {
			co.record(TransEnumFuzzyMatched, path, m.Key, vr.Name)
		}
		val, err := co.coercePayload(vr, m.Value, childPath(path, m.Key))
		if err != nil {
			return nil, err
		}
		return EnumValue{Variant: vr.Name, Value: val}, nil
	}
	return nil, co.invalidEnum(path, v)
}

// matchVariantName resolves an input string against the variants of the
// given payload kind. Strict mode demands exact names; fuzzy mode applies
// the full matcher.
func (co *coercer) matchVariantName(input string, variants []schema.Variant, kind schema.VariantKind) (int, bool) {
	indexes := make([]int, 0, len(variants))
	names := make([]string, 0, len(variants))
	for i, vr := range variants {
		if vr.Kind != kind {
			continue
		}
		if input == vr.Name {
			return i, true
		}
		indexes = append(indexes, i)
		names = append(names, vr.Name)
	}
	if !co.fuzzy {
		return -1, false
	}
	best := fuzzy.MatchEnum(input, names)
	if best < 0 {
		return -1, false
	}
	return indexes[best], true
}

func (co *coercer) coercePayload(vr schema.Variant, v *FlexValue, path string) (any, error) {
	switch vr.Kind {
	case schema.VariantNewtype:
		return co.coerce(vr.Inner, v, path)
	case schema.VariantTuple:
		if v.Kind != KindArray || len(v.Items) != len(vr.Inners) {
			return nil, co.invalidEnum(path, v)
		}
		out := make([]any, len(v.Items))
		for i, it := range v.Items {
			ev, err := co.coerce(vr.Inners[i], it, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case schema.VariantStruct:
		return co.coerceStruct(schema.Struct(vr.Fields...), v, path)
	}
	return nil, co.invalidEnum(path, v)
}

// coerceUnion selects the union variant by full trial coercion: every
// variant is attempted, each successful attempt is scored, and the lowest
// score wins with declaration order breaking ties.
func (co *coercer) coerceUnion(s *schema.Schema, v *FlexValue, path string) (any, error) {
	mark := len(co.root.trans)
	type attempt struct {
		idx   int
		val   any
		score int
		trans []Transformation
	}
	var best *attempt
	var bestErr error
	bestErrScore := -1
	for i, vr := range s.Variants {
		co.root.trans = co.root.trans[:mark]
		val, err := co.coerceUnionVariant(vr, v, path)
		score := Score(co.root)
		if err != nil {
			if bestErr == nil || score < bestErrScore {
				bestErr, bestErrScore = err, score
			}
			continue
		}
		if best == nil || score < best.score {
			best = &attempt{
				idx:   i,
				val:   val,
				score: score,
				trans: append([]Transformation(nil), co.root.trans[mark:]...),
			}
		}
	}
	co.root.trans = co.root.trans[:mark]
	if best == nil {
		if bestErr != nil {
			return nil, bestErr
		}
		return nil, co.invalidEnum(path, v)
	}
	co.root.trans = append(co.root.trans, best.trans...)
	co.record(TransVariantSelected, path, "", s.Variants[best.idx].Name)
	return EnumValue{Variant: s.Variants[best.idx].Name, Value: best.val}, nil
}

func (co *coercer) coerceUnionVariant(vr schema.Variant, v *FlexValue, path string) (any, error) {
	if vr.Kind == schema.VariantUnit {
		if v.Kind != KindString {
			return nil, co.invalidEnum(path, v)
		}
		input := strings.TrimSpace(v.Str)
		if input != vr.Name {
			if !co.fuzzy || fuzzy.MatchEnum(input, []string{vr.Name}) < 0 {
				return nil, co.invalidEnum(path, v)
			}
			co.record(TransEnumFuzzyMatched, path, v.Str, vr.Name)
		}
		return nil, nil
	}
	return co.coercePayload(vr, v, path)
}
