package tryparse

import (
	"strconv"
	"strings"
)

// ConfidencePenaltyFactor is applied for each transformation: every recorded
// edit multiplies the reported confidence by this value.
const ConfidencePenaltyFactor = 0.95

// Kind identifies the shape of a FlexValue node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// SourceKind identifies which strategy produced a candidate.
type SourceKind int

const (
	SourceDirect SourceKind = iota
	SourceMarkdown
	SourceYAML
	SourceFixed
	SourceMultiObjectArray
	SourceMultiObject
	SourceRawPrimitive
	SourceHeuristic
	SourceSynthesized
)

func (k SourceKind) String() string {
	switch k {
	case SourceDirect:
		return "direct_json"
	case SourceMarkdown:
		return "markdown"
	case SourceYAML:
		return "yaml"
	case SourceFixed:
		return "json_fixer"
	case SourceMultiObjectArray:
		return "multi_object_array"
	case SourceMultiObject:
		return "multi_object"
	case SourceRawPrimitive:
		return "raw_primitive"
	case SourceHeuristic:
		return "heuristic"
	case SourceSynthesized:
		return "synthesized"
	}
	return "unknown"
}

// Source records how a candidate was obtained.
type Source struct {
	Kind SourceKind
	// Fixes is the number of repairs the fixer applied (SourceFixed, and
	// SourceMarkdown when a fenced block needed repair).
	Fixes int
	// Lang is the fence language tag for SourceMarkdown ("" when untagged).
	Lang string
	// Index is the document position for SourceMultiObject.
	Index int
}

// Transformation kinds (closed set).
const (
	TransStringToNumber   = "string_to_number"
	TransStringToBool     = "string_to_bool"
	TransNumberToString   = "number_to_string"
	TransFloatToInt       = "float_to_int"
	TransSingleToArray    = "single_to_array"
	TransFieldRenamed     = "field_renamed"
	TransDefaultInserted  = "default_inserted"
	TransEnumFuzzyMatched = "enum_fuzzy_matched"
	TransKeyImplied       = "key_implied"
	TransVariantSelected  = "variant_selected"
)

// Transformation records one edit applied during coercion. Path is a JSON
// Pointer into the pre-coercion candidate tree, except for records at
// synthesized sites: an inserted default, and fields beneath an implied key,
// name the schema field rather than an existing node.
type Transformation struct {
	Kind string
	Path string
	From string
	To   string
}

// Member is one ordered object entry. Duplicate keys are permitted at this
// layer; the coercion engine applies its first-wins rule on top.
type Member struct {
	Key   string
	Value *FlexValue
}

// Span is the byte range a node covers in the original input. Informational.
type Span struct {
	Start int
	End   int
}

// FlexValue is a node in a JSON-like tree with provenance and an edit log.
//
// A candidate is created by exactly one strategy, mutated only by the
// coercion engine (which appends to the root's transformation log), and
// dropped with the pool at the end of a parse call.
type FlexValue struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Float   float64
	Str     string
	Items   []*FlexValue
	Members []Member
	Source  Source
	Span    *Span

	// base is the strategy-assigned confidence; strategies produce a uniform
	// value across a subtree.
	base  float64
	trans []Transformation
}

// NewNull returns a Null node.
func NewNull(src Source) *FlexValue { return &FlexValue{Kind: KindNull, Source: src, base: 1.0} }

// NewBool returns a Bool node.
func NewBool(b bool, src Source) *FlexValue {
	return &FlexValue{Kind: KindBool, Bool: b, Source: src, base: 1.0}
}

// NewInt returns an Int node.
func NewInt(i int64, src Source) *FlexValue {
	return &FlexValue{Kind: KindInt, Int: i, Source: src, base: 1.0}
}

// NewFloat returns a Float node.
func NewFloat(f float64, src Source) *FlexValue {
	return &FlexValue{Kind: KindFloat, Float: f, Source: src, base: 1.0}
}

// NewString returns a String node.
func NewString(s string, src Source) *FlexValue {
	return &FlexValue{Kind: KindString, Str: s, Source: src, base: 1.0}
}

// NewArray returns an Array node.
func NewArray(items []*FlexValue, src Source) *FlexValue {
	return &FlexValue{Kind: KindArray, Items: items, Source: src, base: 1.0}
}

// NewObject returns an Object node with the given ordered members.
func NewObject(members []Member, src Source) *FlexValue {
	return &FlexValue{Kind: KindObject, Members: members, Source: src, base: 1.0}
}

// Confidence reports the node's confidence in [0,1]: the strategy-assigned
// base decayed by ConfidencePenaltyFactor per recorded transformation.
func (v *FlexValue) Confidence() float64 {
	c := v.base
	for range v.trans {
		c *= ConfidencePenaltyFactor
	}
	return c
}

// Transformations returns the edit log in application order.
func (v *FlexValue) Transformations() []Transformation { return v.trans }

// AddTransformation appends one record to the edit log. The log only grows
// and is never reordered.
func (v *FlexValue) AddTransformation(t Transformation) { v.trans = append(v.trans, t) }

// Clone deep-copies the tree and the edit log. The coercion engine works on a
// clone so a failed attempt leaves the pooled candidate untouched.
func (v *FlexValue) Clone() *FlexValue {
	if v == nil {
		return nil
	}
	out := &FlexValue{
		Kind:   v.Kind,
		Bool:   v.Bool,
		Int:    v.Int,
		Float:  v.Float,
		Str:    v.Str,
		Source: v.Source,
		base:   v.base,
	}
	if v.Span != nil {
		sp := *v.Span
		out.Span = &sp
	}
	if v.Items != nil {
		out.Items = make([]*FlexValue, len(v.Items))
		for i, it := range v.Items {
			out.Items[i] = it.Clone()
		}
	}
	if v.Members != nil {
		out.Members = make([]Member, len(v.Members))
		for i, m := range v.Members {
			out.Members[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
	}
	if v.trans != nil {
		out.trans = append([]Transformation(nil), v.trans...)
	}
	return out
}

// At resolves a JSON Pointer against the tree. Returns nil when the pointer
// does not name a node.
func (v *FlexValue) At(pointer string) *FlexValue {
	if pointer == "" {
		return v
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil
	}
	cur := v
	for _, seg := range strings.Split(pointer[1:], "/") {
		if cur == nil {
			return nil
		}
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		switch cur.Kind {
		case KindObject:
			var next *FlexValue
			for _, m := range cur.Members {
				if m.Key == seg {
					next = m.Value
					break
				}
			}
			cur = next
		case KindArray:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(cur.Items) {
				return nil
			}
			cur = cur.Items[idx]
		default:
			return nil
		}
	}
	return cur
}

// Explanation returns a JSON-shaped description of how the value was parsed:
// source, confidence, score, and the transformation log.
func (v *FlexValue) Explanation() map[string]any {
	src := map[string]any{"type": v.Source.Kind.String()}
	switch v.Source.Kind {
	case SourceMarkdown:
		if v.Source.Lang != "" {
			src["language"] = v.Source.Lang
		}
		if v.Source.Fixes > 0 {
			src["fixes"] = v.Source.Fixes
		}
	case SourceFixed:
		src["fixes"] = v.Source.Fixes
	case SourceMultiObject:
		src["index"] = v.Source.Index
	}
	ts := make([]map[string]any, 0, len(v.trans))
	for _, t := range v.trans {
		e := map[string]any{"type": t.Kind, "path": displayPath(t.Path)}
		if t.From != "" {
			e["from"] = t.From
		}
		if t.To != "" {
			e["to"] = t.To
		}
		ts = append(ts, e)
	}
	return map[string]any{
		"source":               src,
		"confidence":           v.Confidence(),
		"score":                Score(v),
		"transformations":      ts,
		"transformation_count": len(v.trans),
	}
}

// escapePointer escapes a key for use as a JSON Pointer segment.
func escapePointer(seg string) string {
	seg = strings.ReplaceAll(seg, "~", "~0")
	return strings.ReplaceAll(seg, "/", "~1")
}

// childPath appends a key segment to a JSON Pointer.
func childPath(base, key string) string { return base + "/" + escapePointer(key) }

// indexPath appends an array index segment to a JSON Pointer.
func indexPath(base string, i int) string { return base + "/" + strconv.Itoa(i) }
