package tryparse

import "strings"

// RawPrimitive lifts bare scalar responses: a lone JSON scalar, or a single
// line of unquoted prose, becomes one candidate. Not part of the default
// set.
type RawPrimitive struct{}

func (RawPrimitive) Name() string  { return "raw_primitive" }
func (RawPrimitive) Priority() int { return 28 }

func (RawPrimitive) Run(text string) []*FlexValue {
	t := strings.TrimSpace(text)
	if t == "" || strings.ContainsAny(t, "{}[]") {
		return nil
	}
	src := Source{Kind: SourceRawPrimitive}
	if v, err := decodeStrict(t); err == nil {
		if v.Kind != KindArray && v.Kind != KindObject {
			setSourceDeep(v, src)
			return []*FlexValue{v}
		}
		return nil
	}
	if strings.Contains(t, "\n") {
		return nil
	}
	return []*FlexValue{NewString(t, src)}
}
