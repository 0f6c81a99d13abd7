package tryparse

import (
	"strings"
	"testing"
)

func TestDirectJSON_CleanObject(t *testing.T) {
	cs := DirectJSON{}.Run(`{"name": "Alice", "age": 30, "pi": 3.5}`)
	if len(cs) != 1 {
		t.Fatalf("expected one candidate, got %d", len(cs))
	}
	v := cs[0]
	if v.Kind != KindObject || len(v.Members) != 3 {
		t.Fatalf("unexpected shape: %v", v.Kind)
	}
	if v.Members[0].Key != "name" || v.Members[1].Key != "age" {
		t.Fatalf("member order not preserved")
	}
	if v.Members[1].Value.Kind != KindInt || v.Members[1].Value.Int != 30 {
		t.Fatalf("integer not preserved as Int")
	}
	if v.Members[2].Value.Kind != KindFloat {
		t.Fatalf("float not preserved as Float")
	}
	if Score(v) != 0 {
		t.Fatalf("clean direct parse should score 0, got %d", Score(v))
	}
}

func TestDirectJSON_DuplicateKeysKept(t *testing.T) {
	cs := DirectJSON{}.Run(`{"a": 1, "a": 2}`)
	if len(cs) != 1 || len(cs[0].Members) != 2 {
		t.Fatalf("duplicate keys collapsed: %+v", cs)
	}
}

func TestDirectJSON_RejectsGarbage(t *testing.T) {
	if cs := (DirectJSON{}).Run(`hello {"a": 1}`); cs != nil {
		t.Fatalf("expected no candidates, got %d", len(cs))
	}
	if cs := (DirectJSON{}).Run(`{"a": 1} trailing`); cs != nil {
		t.Fatalf("trailing content accepted")
	}
}

func TestMarkdown_TaggedBlock(t *testing.T) {
	input := "Here's your data:\n```json\n{\"name\": \"Alice\"}\n```\n"
	cs := Markdown{}.Run(input)
	if len(cs) != 1 {
		t.Fatalf("expected one candidate, got %d", len(cs))
	}
	if cs[0].Source.Kind != SourceMarkdown || cs[0].Source.Lang != "json" {
		t.Fatalf("unexpected source: %+v", cs[0].Source)
	}
}

func TestMarkdown_FixerFallback(t *testing.T) {
	input := "```json\n{ name: \"Alice\", age: \"30\", }\n```\n"
	cs := Markdown{}.Run(input)
	if len(cs) != 1 {
		t.Fatalf("expected one candidate, got %d", len(cs))
	}
	src := cs[0].Source
	if src.Kind != SourceMarkdown || src.Fixes != 3 {
		t.Fatalf("expected markdown source with 3 fixes, got %+v", src)
	}
	if Score(cs[0]) != 25 { // 10 + 5*3
		t.Fatalf("score = %d", Score(cs[0]))
	}
}

func TestMarkdown_YAMLFallback(t *testing.T) {
	input := "```yaml\nname: Alice\nage: 30\n```\n"
	cs := Markdown{}.Run(input)
	if len(cs) != 1 || cs[0].Kind != KindObject {
		t.Fatalf("yaml block not parsed: %+v", cs)
	}
	if cs[0].Source.Kind != SourceMarkdown || cs[0].Source.Lang != "yaml" {
		t.Fatalf("unexpected source: %+v", cs[0].Source)
	}
}

func TestMarkdown_RankingPrefersJSONTag(t *testing.T) {
	input := "```\n{\"untagged\": true}\n```\nand later:\n```json\n{\"tagged\": true}\n```\n"
	cs := Markdown{}.Run(input)
	if len(cs) != 2 {
		t.Fatalf("expected two candidates, got %d", len(cs))
	}
	if cs[0].Members[0].Key != "tagged" {
		t.Fatalf("json-tagged block should rank first")
	}
}

func TestMarkdown_TildeFence(t *testing.T) {
	cs := Markdown{}.Run("~~~json\n{\"a\": 1}\n~~~\n")
	if len(cs) != 1 {
		t.Fatalf("tilde fence not recognised")
	}
}

func TestYAML_Document(t *testing.T) {
	cs := YAML{}.Run("name: Alice\nage: 30\nscore: 1.5\nok: true\nnothing: null\n")
	if len(cs) != 1 {
		t.Fatalf("expected one candidate, got %d", len(cs))
	}
	v := cs[0]
	if v.Kind != KindObject || len(v.Members) != 5 {
		t.Fatalf("unexpected shape")
	}
	kinds := []Kind{KindString, KindInt, KindFloat, KindBool, KindNull}
	for i, k := range kinds {
		if v.Members[i].Value.Kind != k {
			t.Fatalf("member %d kind = %v, want %v", i, v.Members[i].Value.Kind, k)
		}
	}
	if v.Source.Kind != SourceYAML {
		t.Fatalf("unexpected source %v", v.Source.Kind)
	}
}

func TestYAML_GateRejectsJSONAndProse(t *testing.T) {
	if cs := (YAML{}).Run(`{"a": 1}`); cs != nil {
		t.Fatalf("JSON input should be left to JSON strategies")
	}
	if cs := (YAML{}).Run("just a sentence"); cs != nil {
		t.Fatalf("plain prose accepted as YAML")
	}
}

func TestYAML_NestedSequence(t *testing.T) {
	cs := YAML{}.Run("items:\n  - 1\n  - 2\nname: x\n")
	if len(cs) != 1 {
		t.Fatalf("expected one candidate")
	}
	items := cs[0].Members[0].Value
	if items.Kind != KindArray || len(items.Items) != 2 || items.Items[0].Int != 1 {
		t.Fatalf("sequence not converted")
	}
}

func TestJSONFixer_EmitsFixedCandidate(t *testing.T) {
	cs := JSONFixer{}.Run(`{name: 'Alice', age: 30,}`)
	if len(cs) != 1 {
		t.Fatalf("expected one candidate, got %d", len(cs))
	}
	src := cs[0].Source
	if src.Kind != SourceFixed || src.Fixes != 4 { // requoted string, two keys, trailing comma
		t.Fatalf("unexpected source: %+v", src)
	}
}

func TestJSONFixer_SilentOnCleanInput(t *testing.T) {
	if cs := (JSONFixer{}).Run(`{"a": 1}`); cs != nil {
		t.Fatalf("fixer should defer clean input to DirectJSON")
	}
}

func TestHeuristic_BalancedRegion(t *testing.T) {
	cs := Heuristic{}.Run(`Sure! The data is {"name": "Alice", "age": 30} hope this helps!`)
	if len(cs) != 1 {
		t.Fatalf("expected one candidate, got %d", len(cs))
	}
	if cs[0].Source.Kind != SourceHeuristic || cs[0].Kind != KindObject {
		t.Fatalf("unexpected candidate: %+v", cs[0].Source)
	}
}

func TestHeuristic_ProsePairs(t *testing.T) {
	cs := Heuristic{}.Run("Name: Alice\nAge: 30\n")
	if len(cs) != 1 {
		t.Fatalf("expected one candidate, got %d", len(cs))
	}
	v := cs[0]
	if v.Members[0].Key != "Name" || v.Members[0].Value.Str != "Alice" {
		t.Fatalf("prose pair lost: %+v", v.Members)
	}
	if v.Members[1].Value.Kind != KindInt || v.Members[1].Value.Int != 30 {
		t.Fatalf("prose number not typed")
	}
}

func TestHeuristic_NothingFound(t *testing.T) {
	if cs := (Heuristic{}).Run("nothing structured here"); cs != nil {
		t.Fatalf("expected no candidates")
	}
}

func TestMultiObject_SplitsAndCombines(t *testing.T) {
	cs := MultiObject{}.Run(`{"a": 1} {"b": 2}`)
	if len(cs) != 3 {
		t.Fatalf("expected array + two objects, got %d", len(cs))
	}
	if cs[0].Source.Kind != SourceMultiObjectArray || cs[0].Kind != KindArray {
		t.Fatalf("first candidate should be the combined array")
	}
	if cs[1].Source.Kind != SourceMultiObject || cs[1].Source.Index != 0 {
		t.Fatalf("unexpected provenance: %+v", cs[1].Source)
	}
	if cs[2].Source.Index != 1 {
		t.Fatalf("document order lost")
	}
}

func TestMultiObject_SingleObjectDefersToDirect(t *testing.T) {
	if cs := (MultiObject{}).Run(`{"a": 1}`); cs != nil {
		t.Fatalf("single object should produce nothing")
	}
}

func TestRawPrimitive_Scalars(t *testing.T) {
	cs := RawPrimitive{}.Run("42")
	if len(cs) != 1 || cs[0].Kind != KindInt || cs[0].Int != 42 {
		t.Fatalf("bare integer not lifted: %+v", cs)
	}
	cs = RawPrimitive{}.Run("hello world")
	if len(cs) != 1 || cs[0].Kind != KindString || cs[0].Str != "hello world" {
		t.Fatalf("bare prose not lifted: %+v", cs)
	}
	if cs := (RawPrimitive{}).Run("line one\nline two"); cs != nil {
		t.Fatalf("multi-line prose accepted")
	}
	if cs := (RawPrimitive{}).Run(`{"a": 1}`); cs != nil {
		t.Fatalf("structured input accepted")
	}
}

func TestParser_CandidatesRankedAndDeterministic(t *testing.T) {
	input := "Here you go:\n```json\n{\"name\": \"Alice\"}\n```\n"
	p := NewParser()
	first, err := p.Candidates(input)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	second, err := p.Candidates(input)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("candidate pool size varies between runs")
	}
	for i := range first {
		if Score(first[i]) != Score(second[i]) || first[i].Source.Kind != second[i].Source.Kind {
			t.Fatalf("candidate %d differs between runs", i)
		}
	}
	for i := 1; i < len(first); i++ {
		if Score(first[i-1]) > Score(first[i]) {
			t.Fatalf("pool not ranked ascending")
		}
	}
}

func TestParser_DepthCapSurfacesOverDeep(t *testing.T) {
	input := strings.Repeat("{", 80)
	_, err := NewParser().Candidates(input)
	iss, ok := AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != CodeOverDeepInput {
		t.Fatalf("expected %s, got %v", CodeOverDeepInput, err)
	}
}
