package tryparse

import "testing"

func TestFlexValue_ConfidenceDecay(t *testing.T) {
	v := NewInt(42, Source{Kind: SourceDirect})
	if v.Confidence() != 1.0 {
		t.Fatalf("fresh value confidence = %v", v.Confidence())
	}
	v.AddTransformation(Transformation{Kind: TransStringToNumber, Path: ""})
	if got := v.Confidence(); got != 0.95 {
		t.Fatalf("confidence after one transformation = %v", got)
	}
	v.AddTransformation(Transformation{Kind: TransSingleToArray, Path: ""})
	if got := v.Confidence(); got < 0.9020 || got > 0.9030 {
		t.Fatalf("confidence after two transformations = %v", got)
	}
}

func TestFlexValue_CloneIsIndependent(t *testing.T) {
	orig := NewObject([]Member{
		{Key: "a", Value: NewInt(1, Source{Kind: SourceDirect})},
	}, Source{Kind: SourceDirect})
	cl := orig.Clone()
	cl.AddTransformation(Transformation{Kind: TransStringToNumber, Path: "/a"})
	cl.Members[0].Value.Int = 99

	if len(orig.Transformations()) != 0 {
		t.Fatalf("clone transformation leaked into original")
	}
	if orig.Members[0].Value.Int != 1 {
		t.Fatalf("clone mutation leaked into original")
	}
}

func TestFlexValue_At(t *testing.T) {
	v := NewObject([]Member{
		{Key: "items", Value: NewArray([]*FlexValue{
			NewString("x", Source{Kind: SourceDirect}),
		}, Source{Kind: SourceDirect})},
		{Key: "a/b", Value: NewBool(true, Source{Kind: SourceDirect})},
	}, Source{Kind: SourceDirect})

	if got := v.At("/items/0"); got == nil || got.Str != "x" {
		t.Fatalf("pointer /items/0 not resolved")
	}
	if got := v.At("/a~1b"); got == nil || got.Kind != KindBool {
		t.Fatalf("escaped pointer not resolved")
	}
	if v.At("/missing") != nil || v.At("/items/9") != nil {
		t.Fatalf("bogus pointer resolved")
	}
	if v.At("") != v {
		t.Fatalf("empty pointer should resolve to the root")
	}
}

func TestFlexValue_TransformationPathsResolve(t *testing.T) {
	// every transformation recorded during a successful coercion must have a
	// path that resolves in the pre-coercion candidate
	input := `{"count": "42", "tags": "tag"}`
	cands, err := NewParser().Candidates(input)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	pre := cands[0].Clone()
	_, updated, err := coerceCandidate(scenarioSchema(), cands[0], true)
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	for _, tr := range updated.Transformations() {
		switch tr.Kind {
		case TransDefaultInserted, TransKeyImplied:
			continue // these name synthesized sites
		}
		if pre.At(tr.Path) == nil {
			t.Fatalf("transformation %s path %q does not resolve", tr.Kind, tr.Path)
		}
	}
}

func TestFlexValue_Explanation(t *testing.T) {
	v := NewInt(1, Source{Kind: SourceFixed, Fixes: 2})
	v.AddTransformation(Transformation{Kind: TransStringToNumber, Path: ""})
	ex := v.Explanation()
	if ex["score"] != 32 { // 20 + 5*2 + 2
		t.Fatalf("explanation score = %v", ex["score"])
	}
	if ex["transformation_count"] != 1 {
		t.Fatalf("transformation_count = %v", ex["transformation_count"])
	}
	src := ex["source"].(map[string]any)
	if src["type"] != "json_fixer" || src["fixes"] != 2 {
		t.Fatalf("source = %v", src)
	}
}
