package schema_test

import (
	"reflect"
	"testing"

	"github.com/microagents/tryparse/schema"
)

func TestBuilders(t *testing.T) {
	s := schema.Struct(
		schema.F("name", schema.String()),
		schema.F("age", schema.I64()).Optional(),
		schema.F("retries", schema.I64()).WithDefault(int64(3)),
	)
	if s.Kind != schema.KindStruct || len(s.Fields) != 3 {
		t.Fatalf("unexpected struct: %+v", s)
	}
	if !s.Fields[0].Required || s.Fields[1].Required {
		t.Fatalf("requiredness lost")
	}
	if s.Fields[2].Default != int64(3) {
		t.Fatalf("default lost")
	}
	if s.SingleField {
		t.Fatalf("single field set unexpectedly")
	}
	if !s.AsSingleField().SingleField {
		t.Fatalf("AsSingleField did not mark the struct")
	}
}

func TestTypeName(t *testing.T) {
	cases := []struct {
		s    *schema.Schema
		want string
	}{
		{schema.I64(), "i64"},
		{schema.Option(schema.String()), "option<string>"},
		{schema.Seq(schema.Bool()), "seq<bool>"},
		{schema.Map(schema.F64()), "map<string,f64>"},
		{schema.Enum(schema.Unit("A")), "enum"},
		{schema.Union(schema.Unit("A")), "union"},
	}
	for _, c := range cases {
		if got := c.s.TypeName(); got != c.want {
			t.Fatalf("TypeName = %q, want %q", got, c.want)
		}
	}
}

func TestVariantBuilders(t *testing.T) {
	u := schema.Union(
		schema.Unit("None"),
		schema.Newtype("One", schema.I64()),
		schema.Tuple("Pair", schema.I64(), schema.String()),
		schema.StructVariant("Obj", schema.F("x", schema.I64())),
	)
	if !u.Union || len(u.Variants) != 4 {
		t.Fatalf("unexpected union: %+v", u)
	}
	if u.Variants[2].Kind != schema.VariantTuple || len(u.Variants[2].Inners) != 2 {
		t.Fatalf("tuple variant lost its shape")
	}
}

func TestInfer(t *testing.T) {
	type Inner struct {
		X int `json:"x"`
	}
	type Config struct {
		APIKey     string         `json:"api_key"`
		MaxRetries int            `json:"max_retries,omitempty"`
		TimeoutMS  *int64         `json:"timeout_ms"`
		Tags       []string       `json:"tags"`
		Extra      map[string]int `json:"extra"`
		Nested     Inner          `json:"nested"`
		ignored    bool
		Skipped    string `json:"-"`
	}
	s, err := schema.InferOf(Config{})
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	want := []string{"api_key", "max_retries", "timeout_ms", "tags", "extra", "nested"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("field names = %v, want %v", names, want)
	}
	if s.Fields[0].Schema.Kind != schema.KindString || !s.Fields[0].Required {
		t.Fatalf("api_key misinferred")
	}
	if s.Fields[1].Required {
		t.Fatalf("omitempty field should be optional")
	}
	if s.Fields[2].Schema.Kind != schema.KindOption || s.Fields[2].Required {
		t.Fatalf("pointer field should infer as optional Option")
	}
	if s.Fields[3].Schema.Kind != schema.KindSeq || s.Fields[3].Schema.Elem.Kind != schema.KindString {
		t.Fatalf("slice misinferred")
	}
	if s.Fields[4].Schema.Kind != schema.KindMap {
		t.Fatalf("map misinferred")
	}
	if s.Fields[5].Schema.Kind != schema.KindStruct {
		t.Fatalf("nested struct misinferred")
	}
}

func TestInfer_Recursive(t *testing.T) {
	type Node struct {
		Next *Node `json:"next"`
	}
	if _, err := schema.InferOf(Node{}); err == nil {
		t.Fatalf("recursive type should be rejected")
	}
}
