package jsonschema_test

import (
	"strings"
	"testing"

	"github.com/microagents/tryparse/jsonschema"
	"github.com/microagents/tryparse/schema"
)

func TestFromSchema_Struct(t *testing.T) {
	s := schema.Struct(
		schema.F("name", schema.String()),
		schema.F("age", schema.I64()),
		schema.F("timeout_ms", schema.Option(schema.I64())),
		schema.F("retries", schema.I64()).WithDefault(int64(3)),
	)
	js, err := jsonschema.FromSchema(s)
	if err != nil {
		t.Fatalf("from schema: %v", err)
	}
	if js.Type != "object" || len(js.Properties) != 4 {
		t.Fatalf("unexpected document: %+v", js)
	}
	if len(js.Required) != 2 || js.Required[0] != "name" || js.Required[1] != "age" {
		t.Fatalf("required = %v", js.Required)
	}
	if !js.Properties["timeout_ms"].Nullable {
		t.Fatalf("option field not nullable")
	}
	if js.Properties["retries"].Default != int64(3) {
		t.Fatalf("default lost")
	}
}

func TestFromSchema_EnumAndSeq(t *testing.T) {
	e := schema.Enum(schema.Unit("Enabled"), schema.Unit("Disabled"))
	js, err := jsonschema.FromSchema(e)
	if err != nil || js.Type != "string" || len(js.Enum) != 2 {
		t.Fatalf("unit enum: %+v (%v)", js, err)
	}
	sq, err := jsonschema.FromSchema(schema.Seq(schema.F64()))
	if err != nil || sq.Type != "array" || sq.Items.Type != "number" {
		t.Fatalf("seq: %+v (%v)", sq, err)
	}
}

func TestFromSchema_UnionRendersOneOf(t *testing.T) {
	u := schema.Union(
		schema.Newtype("Number", schema.I64()),
		schema.Unit("Nothing"),
	)
	js, err := jsonschema.FromSchema(u)
	if err != nil || len(js.OneOf) != 2 {
		t.Fatalf("union: %+v (%v)", js, err)
	}
	if js.OneOf[0].Properties["Number"].Type != "integer" {
		t.Fatalf("variant wrapper: %+v", js.OneOf[0])
	}
}

func TestSchemaJSON(t *testing.T) {
	js, err := jsonschema.FromSchema(schema.Map(schema.String()))
	if err != nil {
		t.Fatalf("from schema: %v", err)
	}
	b, err := js.JSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, `"additionalProperties"`) || !strings.Contains(out, `"object"`) {
		t.Fatalf("rendered document: %s", out)
	}
}
