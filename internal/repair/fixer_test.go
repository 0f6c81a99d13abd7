package repair

import (
	"testing"

	json "github.com/goccy/go-json"
)

func fixValid(t *testing.T, in string) (string, int) {
	t.Helper()
	out, n := Fix(in)
	if !json.Valid([]byte(out)) {
		t.Fatalf("fixed output is not valid JSON: %q", out)
	}
	return out, n
}

func TestFix_CleanInputUntouched(t *testing.T) {
	in := `{"name": "Alice", "age": 30}`
	out, n := Fix(in)
	if n != 0 || out != in {
		t.Fatalf("clean input changed: n=%d out=%q", n, out)
	}
}

func TestFix_UnquotedKeysAndTrailingComma(t *testing.T) {
	out, n := fixValid(t, `{ name: "Alice", age: "30", }`)
	if n != 3 {
		t.Fatalf("expected 3 fixes (two keys, one comma), got %d: %q", n, out)
	}
}

func TestFix_SingleQuotes(t *testing.T) {
	out, n := fixValid(t, `{'name': 'Alice'}`)
	if n != 2 { // key string and value string each requoted
		t.Fatalf("expected 2 fixes, got %d: %q", n, out)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil || m["name"] != "Alice" {
		t.Fatalf("unexpected result: %q (%v)", out, err)
	}
}

func TestFix_ApostrophePreserved(t *testing.T) {
	in := `{"text": "It's working"}`
	out, n := Fix(in)
	if n != 0 || out != in {
		t.Fatalf("apostrophe mangled: n=%d out=%q", n, out)
	}
}

func TestFix_Backticks(t *testing.T) {
	out, _ := fixValid(t, "{\"msg\": `hello`}")
	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil || m["msg"] != "hello" {
		t.Fatalf("backtick string not requoted: %q", out)
	}
}

func TestFix_Comments(t *testing.T) {
	out, n := fixValid(t, "{\"a\": 1, /* note */ \"b\": 2 // tail\n}")
	if n != 2 {
		t.Fatalf("expected 2 comment fixes, got %d: %q", n, out)
	}
}

func TestFix_CommentMarkersInsideStrings(t *testing.T) {
	in := `{"url": "https://example.com/a"}`
	out, n := Fix(in)
	if n != 0 || out != in {
		t.Fatalf("string content treated as comment: %q", out)
	}
}

func TestFix_SmartQuotes(t *testing.T) {
	out, n := fixValid(t, `{“name”: “Alice”}`)
	if n != 4 {
		t.Fatalf("expected 4 smart-quote fixes, got %d: %q", n, out)
	}
}

func TestFix_DoubleEncoded(t *testing.T) {
	out, n := fixValid(t, `"{\"a\": 1}"`)
	if n != 1 || out != `{"a": 1}` {
		t.Fatalf("double-encoded string not unwrapped: n=%d %q", n, out)
	}
}

func TestFix_HexNumbers(t *testing.T) {
	out, n := fixValid(t, `{"n": 0xFF}`)
	if n != 1 {
		t.Fatalf("expected 1 hex fix, got %d", n)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil || m["n"] != float64(255) {
		t.Fatalf("hex not converted: %q", out)
	}
}

func TestFix_RawNewlineInString(t *testing.T) {
	out, n := fixValid(t, "{\"s\": \"line1\nline2\"}")
	if n != 1 {
		t.Fatalf("expected 1 newline fix, got %d: %q", n, out)
	}
}

func TestFix_FunctionValueElided(t *testing.T) {
	out, n := fixValid(t, `{"f": function(a) { return 1; }, "x": 2}`)
	if n != 1 {
		t.Fatalf("expected 1 function fix, got %d: %q", n, out)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["f"]; ok {
		t.Fatalf("function property survived: %q", out)
	}
	if m["x"] != float64(2) {
		t.Fatalf("sibling property lost: %q", out)
	}
}

func TestFix_MissingCommas(t *testing.T) {
	out, n := fixValid(t, `{"a": 1 "b": 2}`)
	if n != 1 {
		t.Fatalf("expected 1 missing-comma fix, got %d: %q", n, out)
	}
	out, n = fixValid(t, `[1 2 3]`)
	if n != 2 {
		t.Fatalf("expected 2 missing-comma fixes, got %d: %q", n, out)
	}
}

func TestFix_UnclosedBrackets(t *testing.T) {
	out, n := fixValid(t, `{"a": [1, 2`)
	if n != 2 {
		t.Fatalf("expected 2 closer fixes, got %d: %q", n, out)
	}
}

func TestFix_Idempotent(t *testing.T) {
	inputs := []string{
		`{ name: "Alice", age: "30", }`,
		`{'a': 'b'}`,
		`{"a": 1 "b": 2}`,
		`{"a": [1, 2`,
	}
	for _, in := range inputs {
		once, _ := Fix(in)
		twice, n := Fix(once)
		if n != 0 || twice != once {
			t.Fatalf("not idempotent for %q: %q vs %q (n=%d)", in, once, twice, n)
		}
	}
}
