package tryparse

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// decodeStrict parses text as one strict JSON document and builds the
// FlexValue tree from the token stream, preserving object member order and
// duplicate keys and keeping the Int/Float split exact via json.Number.
func decodeStrict(text string) (*FlexValue, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	v, err := buildValue(dec, tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing content after JSON value")
	}
	return v, nil
}

// decodeTopLevel parses a stream of concatenated top-level JSON values.
func decodeTopLevel(text string) ([]*FlexValue, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var out []*FlexValue
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		v, err := buildValue(dec, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func buildValue(dec *json.Decoder, tok json.Token) (*FlexValue, error) {
	src := Source{Kind: SourceDirect}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return buildObject(dec)
		case '[':
			return buildArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return NewString(t, src), nil
	case json.Number:
		return numberValue(t, src)
	case bool:
		return NewBool(t, src), nil
	case nil:
		return NewNull(src), nil
	}
	return nil, fmt.Errorf("unexpected token %T", tok)
}

func numberValue(n json.Number, src Source) (*FlexValue, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return NewInt(i, src), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, err
	}
	return NewFloat(f, src), nil
}

func buildObject(dec *json.Decoder) (*FlexValue, error) {
	var members []Member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not string", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		val, err := buildValue(dec, valTok)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return NewObject(members, Source{Kind: SourceDirect}), nil
}

func buildArray(dec *json.Decoder) (*FlexValue, error) {
	var items []*FlexValue
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		v, err := buildValue(dec, tok)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return NewArray(items, Source{Kind: SourceDirect}), nil
}

// setSourceDeep stamps a strategy's provenance across a freshly decoded
// subtree; strategies produce uniform confidence and source.
func setSourceDeep(v *FlexValue, src Source) {
	if v == nil {
		return
	}
	v.Source = src
	for _, it := range v.Items {
		setSourceDeep(it, src)
	}
	for _, m := range v.Members {
		setSourceDeep(m.Value, src)
	}
}
