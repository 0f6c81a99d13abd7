package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "no_input":
			return "入力が空です"
		case "no_candidates":
			return "候補が見つかりませんでした"
		case "coercion_failed":
			return "型変換に失敗しました"
		case "missing_field":
			return "必須プロパティが不足しています"
		case "invalid_enum":
			return "列挙値が不正です"
		case "ambiguous_union":
			return "ユニオンが曖昧です"
		case "over_deep_input":
			return "ネストが深すぎるため打ち切られました"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "no_input":
			return "input is empty"
		case "no_candidates":
			return "no candidates produced by any strategy"
		case "coercion_failed":
			return "value does not fit target schema"
		case "missing_field":
			return "required field missing"
		case "invalid_enum":
			return "no matching enum variant"
		case "ambiguous_union":
			return "union variants scored identically"
		case "over_deep_input":
			return "input truncated at nesting cap"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

// Default returns the English translator.
func Default() Translator { return dictTranslator{lang: "en"} }

// ForLang returns a translator for the given language tag; unknown tags fall
// back to English.
func ForLang(lang string) Translator { return dictTranslator{lang: lang} }

// T is a convenience for the default translator.
func T(code string, data map[string]string) string {
	return Default().Message(code, data)
}
