package i18n

// Translator retrieves localized messages for issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			if e := data["expected"]; e != "" {
				return e + " が必要です"
			}
			return "型が不正です"
		case "missing":
			return "必須プロパティが不足しています"
		case "unexpected_key":
			return "スキーマで許可されていないキーです"
		case "forbidden":
			return "同期実行では中断するフックを使用できません"
		case "union_member":
			return "ユニオンのメンバーに一致しませんでした"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if e := data["expected"]; e != "" {
				return "expected " + e
			}
			return "invalid type"
		case "missing":
			return "is missing"
		case "unexpected_key":
			return "key not permitted by the schema"
		case "forbidden":
			return "suspended hook not permitted in a synchronous run"
		case "union_member":
			return "no union member matched"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
