package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":           "invalid type",
		"required":               "required property missing",
		"unknown_key":            "unknown key",
		"duplicate_key":          "duplicate key",
		"variant_unresolved":     "no variant matched",
		"discriminator_mismatch": "discriminator does not match the declared entity",
		"dangling_reference":     "reference has no matching object",
		"duplicate_id":           "object identifier already in use",
		"duplicate_symbol_name":  "symbol name is shadowed by another symbol",
		"asset_unreadable":       "asset could not be read",
		"parse_error":            "parse error",
		"truncated":              "truncated",
		"out_of_range":           "number out of range",
	},
	"ja": {
		"invalid_type":           "型が不正です",
		"required":               "必須プロパティが不足しています",
		"unknown_key":            "未知のキーです",
		"duplicate_key":          "キーが重複しています",
		"variant_unresolved":     "一致するバリアントがありません",
		"discriminator_mismatch": "判別子が宣言されたエンティティと一致しません",
		"dangling_reference":     "参照先のオブジェクトが存在しません",
		"duplicate_id":           "オブジェクトIDが重複しています",
		"duplicate_symbol_name":  "シンボル名が他のシンボルと重複しています",
		"asset_unreadable":       "アセットを読み込めません",
		"parse_error":            "解析エラー",
		"truncated":              "打ち切られました",
		"out_of_range":           "数値が範囲外です",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	if m, ok := dictionaries[t.lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
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
