package i18n

import (
	"strings"
	"sync"
)

// Message keys understood by the built-in dictionary.
const (
	InvalidCast      = "invalid_cast"
	InvalidCastKey   = "invalid_cast_key"
	InvalidCastIndex = "invalid_cast_index"
	InvalidInstance  = "invalid_instance"
	MissingKey       = "missing_key"
	UnknownKey       = "unknown_key"
	NotASequence     = "not_a_sequence"
	NotAType         = "not_a_type"
	EmptyUnion       = "empty_union"
	InvalidEnum      = "invalid_enum"
	DuplicateField   = "duplicate_field"
	BadDescriptor    = "bad_descriptor"
	NotImplemented   = "not_implemented"
	UnknownField     = "unknown_field"
)

// Translator retrieves localized messages for message keys.
// data provides optional metadata to embed in the message (for example,
// "value" or "key"); placeholders are written as {name}.
type Translator interface {
	Message(key string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		InvalidCast:      "Value {value} cannot be cast to {type}.",
		InvalidCastKey:   "The value at key '{key}' cannot be cast to {type}.",
		InvalidCastIndex: "The value at index {index} cannot be cast to {type}.",
		InvalidInstance:  "Value {value} must be an instance of {type}.",
		MissingKey:       "Missing key '{key}' in the shape.",
		UnknownKey:       "The key '{key}' is not defined in the shape.",
		NotASequence:     "Values {value} must be an array.",
		NotAType:         "The type {value} must be an instance of Type.",
		EmptyUnion:       "A union needs at least one member type.",
		InvalidEnum:      "Invalid enum value '{value}': {reason}.",
		DuplicateField:   "The key '{key}' is declared more than once.",
		BadDescriptor:    "Cannot convert '{descriptor}' to Type.",
		NotImplemented:   "Method {type}.{value} not implemented.",
		UnknownField:     "The field '{key}' is not declared.",
	},
	"ja": {
		InvalidCast:      "値 {value} は {type} に変換できません",
		InvalidCastKey:   "キー '{key}' の値は {type} に変換できません",
		InvalidCastIndex: "インデックス {index} の値は {type} に変換できません",
		InvalidInstance:  "値 {value} は {type} のインスタンスである必要があります",
		MissingKey:       "キー '{key}' がありません",
		UnknownKey:       "キー '{key}' は定義されていません",
		NotASequence:     "値 {value} は配列である必要があります",
		NotAType:         "{value} は型ではありません",
		EmptyUnion:       "ユニオンには少なくとも1つの型が必要です",
		InvalidEnum:      "列挙値 '{value}' が不正です: {reason}",
		DuplicateField:   "キー '{key}' が重複しています",
		BadDescriptor:    "'{descriptor}' を型に変換できません",
		NotImplemented:   "{type}.{value} は実装されていません",
		UnknownField:     "フィールド '{key}' は宣言されていません",
	},
}

func (t dictTranslator) Message(key string, data map[string]string) string {
	dict, ok := dictionaries[t.lang]
	if !ok {
		dict = dictionaries["en"]
	}
	tmpl, ok := dict[key]
	if !ok {
		return key
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given key using the current Translator.
func T(key string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(key, data)
}
