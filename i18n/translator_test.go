package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	assert.Equal(t, "unknown key", T("unknown_key", nil))

	SetLanguage("ja")
	defer SetLanguage("en")
	assert.Equal(t, "未知のキーです", T("unknown_key", nil))
	assert.NotEqual(t, "dangling_reference", T("dangling_reference", nil))
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, "no_such_code", T("no_such_code", nil))
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	assert.Equal(t, "X:required", T("required", nil))
}
