package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

func TestMessage_DefaultAndJapanese(t *testing.T) {
	params := map[string]any{"value": "60", "bound": "59", "inclusive": true}

	// default is en
	msg := T("too_big", params)
	assert.Equal(t, "value 60 is greater than the maximum 59", msg)

	ctx := WithLanguage(context.Background(), language.Japanese)
	assert.Equal(t, "値 60 は最大値 59 より大きいです", Message(ctx, "too_big", params))

	SetLanguage("ja")
	defer SetLanguage("en")
	assert.Equal(t, "値 60 は最大値 59 より大きいです", T("too_big", params))
}

func TestMessage_ExclusiveVariant(t *testing.T) {
	msg := T("too_big", map[string]any{"value": "60.00", "bound": "60.00", "inclusive": false})
	assert.Equal(t, "value 60.00 must be less than 60.00", msg)
}

func TestMessage_UnknownCodeAndLanguage(t *testing.T) {
	assert.Equal(t, "no_such_code", T("no_such_code", nil))

	ctx := WithLanguage(context.Background(), language.German)
	assert.Equal(t, "length 3 is greater than the maximum length 2",
		Message(ctx, "too_long", map[string]any{"length": 3, "bound": 2}))
}

type upperLocator struct{}

func (upperLocator) Message(_ language.Tag, code string, _ map[string]any) string { return "X:" + code }

func TestSetLocator(t *testing.T) {
	SetLocator(upperLocator{})
	defer SetLocator(nil)
	assert.Equal(t, "X:pattern", T("pattern", nil))
}

func TestFillCatalog_ReportsBrokenTemplates(t *testing.T) {
	assert.NoError(t, fillCatalog(catalog.NewBuilder(), templates))
	assert.NotPanics(t, func() { newDictLocator() })

	broken := map[string]template{
		"too_big": {args: []string{"value"}, en: "value %v is too big", ja: "値 ${value は大きすぎます"},
	}
	err := fillCatalog(catalog.NewBuilder(), broken)
	assert.ErrorContains(t, err, "i18n: too_big (ja)")
}
