package i18n

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Locator supplies the human readable text for a diagnostic code.
// params carries the structured diagnostic data (for example "value" and
// "bound").
type Locator interface {
	Message(lang language.Tag, code string, params map[string]any) string
}

// template is one localized message: a printf format per language and the
// params keys feeding its verbs, in order.
type template struct {
	args []string
	en   string
	ja   string
}

var templates = map[string]template{
	"too_small":           {args: []string{"value", "bound"}, en: "value %v is less than the minimum %v", ja: "値 %v は最小値 %v より小さいです"},
	"too_small.exclusive": {args: []string{"value", "bound"}, en: "value %v must be greater than %v", ja: "値 %v は %v より大きくなければなりません"},
	"too_big":             {args: []string{"value", "bound"}, en: "value %v is greater than the maximum %v", ja: "値 %v は最大値 %v より大きいです"},
	"too_big.exclusive":   {args: []string{"value", "bound"}, en: "value %v must be less than %v", ja: "値 %v は %v より小さくなければなりません"},
	"not_comparable":      {args: []string{"value", "bound"}, en: "value %v cannot be compared with %v", ja: "値 %v は %v と比較できません"},
	"length":              {args: []string{"length", "bound"}, en: "length %v differs from the required length %v", ja: "長さ %v は必要な長さ %v と異なります"},
	"too_short":           {args: []string{"length", "bound"}, en: "length %v is less than the minimum length %v", ja: "長さ %v は最小長 %v より短いです"},
	"too_long":            {args: []string{"length", "bound"}, en: "length %v is greater than the maximum length %v", ja: "長さ %v は最大長 %v より長いです"},
	"pattern":             {args: []string{"value", "patterns"}, en: "value %q does not match %v", ja: "値 %q はパターン %v に一致しません"},
	"invalid_enum":        {args: []string{"value", "literals"}, en: "value %q is not one of %v", ja: "値 %q は %v のいずれでもありません"},
	"invalid_item_type":   {args: []string{"value", "expected"}, en: "item %v is not a %v value", ja: "要素 %v は %v の値ではありません"},
	"union_no_match":      {args: []string{"value", "members"}, en: "value %v matches none of the member types %v", ja: "値 %v はメンバー型 %v のいずれにも一致しません"},
	"unknown_type":        {args: []string{"type"}, en: "no validator registered for %v", ja: "%v の検証器が登録されていません"},
	"structural":          {args: []string{"type"}, en: "value violates the structural constraints of %v", ja: "値は %v の構造制約に違反しています"},
}

var supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(supported)

// dictLocator is the built-in catalog-backed Locator.
type dictLocator struct {
	cat catalog.Catalog
}

func newDictLocator() dictLocator {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	if err := fillCatalog(b, templates); err != nil {
		panic(err)
	}
	return dictLocator{cat: b}
}

func fillCatalog(b *catalog.Builder, dict map[string]template) error {
	for key, t := range dict {
		if err := b.SetString(language.English, key, t.en); err != nil {
			return fmt.Errorf("i18n: %s (en): %w", key, err)
		}
		if err := b.SetString(language.Japanese, key, t.ja); err != nil {
			return fmt.Errorf("i18n: %s (ja): %w", key, err)
		}
	}
	return nil
}

func (l dictLocator) Message(lang language.Tag, code string, params map[string]any) string {
	key := code
	if inc, ok := params["inclusive"].(bool); ok && !inc {
		if _, ok := templates[code+".exclusive"]; ok {
			key = code + ".exclusive"
		}
	}
	t, ok := templates[key]
	if !ok {
		return code
	}
	args := make([]any, len(t.args))
	for i, name := range t.args {
		args[i] = params[name]
	}
	_, idx, _ := matcher.Match(lang)
	p := message.NewPrinter(supported[idx], message.Catalog(l.cat))
	return p.Sprintf(key, args...)
}

var (
	builtin         = newDictLocator()
	currentLocator  atomic.Pointer[Locator]
	defaultLanguage atomic.Pointer[language.Tag]
)

func init() {
	SetLocator(nil)
	SetLanguage("en")
}

// SetLanguage switches the default language used when the context carries
// none. Unparseable names fall back to English.
func SetLanguage(lang string) {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	defaultLanguage.Store(&tag)
}

// SetLocator replaces the Locator implementation (not limited to the
// built-in catalog). nil restores the built-in one.
func SetLocator(l Locator) {
	if l == nil {
		l = builtin
	}
	currentLocator.Store(&l)
}

type ctxKey struct{}

// WithLanguage returns a child context that renders messages in lang.
func WithLanguage(ctx context.Context, lang language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LanguageFrom returns the language carried by ctx, or the default language.
func LanguageFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
			return tag
		}
	}
	return *defaultLanguage.Load()
}

// Message renders code in the language carried by ctx.
func Message(ctx context.Context, code string, params map[string]any) string {
	return (*currentLocator.Load()).Message(LanguageFrom(ctx), code, params)
}

// T renders code in the default language.
func T(code string, params map[string]any) string {
	return Message(context.Background(), code, params)
}
