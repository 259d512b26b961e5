package facet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/facet"
)

func TestPattern_OtherWordChars(t *testing.T) {
	ctx := context.Background()
	groups := facet.MustGroups([]string{`other:\w{2,}`})
	tag := xsdfacet.TypeTag("gml:NullEnumeration_._member_._1")

	require.True(t, facet.Pattern(ctx, tag, xsdfacet.String("other:ab"), groups, nil))
	require.True(t, facet.Pattern(ctx, tag, xsdfacet.String("other:reason"), groups, nil))

	var ds xsdfacet.Diagnostics
	require.False(t, facet.Pattern(ctx, tag, xsdfacet.String("other:a"), groups, &ds))
	require.Len(t, ds, 1)
	require.Equal(t, xsdfacet.CodePattern, ds[0].Code)
	require.Equal(t, []string{`other:\w{2,}`}, ds[0].Params["patterns"])
}

func TestPattern_MatchesWholeValue(t *testing.T) {
	groups := facet.MustGroups([]string{`other:\w{2,}`})
	ok, _ := groups.Match("xother:ab")
	require.False(t, ok)
	ok, _ = groups.Match("other:ab cd")
	require.False(t, ok)
}

func TestGroups_OrAcrossAndWithin(t *testing.T) {
	groups := facet.MustGroups(
		[]string{`[a-z]+`, `.{3}`},
		[]string{`\d+`},
	)
	for s, want := range map[string]bool{
		"abc":  true,
		"ab":   false,
		"abcd": false,
		"1234": true,
		"ab1":  false,
	} {
		ok, failed := groups.Match(s)
		require.Equal(t, want, ok, s)
		if !ok {
			require.NotEmpty(t, failed, s)
		}
	}
}

func TestGroups_EmptyAcceptsAll(t *testing.T) {
	ok, failed := facet.Groups(nil).Match("anything")
	require.True(t, ok)
	require.Nil(t, failed)
}

func TestGroups_NCName(t *testing.T) {
	groups := facet.MustGroups([]string{`\i\c*`, `[^:]*`})
	for s, want := range map[string]bool{
		"gml":    true,
		"_id-1":  true,
		"été":    true,
		"a:b":    false,
		"1abc":   false,
		"-x":     false,
		"":       false,
		"ab cd":  false,
		"x.y·z":  true,
	} {
		ok, _ := groups.Match(s)
		require.Equal(t, want, ok, s)
	}
}

func TestTranslatePattern(t *testing.T) {
	cases := map[string]string{
		`abc`:        `^(?:abc)$`,
		`\d{2}`:      `^(?:\p{Nd}{2})$`,
		`a.b`:        `^(?:a[^\n\r]b)$`,
		`^a$`:        `^(?:\^a\$)$`,
		`[\d\s]`:     `^(?:[\p{Nd} \t\n\r])$`,
		`\p{Lu}+`:    `^(?:\p{Lu}+)$`,
		`\.\-\\`:     `^(?:\.\-\\)$`,
		`(ab)|(cd)`:  `^(?:(ab)|(cd))$`,
		`[^a-c]`:     `^(?:[^a-c])$`,
		`\W`:         `^(?:[\p{P}\p{Z}\p{C}])$`,
	}
	for in, want := range cases {
		got, err := facet.TranslatePattern(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestTranslatePattern_Unsupported(t *testing.T) {
	for _, in := range []string{
		`[a-z-[aeiou]]`,
		`\p{IsBasicLatin}`,
		`[\I]`,
		`[abc`,
		`abc\`,
		`(?i)abc`,
		`\q`,
	} {
		_, err := facet.TranslatePattern(in)
		require.Error(t, err, in)
		require.True(t, errors.Is(err, facet.ErrPatternSyntax), in)
	}
}

func TestCompileRegex_SharesCompiledPrograms(t *testing.T) {
	a, err := facet.CompileRegex(`[A-Z]{3}`)
	require.NoError(t, err)
	b, err := facet.CompileRegex(`[A-Z]{3}`)
	require.NoError(t, err)
	require.Equal(t, a.GoPattern(), b.GoPattern())
	require.True(t, b.MatchString("ABC"))
	require.False(t, b.MatchString("ABCD"))
}

func TestCompileGroups_Error(t *testing.T) {
	_, err := facet.CompileGroups([][]string{{`ok`}, {`[x-[y]]`}})
	require.ErrorIs(t, err, facet.ErrPatternSyntax)
}
