package facet

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	xsdfacet "github.com/reoring/xsdfacet"
)

// patternCacheSize bounds the number of compiled patterns kept in memory.
const patternCacheSize = 512

var patternCache = sync.OnceValue(func() *lru.Cache[string, *regexp.Regexp] {
	c, err := lru.New[string, *regexp.Regexp](patternCacheSize)
	if err != nil {
		panic(err)
	}
	return c
})

// Regex is a compiled XSD pattern that remembers its source.
type Regex struct {
	Source string
	re     *regexp.Regexp
}

// CompileRegex translates and compiles an XSD pattern. Identical sources
// share one compiled program.
func CompileRegex(xsd string) (Regex, error) {
	cache := patternCache()
	if re, ok := cache.Get(xsd); ok {
		return Regex{Source: xsd, re: re}, nil
	}
	goPattern, err := TranslatePattern(xsd)
	if err != nil {
		return Regex{}, err
	}
	re, err := regexp.Compile(goPattern)
	if err != nil {
		return Regex{}, fmt.Errorf("%w: %q: %v", ErrPatternSyntax, xsd, err)
	}
	cache.Add(xsd, re)
	return Regex{Source: xsd, re: re}, nil
}

// MatchString reports whether s matches the whole pattern.
func (r Regex) MatchString(s string) bool { return r.re != nil && r.re.MatchString(s) }

// GoPattern returns the translated RE2 expression.
func (r Regex) GoPattern() string {
	if r.re == nil {
		return ""
	}
	return r.re.String()
}

// Groups holds pattern facets: a value must match every pattern of at least
// one group. Patterns declared at one restriction step form one group.
type Groups [][]Regex

// CompileGroups compiles pattern sources group by group.
func CompileGroups(src [][]string) (Groups, error) {
	out := make(Groups, 0, len(src))
	for _, group := range src {
		g := make([]Regex, 0, len(group))
		for _, p := range group {
			re, err := CompileRegex(p)
			if err != nil {
				return nil, err
			}
			g = append(g, re)
		}
		out = append(out, g)
	}
	return out, nil
}

// MustGroups is CompileGroups for patterns known to be valid.
func MustGroups(src ...[]string) Groups {
	g, err := CompileGroups(src)
	if err != nil {
		panic(err)
	}
	return g
}

// Match reports whether s satisfies the groups. On failure it returns the
// sources of the patterns that did not match.
func (g Groups) Match(s string) (bool, []string) {
	if len(g) == 0 {
		return true, nil
	}
	var failed []string
	for _, group := range g {
		all := true
		for _, re := range group {
			if !re.MatchString(s) {
				all = false
				failed = append(failed, re.Source)
			}
		}
		if all {
			return true, nil
		}
	}
	return false, failed
}

// Sources returns the pattern sources group by group.
func (g Groups) Sources() [][]string {
	out := make([][]string, len(g))
	for i, group := range g {
		for _, re := range group {
			out[i] = append(out[i], re.Source)
		}
	}
	return out
}

// Pattern checks the lexical form of v against groups.
func Pattern(ctx context.Context, tag xsdfacet.TypeTag, v xsdfacet.Value, groups Groups, sink *xsdfacet.Diagnostics) bool {
	ok, failed := groups.Match(v.String())
	if !ok {
		Report(ctx, sink, xsdfacet.Diagnostic{
			Type:   tag,
			Code:   xsdfacet.CodePattern,
			Facet:  "pattern",
			Value:  v,
			Params: map[string]any{"patterns": failed},
		})
	}
	return ok
}
