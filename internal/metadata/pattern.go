package metadata

import (
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

const patternCacheSize = 64

var patternCache = mustPatternCache()

func mustPatternCache() *lru.Cache[string, *regexp.Regexp] {
	c, err := lru.New[string, *regexp.Regexp](patternCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}

// Matches reports whether value is non-empty and matches the regular
// expression pattern. Patterns come from local configuration and are used
// as written. An invalid pattern never matches.
func Matches(value, pattern string) bool {
	if value == "" {
		return false
	}
	re, err := compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

// Compile validates pattern and caches the compiled expression.
func Compile(pattern string) error {
	_, err := compile(pattern)
	return err
}

func compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache.Add(pattern, re)
	return re, nil
}
