// Package placeholder implements the token substitution engine used for
// both template contents and template file names.
//
// Tokens form a closed vocabulary of __marker__ strings. Substitution is
// literal (no template language) so that the shipped Java assets remain
// editable with any tooling that understands plain Java.
package placeholder

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Token names of the fixed vocabulary
const (
	TokenAPINamePascal     = "__ApiName__"
	TokenAPINameCamel      = "__apiName__"
	TokenBasePackage       = "__basePackage__"
	TokenEndpointPath      = "__endpointPath__"
	TokenBaseURL           = "__baseUrl__"
	TokenServiceIdentifier = "__serviceIdentifier__"
)

// tokenPattern matches anything shaped like an unexpanded placeholder.
// Used by Unexpanded for strict-mode residue detection.
var tokenPattern = regexp.MustCompile(`__[A-Za-z][A-Za-z0-9]*__`)

// Map holds the token -> value substitutions for one generation run.
type Map struct {
	// tokens sorted longest-first so a short token never matches inside
	// a longer one (e.g. __apiName__ inside __apiNameCamel__ if the
	// vocabulary ever grows overlapping entries)
	tokens []string
	values map[string]string
}

// NewMap builds a substitution map from resolved generation values.
func NewMap(apiNamePascal, basePackage, endpointPath, baseURL, serviceIdentifier string) Map {
	return FromPairs(map[string]string{
		TokenAPINamePascal:     apiNamePascal,
		TokenAPINameCamel:      LowerFirst(apiNamePascal),
		TokenBasePackage:       basePackage,
		TokenEndpointPath:      endpointPath,
		TokenBaseURL:           baseURL,
		TokenServiceIdentifier: serviceIdentifier,
	})
}

// FromPairs builds a Map from an arbitrary token -> value mapping.
func FromPairs(pairs map[string]string) Map {
	m := Map{values: make(map[string]string, len(pairs))}
	for token, value := range pairs {
		m.tokens = append(m.tokens, token)
		m.values[token] = value
	}
	sort.Slice(m.tokens, func(i, j int) bool {
		if len(m.tokens[i]) != len(m.tokens[j]) {
			return len(m.tokens[i]) > len(m.tokens[j])
		}
		return m.tokens[i] < m.tokens[j]
	})
	return m
}

// Apply replaces every occurrence of every token in s with its mapped
// value. Tokens not present in the map are left unchanged.
func (m Map) Apply(s string) string {
	for _, token := range m.tokens {
		s = strings.ReplaceAll(s, token, m.values[token])
	}
	return s
}

// Value returns the mapped value for a token and whether it exists.
func (m Map) Value(token string) (string, bool) {
	v, ok := m.values[token]
	return v, ok
}

// Unexpanded returns the placeholder-shaped substrings remaining in s.
// A non-empty result after Apply means the input used tokens outside the
// vocabulary; strict mode treats this as a per-file warning.
func Unexpanded(s string) []string {
	matches := tokenPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, match := range matches {
		if !seen[match] {
			seen[match] = true
			out = append(out, match)
		}
	}
	return out
}

// LowerFirst converts PascalCase to camelCase.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// Kebab converts PascalCase to kebab-case, inserting a hyphen before each
// uppercase letter after the first.
func Kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
