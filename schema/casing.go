package schema

import (
	"strings"
	"unicode"
)

// ToKebabCase converts an UpperCamelCase type name to lower-hyphen form.
// Acronym runs stay together ("HTTPServer" -> "http-server") and digits
// stay with the word before them.
func ToKebabCase(name string) string {
	var b strings.Builder
	runes := []rune(name)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			// Don't split inside an acronym unless it is followed by a
			// lower-case letter, which starts the next word.
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !prevUpper || nextLower {
				b.WriteRune('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// FilePatterns returns the file name globs an editor should map to the
// schema of typeName: one PascalCase and one kebab-case pattern per
// extension, e.g. "Order*.json" and "order*.json".
func FilePatterns(typeName string, exts []string) []string {
	kebab := ToKebabCase(typeName)
	patterns := make([]string, 0, 2*len(exts))
	for _, ext := range exts {
		patterns = append(patterns, typeName+"*"+ext)
		if kebab != typeName {
			patterns = append(patterns, kebab+"*"+ext)
		}
	}
	return patterns
}
