package schema

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.AmericanEnglish, cases.NoLower)

// FlagName converts a canonical parameter or operation name to its CLI flag
// spelling: "FunctionName" -> "function-name", "DBInstanceIdentifier" ->
// "db-instance-identifier", "ListObjectsV2" -> "list-objects-v2".
func FlagName(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Start a new segment at a lower->upper boundary or at the last
			// letter of an acronym run ("DBInstance" splits before "Instance").
			if i > 0 {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
					b.WriteByte('-')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if unicode.IsDigit(r) && i > 0 && unicode.IsLower(runes[i-1]) {
			// "V2" handled above; "objects2" stays attached.
			b.WriteRune(r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CanonicalGuess converts a CLI-style kebab name to a PascalCase guess,
// used as a fallback when an operation is not found under its declared flag
// spelling: "create-function" -> "CreateFunction".
func CanonicalGuess(flag string) string {
	spaced := strings.ReplaceAll(flag, "-", " ")
	titled := titleCaser.String(spaced)
	return strings.ReplaceAll(titled, " ", "")
}
