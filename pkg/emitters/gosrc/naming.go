package gosrc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// fileName converts a wrapper type name into its generated file name:
// ActionVec -> action_vec.go, HTTPEventVec -> http_event_vec.go.
func fileName(typeName string) string {
	return snakeCase(typeName) + ".go"
}

func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			boundary := i > 0 &&
				(!unicode.IsUpper(runes[i-1]) ||
					(i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if boundary {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// qualifier returns the package qualifier of a type name ("ext" for
// "ext.Event"), or "" for a local name.
func qualifier(typeName string) string {
	if idx := strings.Index(typeName, "."); idx >= 0 {
		return typeName[:idx]
	}
	return ""
}

// localName strips the package qualifier ("Event" for "ext.Event").
func localName(typeName string) string {
	if idx := strings.Index(typeName, "."); idx >= 0 {
		return typeName[idx+1:]
	}
	return typeName
}

// receiverName picks the conventional one-letter receiver for a type.
func receiverName(typeName string) string {
	first, _ := utf8.DecodeRuneInString(typeName)
	if first == utf8.RuneError {
		return "v"
	}
	return string(unicode.ToLower(first))
}
