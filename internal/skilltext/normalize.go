package skilltext

import (
	"strings"
	"unicode"
)

// Normalize lowercases a skill name or free-text blob and collapses it to
// single-spaced tokens. Symbols that distinguish real skill names (c++,
// c#, .net, node.js) survive; everything else is dropped.
func Normalize(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	lastWasSpace := false

	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '+' || r == '#' || r == '.':
			b.WriteRune(r)
			lastWasSpace = false
		case unicode.IsSpace(r) || r == ',' || r == ';' || r == '/':
			if b.Len() == 0 || lastWasSpace {
				continue
			}
			b.WriteByte(' ')
			lastWasSpace = true
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Variants returns the normalized name plus every alias it is known
// under, deduplicated, the canonical form first.
func Variants(name string) []string {
	normalized := Normalize(name)
	if normalized == "" {
		return nil
	}

	out := make([]string, 0, 4)
	seen := make(map[string]struct{}, 4)
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, alias := range Aliases(normalized) {
		add(Normalize(alias))
	}
	return out
}
