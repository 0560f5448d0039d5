package builder

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

// fillerRunes are treated like whitespace when partitioning a gloss into
// content and filler runs.
const fillerRunes = `!"£$%^&*()-_=+[]:;'~@#<,.>/?\|`

func isFiller(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsNumber(r) || strings.ContainsRune(fillerRunes, r)
}

// isLinkException lists spans that are never linked even when they exist as
// headwords: single ASCII letters, single digits, and "not".
func isLinkException(w string) bool {
	if len(w) == 1 {
		c := w[0]
		return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
	}
	return w == "not"
}

// stripCombiningAcute removes the combining acute accent (U+0301) after NFD
// decomposition, then recomposes to NFC so letters such as й keep the form
// headwords are stored in. Russian stress marks decompose into base letter +
// U+0301.
func stripCombiningAcute(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r == '\u0301' {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// solveUnopenedBrackets repairs glosses whose leading context was cut off:
// if a closing bracket appears before any opening one, the matching opener
// is prepended. The first bracket-ish rune decides; the text is otherwise
// untouched.
func solveUnopenedBrackets(text string) string {
	for _, r := range text {
		switch r {
		case '(', '[', '{':
			return text
		case ')':
			return "(" + text
		case ']':
			return "[" + text
		case '}':
			return "{" + text
		}
	}
	return text
}

// hyperlinkText partitions a gloss into alternating content and filler runs
// and emits one fragment per run, so concatenating fragment payloads
// reproduces the input exactly. Content runs that are known headwords in
// the entry's language become links; for Russian, a run whose accent-free
// spelling is a headword also links, keeping the accented spelling visible.
func hyperlinkText(text string, set HeadwordSet, lang entity.Language) []entity.Fragment {
	var result []entity.Fragment
	var current strings.Builder
	lastWasFiller := false

	classify := func(word string) entity.Fragment {
		if isLinkException(word) {
			return entity.Plain(word)
		}
		if set.Contains(word, lang) {
			return entity.Link(word)
		}
		if lang == entity.LanguageRussian {
			stripped := stripCombiningAcute(word)
			if stripped != word && set.Contains(stripped, lang) {
				return entity.Link(word)
			}
		}
		return entity.Plain(word)
	}

	for _, r := range text {
		if isFiller(r) {
			if !lastWasFiller && current.Len() > 0 {
				result = append(result, classify(current.String()))
				current.Reset()
			}
			current.WriteRune(r)
			lastWasFiller = true
		} else {
			if lastWasFiller {
				result = append(result, entity.Plain(current.String()))
				current.Reset()
			}
			current.WriteRune(r)
			lastWasFiller = false
		}
	}

	if current.Len() > 0 {
		if lastWasFiller {
			result = append(result, entity.Plain(current.String()))
		} else {
			result = append(result, classify(current.String()))
		}
	}

	return result
}
