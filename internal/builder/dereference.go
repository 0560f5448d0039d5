package builder

import (
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

const (
	// derefMaxDefinitions bounds how many senses a form-of entry may carry;
	// real inflection stubs are short.
	derefMaxDefinitions = 6
	// Safety bounds on the first definition's shape around the "of" pivot.
	derefMaxCharsBefore  = 100
	derefMaxSpacesBefore = 12
	derefMaxCharsAfter   = 30
)

type elementKey struct {
	Key  string
	Lang entity.Language
}

type derefCandidate struct {
	key        elementKey
	label      string
	referenced string
}

// Dereference replaces form-of and alternative-form entries with a copy of
// the lemma they point at, keyed under the inflected spelling. Runs
// single-threaded: the access pattern is random over the whole map and
// memory-bound, so parallelism buys nothing here.
func Dereference(log *logrus.Logger, elements []*entity.DictionaryElement) []*entity.DictionaryElement {
	byKey := make(map[elementKey]*entity.DictionaryElement, len(elements))
	for _, el := range elements {
		byKey[elementKey{Key: el.Key, Lang: el.Lang}] = el
	}

	var candidates []derefCandidate
	candidateKeys := make(map[elementKey]struct{})

	for _, el := range elements {
		if len(el.Definitions) > derefMaxDefinitions || len(el.Definitions) == 0 {
			continue
		}
		first := el.Definitions[0]
		if !hasTag(first.Tags, "Form-of") && !hasTag(first.Tags, "Alt-of") {
			continue
		}
		label, referenced, ok := parseDereference(first.Text)
		if !ok {
			continue
		}
		candidates = append(candidates, derefCandidate{
			key:        elementKey{Key: el.Key, Lang: el.Lang},
			label:      label,
			referenced: referenced,
		})
		candidateKeys[elementKey{Key: el.Key, Lang: el.Lang}] = struct{}{}
	}

	// Two-stage chains (A → B → C) would make the outcome depend on
	// resolution order; any candidate pointing at another candidate is
	// dropped instead.
	applied := 0
	for _, c := range candidates {
		if _, chained := candidateKeys[elementKey{Key: c.referenced, Lang: c.key.Lang}]; chained {
			continue
		}
		original := byKey[c.key]
		referenced, ok := byKey[elementKey{Key: c.referenced, Lang: c.key.Lang}]
		if !ok {
			// Referenced lemma never made it into the dictionary; keep the
			// inflected entry as-is.
			continue
		}

		grafted := *referenced
		grafted.Key = c.key.Key
		grafted.DereferencedText = c.label
		if len(grafted.Audio) == 0 {
			grafted.Audio = original.Audio
		}
		if grafted.IPA == "" {
			grafted.IPA = original.IPA
		}
		byKey[c.key] = &grafted
		applied++
	}

	log.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"applied":    applied,
	}).Info("dereference pass complete")

	// Rebuild the vector in the original element order so downstream
	// output stays deterministic.
	out := make([]*entity.DictionaryElement, 0, len(elements))
	for _, el := range elements {
		out = append(out, byKey[elementKey{Key: el.Key, Lang: el.Lang}])
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// parseDereference extracts the relation label and the referenced lemma
// from a form-of definition: the first fragment whose trimmed payload is
// "of", followed (directly or after one filler fragment) by a link. The
// bounds reject glosses that merely mention "of" somewhere in running text.
func parseDereference(frags []entity.Fragment) (label, referenced string, ok bool) {
	ofIndex, linkPos := -1, -1
	for i, f := range frags {
		if strings.TrimSpace(f.Text) != "of" {
			continue
		}
		for _, j := range []int{i + 1, i + 2} {
			if j < len(frags) && frags[j].IsLink() {
				ofIndex = i
				linkPos = j
				referenced = frags[j].Text
				break
			}
		}
		if ofIndex >= 0 {
			break
		}
	}
	if ofIndex < 0 {
		return "", "", false
	}

	charsBefore, spacesBefore := 0, 0
	for _, f := range frags[:ofIndex] {
		charsBefore += len([]rune(f.Text))
		spacesBefore += countSpaces(f.Text)
	}
	if charsBefore > derefMaxCharsBefore || spacesBefore > derefMaxSpacesBefore {
		return "", "", false
	}

	charsAfter := 0
	for _, f := range frags[linkPos+1:] {
		charsAfter += len([]rune(f.Text))
	}
	if charsAfter > derefMaxCharsAfter {
		return "", "", false
	}

	var b strings.Builder
	for _, f := range frags[:ofIndex] {
		b.WriteString(f.Text)
	}
	return strings.TrimSpace(b.String()) + " of", referenced, true
}

func countSpaces(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
