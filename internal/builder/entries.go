package builder

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

// entryBatchSize is how many input lines each phase-2 batch holds.
const entryBatchSize = 12_000

// filteredTags are morphological bookkeeping indices that carry no meaning
// for a reader and are dropped from every sense.
var filteredTags = map[string]struct{}{
	"class-1": {}, "class-2": {}, "class-3": {}, "class-4": {},
	"class-5": {}, "class-6": {}, "class-7": {},
	"declension-1": {}, "declension-2": {}, "declension-3": {},
	"declension-4": {}, "declension-5": {},
	"conjugation-1": {}, "conjugation-2": {}, "conjugation-3": {},
	"conjugation-4":    {},
	"stress-pattern-1": {}, "stress-pattern-2": {}, "stress-pattern-3": {},
	"stress-pattern-4": {},
}

// BuildElements streams the input a second time and produces one normalized
// element per (word, lang) pair recognised by the headword set, then merges
// duplicate elements language by language.
func BuildElements(ctx context.Context, log *logrus.Logger, inputPath string, set HeadwordSet) ([]*entity.DictionaryElement, error) {
	elements, err := mapLines(ctx, inputPath, entryBatchSize, func(line []byte) []*entity.DictionaryElement {
		return elementsFromLine(line, set)
	}, func(total int) {
		log.WithField("lines", total).Info("entry scan progress")
	})
	if err != nil {
		return nil, err
	}
	log.WithField("elements", len(elements)).Info("raw elements built, merging")

	merged := mergeElements(elements)
	log.WithField("elements", len(merged)).Info("merge complete")
	return merged, nil
}

// elementsFromLine parses one record and fans it out into one element per
// recognised language. Records missing a word type or parsable senses are
// dropped; glosses are repaired, tokenized, and hyperlinked per language.
func elementsFromLine(line []byte, set HeadwordSet) []*entity.DictionaryElement {
	var raw rawLine
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil
	}
	if raw.Word == "" || raw.LangCode == "" {
		return nil
	}
	langs := entity.LanguagesForWiktionaryCode(raw.LangCode)
	if len(langs) == 0 {
		return nil
	}

	wordTypes := extractWordTypes(&raw)
	if len(wordTypes) == 0 {
		return nil
	}
	audio := extractAudio(raw.Sounds)
	ipa := extractIPA(raw.Sounds)

	var results []*entity.DictionaryElement
	for _, lang := range langs {
		if !set.Contains(raw.Word, lang) {
			continue
		}
		definitions := extractDefinitions(raw.Senses, set, lang)
		if len(definitions) == 0 {
			continue
		}
		results = append(results, &entity.DictionaryElement{
			Key:         raw.Word,
			Word:        raw.Word,
			Lang:        lang,
			Audio:       audio,
			IPA:         ipa,
			WordTypes:   wordTypes,
			Definitions: definitions,
		})
	}
	return results
}

// extractAudio walks the sound objects preferring ogg over mp3, skipping
// sounds that carry neither.
func extractAudio(sounds []rawSound) []string {
	var urls []string
	for _, s := range sounds {
		switch {
		case s.OggURL != "":
			urls = append(urls, s.OggURL)
		case s.MP3URL != "":
			urls = append(urls, s.MP3URL)
		}
	}
	return urls
}

func extractIPA(sounds []rawSound) string {
	for _, s := range sounds {
		if s.IPA != "" {
			return s.IPA
		}
	}
	return ""
}

// extractWordTypes prefers the part-of-speech label; without one it falls
// back to the head template names. Neither present means the record is not
// a usable entry.
func extractWordTypes(raw *rawLine) []string {
	if raw.POS != "" {
		return []string{raw.POS}
	}
	var names []string
	for _, t := range raw.HeadTemplates {
		if t.Name != "" {
			names = append(names, t.Name)
		}
	}
	return names
}

// extractDefinitions builds one definition per sense that carries a gloss.
// Returns nil when the record has no senses array at all.
func extractDefinitions(senses []rawSense, set HeadwordSet, lang entity.Language) []entity.Definition {
	if senses == nil {
		return nil
	}
	out := make([]entity.Definition, 0, len(senses))
	for _, sense := range senses {
		if len(sense.Glosses) == 0 {
			continue
		}
		gloss := solveUnopenedBrackets(sense.Glosses[0])
		out = append(out, entity.Definition{
			Text: hyperlinkText(gloss, set, lang),
			Tags: normalizeTags(sense.Tags),
		})
	}
	return out
}

// normalizeTags drops the filtered morphology indices, uppercases the first
// ASCII character of each survivor, and sorts ascending.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, drop := filteredTags[t]; drop {
			continue
		}
		out = append(out, titleASCII(t))
	}
	sort.Strings(out)
	return out
}

// titleASCII uppercases the first character when it is an ASCII lowercase
// letter and leaves everything else alone.
func titleASCII(s string) string {
	if s == "" {
		return s
	}
	c := s[0]
	if 'a' <= c && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}

// mergeElements folds duplicate (word, lang) elements together, one
// language at a time so a single language's working set is live at once.
// Languages are processed in first-seen order and duplicates resolve by
// first occurrence, which keeps the result deterministic for a given input.
func mergeElements(elements []*entity.DictionaryElement) []*entity.DictionaryElement {
	var langs []entity.Language
	seen := map[entity.Language]struct{}{}
	for _, el := range elements {
		if _, ok := seen[el.Lang]; !ok {
			seen[el.Lang] = struct{}{}
			langs = append(langs, el.Lang)
		}
	}

	var result []*entity.DictionaryElement
	for _, lang := range langs {
		byWord := make(map[string]*entity.DictionaryElement)
		var order []string

		for _, el := range elements {
			if el.Lang != lang {
				continue
			}
			existing, ok := byWord[el.Word]
			if !ok {
				clone := *el
				clone.Audio = lo.Uniq(clone.Audio)
				clone.WordTypes = lo.Uniq(clone.WordTypes)
				clone.Definitions = consolidateDefinitions(clone.Definitions)
				byWord[el.Word] = &clone
				order = append(order, el.Word)
				continue
			}
			existing.Audio = lo.Uniq(append(existing.Audio, el.Audio...))
			if existing.IPA == "" {
				existing.IPA = el.IPA
			}
			existing.WordTypes = lo.Uniq(append(existing.WordTypes, el.WordTypes...))
			existing.Definitions = consolidateDefinitions(append(existing.Definitions, el.Definitions...))
		}

		for _, word := range order {
			result = append(result, byWord[word])
		}
	}
	return result
}

// consolidateDefinitions keeps the first definition per distinct fragment
// sequence; later duplicates contribute their tags, which are re-deduped
// and re-sorted so the union stays canonical.
func consolidateDefinitions(defs []entity.Definition) []entity.Definition {
	out := make([]entity.Definition, 0, len(defs))
	index := make(map[string]int, len(defs))

	for _, d := range defs {
		sig := definitionSignature(d)
		if at, ok := index[sig]; ok {
			merged := lo.Uniq(append(out[at].Tags, d.Tags...))
			sort.Strings(merged)
			out[at].Tags = merged
			continue
		}
		index[sig] = len(out)
		out = append(out, d)
	}
	return out
}

// definitionSignature flattens a fragment sequence into a collision-safe
// map key: kind byte, decimal payload length, colon, payload.
func definitionSignature(d entity.Definition) string {
	var b strings.Builder
	for _, f := range d.Text {
		b.WriteByte(byte(f.Kind))
		b.WriteString(strconv.Itoa(len(f.Text)))
		b.WriteByte(':')
		b.WriteString(f.Text)
	}
	return b.String()
}
