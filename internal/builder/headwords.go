package builder

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

// headwordBatchSize is how many input lines each phase-1 batch holds.
const headwordBatchSize = 12_000

// HeadwordKey identifies one headword in one language.
type HeadwordKey struct {
	Word string
	Lang entity.Language
}

// HeadwordSet is the full set of (word, language) pairs that exist as
// dictionary headwords. Phase 2 shares it read-only across all workers.
type HeadwordSet map[HeadwordKey]struct{}

func (s HeadwordSet) Contains(word string, lang entity.Language) bool {
	_, ok := s[HeadwordKey{Word: word, Lang: lang}]
	return ok
}

func (s HeadwordSet) Add(word string, lang entity.Language) {
	s[HeadwordKey{Word: word, Lang: lang}] = struct{}{}
}

// BuildHeadwordSet streams the input once and collects every (word, lang)
// pair, expanding language codes that fan out to several tags. Lines that
// fail to parse or lack the required fields are skipped.
func BuildHeadwordSet(ctx context.Context, log *logrus.Logger, inputPath string) (HeadwordSet, error) {
	keys, err := mapLines(ctx, inputPath, headwordBatchSize, headwordLineKeys, func(total int) {
		log.WithField("lines", total).Info("headword scan progress")
	})
	if err != nil {
		return nil, err
	}

	set := make(HeadwordSet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	log.WithField("headwords", len(set)).Info("headword set built")
	return set, nil
}

func headwordLineKeys(line []byte) []HeadwordKey {
	var raw rawLine
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil
	}
	if raw.Word == "" || raw.LangCode == "" {
		return nil
	}
	langs := entity.LanguagesForWiktionaryCode(raw.LangCode)
	keys := make([]HeadwordKey, 0, len(langs))
	for _, lang := range langs {
		keys = append(keys, HeadwordKey{Word: raw.Word, Lang: lang})
	}
	return keys
}
