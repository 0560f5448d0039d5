package builder

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestParseDereferencePastParticiple(t *testing.T) {
	input := []entity.Fragment{
		entity.Plain("past"),
		entity.Plain(" "),
		entity.Plain("participle"),
		entity.Plain(" "),
		entity.Plain("of"),
		entity.Plain(" "),
		entity.Link("bemerken"),
	}
	label, referenced, ok := parseDereference(input)
	require.True(t, ok)
	assert.Equal(t, "past participle of", label)
	assert.Equal(t, "bemerken", referenced)
}

func TestParseDereferenceWithPhonetics(t *testing.T) {
	input := []entity.Fragment{
		entity.Plain("Alternative"),
		entity.Plain(" "),
		entity.Plain("form"),
		entity.Plain(" "),
		entity.Plain("of"),
		entity.Plain(" "),
		entity.Link("дальше"),
		entity.Plain(" ("),
		entity.Plain("dálʹše"),
		entity.Plain("): "),
		entity.Plain("farther"),
	}
	label, referenced, ok := parseDereference(input)
	require.True(t, ok)
	assert.Equal(t, "Alternative form of", label)
	assert.Equal(t, "дальше", referenced)
}

func TestParseDereferenceTooLongAfterLink(t *testing.T) {
	input := []entity.Fragment{
		entity.Plain("form"),
		entity.Plain(" "),
		entity.Plain("of"),
		entity.Plain(" "),
		entity.Link("word"),
		entity.Plain(" and a very long sentence follows here that should definitely fail the thirty character safety check"),
	}
	_, _, ok := parseDereference(input)
	assert.False(t, ok)
}

func TestParseDereferenceNoOfPivot(t *testing.T) {
	input := []entity.Fragment{
		entity.Plain("a plain gloss without the pivot"),
	}
	_, _, ok := parseDereference(input)
	assert.False(t, ok)
}

func TestParseDereferenceNoLinkAfterOf(t *testing.T) {
	input := []entity.Fragment{
		entity.Plain("variant"),
		entity.Plain(" "),
		entity.Plain("of"),
		entity.Plain(" "),
		entity.Plain("something"),
	}
	_, _, ok := parseDereference(input)
	assert.False(t, ok)
}

func formOfElement(key, referenced string, lang entity.Language) *entity.DictionaryElement {
	return &entity.DictionaryElement{
		Key:       key,
		Word:      key,
		Lang:      lang,
		WordTypes: []string{"verb"},
		Definitions: []entity.Definition{{
			Text: []entity.Fragment{
				entity.Plain("past"),
				entity.Plain(" "),
				entity.Plain("participle"),
				entity.Plain(" "),
				entity.Plain("of"),
				entity.Plain(" "),
				entity.Link(referenced),
			},
			Tags: []string{"Form-of", "Participle"},
		}},
	}
}

func TestDereferenceGraftsLemmaCopy(t *testing.T) {
	lemma := &entity.DictionaryElement{
		Key:       "bemerken",
		Word:      "bemerken",
		Lang:      entity.LanguageGerman,
		Audio:     []string{"https://example.org/bemerken.ogg"},
		IPA:       "/bəˈmɛʁkn̩/",
		WordTypes: []string{"verb"},
		Definitions: []entity.Definition{{
			Text: []entity.Fragment{entity.Plain("to notice")},
			Tags: []string{},
		}},
	}
	inflected := formOfElement("bemerkt", "bemerken", entity.LanguageGerman)
	inflected.Audio = []string{"https://example.org/bemerkt.ogg"}
	inflected.IPA = "/bəˈmɛʁkt/"

	out := Dereference(discardLogger(), []*entity.DictionaryElement{lemma, inflected})
	require.Len(t, out, 2)

	var grafted *entity.DictionaryElement
	for _, el := range out {
		if el.Key == "bemerkt" {
			grafted = el
		}
	}
	require.NotNil(t, grafted)

	assert.Equal(t, "bemerken", grafted.Word)
	assert.NotEqual(t, grafted.Key, grafted.Word)
	assert.Equal(t, "past participle of", grafted.DereferencedText)
	assert.Equal(t, []entity.Definition{lemma.Definitions[0]}, grafted.Definitions)
	// Lemma has its own audio/ipa, so the inflected form's are not used.
	assert.Equal(t, lemma.Audio, grafted.Audio)
	assert.Equal(t, lemma.IPA, grafted.IPA)
}

func TestDereferenceKeepsInflectedPronunciation(t *testing.T) {
	lemma := &entity.DictionaryElement{
		Key:       "bemerken",
		Word:      "bemerken",
		Lang:      entity.LanguageGerman,
		WordTypes: []string{"verb"},
		Definitions: []entity.Definition{{
			Text: []entity.Fragment{entity.Plain("to notice")},
		}},
	}
	inflected := formOfElement("bemerkt", "bemerken", entity.LanguageGerman)
	inflected.Audio = []string{"https://example.org/bemerkt.ogg"}
	inflected.IPA = "/bəˈmɛʁkt/"

	out := Dereference(discardLogger(), []*entity.DictionaryElement{lemma, inflected})

	for _, el := range out {
		if el.Key == "bemerkt" {
			assert.Equal(t, inflected.Audio, el.Audio)
			assert.Equal(t, inflected.IPA, el.IPA)
		}
	}
}

func TestDereferenceDropsTwoStageChains(t *testing.T) {
	// A → B → C: both A and B are candidates, so A must stay untouched.
	c := &entity.DictionaryElement{
		Key:  "c",
		Word: "c",
		Lang: entity.LanguageGerman,
		Definitions: []entity.Definition{{
			Text: []entity.Fragment{entity.Plain("the real lemma")},
		}},
	}
	b := formOfElement("b", "c", entity.LanguageGerman)
	a := formOfElement("a", "b", entity.LanguageGerman)

	out := Dereference(discardLogger(), []*entity.DictionaryElement{a, b, c})

	for _, el := range out {
		switch el.Key {
		case "a":
			assert.Empty(t, el.DereferencedText, "chained candidate must not resolve")
			assert.Equal(t, "a", el.Word)
		case "b":
			assert.Equal(t, "past participle of", el.DereferencedText)
			assert.Equal(t, "c", el.Word)
		}
	}
}

func TestDereferenceMissingTargetLeftAlone(t *testing.T) {
	orphan := formOfElement("gegangen", "gehen", entity.LanguageGerman)
	out := Dereference(discardLogger(), []*entity.DictionaryElement{orphan})
	require.Len(t, out, 1)
	assert.Equal(t, "gegangen", out[0].Word)
	assert.Empty(t, out[0].DereferencedText)
}

func TestDereferenceSkipsLongEntries(t *testing.T) {
	lemma := &entity.DictionaryElement{
		Key: "gehen", Word: "gehen", Lang: entity.LanguageGerman,
		Definitions: []entity.Definition{{Text: []entity.Fragment{entity.Plain("to go")}}},
	}
	busy := formOfElement("ging", "gehen", entity.LanguageGerman)
	for i := 0; i < 7; i++ {
		busy.Definitions = append(busy.Definitions, entity.Definition{
			Text: []entity.Fragment{entity.Plain("another sense")},
		})
	}

	out := Dereference(discardLogger(), []*entity.DictionaryElement{lemma, busy})
	for _, el := range out {
		if el.Key == "ging" {
			assert.Empty(t, el.DereferencedText)
		}
	}
}
