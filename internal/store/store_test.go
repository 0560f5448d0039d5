package store

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-Programs/nuenki-dictionary/internal/codec"
	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func element(key string, lang entity.Language, gloss string) *entity.DictionaryElement {
	return &entity.DictionaryElement{
		Key:       key,
		Word:      key,
		Lang:      lang,
		WordTypes: []string{"noun"},
		Definitions: []entity.Definition{
			{Text: []entity.Fragment{entity.Plain(gloss)}},
		},
	}
}

func loadedStore(t *testing.T, elements ...*entity.DictionaryElement) *Store {
	t.Helper()

	c, err := codec.New(codec.DefaultCompressionLevel)
	require.NoError(t, err)

	wrappers := make([]entity.CompressedElement, 0, len(elements))
	for _, el := range elements {
		wrappers = append(wrappers, c.Compress(el))
	}
	codec.SortElements(wrappers)

	path := filepath.Join(t.TempDir(), "dict.bin")
	require.NoError(t, codec.WriteDump(path, wrappers))

	st, err := Load(discardLogger(), path)
	require.NoError(t, err)
	return st
}

func TestLoadMissingDumpFails(t *testing.T) {
	_, err := Load(discardLogger(), filepath.Join(t.TempDir(), "absent.bin"))
	assert.Error(t, err)
}

func TestQueryExactHit(t *testing.T) {
	st := loadedStore(t, element("Haus", entity.LanguageGerman, "house"))

	el, ok := st.Query(entity.LanguageGerman, "Haus")
	require.True(t, ok)
	assert.Equal(t, "Haus", el.Word)
	assert.Equal(t, "house", el.Definitions[0].PlainText())
}

func TestQueryMiss(t *testing.T) {
	st := loadedStore(t, element("Haus", entity.LanguageGerman, "house"))

	_, ok := st.Query(entity.LanguageGerman, "nonexistent")
	assert.False(t, ok)
	// Same token, wrong language.
	_, ok = st.Query(entity.LanguageFrench, "Haus")
	assert.False(t, ok)
}

func TestQueryLowercaseFallback(t *testing.T) {
	st := loadedStore(t, element("bonjour", entity.LanguageFrench, "hello"))

	el, ok := st.Query(entity.LanguageFrench, "BONJOUR")
	require.True(t, ok)
	assert.Equal(t, "bonjour", el.Word)
}

func TestQueryTitleCaseFallback(t *testing.T) {
	st := loadedStore(t, element("Haus", entity.LanguageGerman, "house"))

	el, ok := st.Query(entity.LanguageGerman, "hAUS")
	require.True(t, ok)
	assert.Equal(t, "Haus", el.Word)
}

func TestQueryExactWinsOverFallbacks(t *testing.T) {
	st := loadedStore(t,
		element("Essen", entity.LanguageGerman, "city"),
		element("essen", entity.LanguageGerman, "to eat"),
	)

	el, ok := st.Query(entity.LanguageGerman, "Essen")
	require.True(t, ok)
	assert.Equal(t, "city", el.Definitions[0].PlainText())

	el, ok = st.Query(entity.LanguageGerman, "essen")
	require.True(t, ok)
	assert.Equal(t, "to eat", el.Definitions[0].PlainText())
}

func TestQueryCzechLemmaFallback(t *testing.T) {
	st := loadedStore(t, element("Aachen", entity.LanguageCzech, "a German city"))

	direct, ok := st.Query(entity.LanguageCzech, "Aachen")
	require.True(t, ok)

	// The shipped table maps Aachenu → Aachen.
	viaLemma, ok := st.Query(entity.LanguageCzech, "Aachenu")
	require.True(t, ok)
	assert.Equal(t, direct, viaLemma)
}

func TestQueryCzechLemmaLowercaseEntry(t *testing.T) {
	st := loadedStore(t, element("město", entity.LanguageCzech, "city"))

	el, ok := st.Query(entity.LanguageCzech, "městech")
	require.True(t, ok)
	assert.Equal(t, "město", el.Word)
}

func TestQueryCzechTableOnlyForCzech(t *testing.T) {
	st := loadedStore(t, element("Aachen", entity.LanguageGerman, "a city"))

	// German has no lemma-table rung, so the inflected Czech form misses.
	_, ok := st.Query(entity.LanguageGerman, "Aachenu")
	assert.False(t, ok)
}

func TestQueryReturnsFreshCopies(t *testing.T) {
	st := loadedStore(t, element("Haus", entity.LanguageGerman, "house"))

	first, ok := st.Query(entity.LanguageGerman, "Haus")
	require.True(t, ok)
	first.WordTypes[0] = "mutated"

	second, ok := st.Query(entity.LanguageGerman, "Haus")
	require.True(t, ok)
	assert.Equal(t, "noun", second.WordTypes[0])
}

func TestStoreLen(t *testing.T) {
	st := loadedStore(t,
		element("a", entity.LanguageGerman, "x"),
		element("b", entity.LanguageGerman, "y"),
	)
	assert.Equal(t, 2, st.Len())
}
