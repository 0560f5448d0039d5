package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

type stubLookup struct {
	element *entity.DictionaryElement
	err     error
}

func (s *stubLookup) Lookup(language, word string) (*entity.DictionaryElement, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.element, nil
}

func testHandler(uc *stubLookup) *Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHandler(uc, log)
}

func TestGetDefinitionOK(t *testing.T) {
	el := &entity.DictionaryElement{
		Key:       "bemerkt",
		Word:      "bemerken",
		Lang:      entity.LanguageGerman,
		WordTypes: []string{"verb"},
		Definitions: []entity.Definition{{
			Text: []entity.Fragment{entity.Plain("to "), entity.Link("notice")},
			Tags: []string{"Formal"},
		}},
		DereferencedText: "past participle of",
	}
	h := testHandler(&stubLookup{element: el})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/definition?language=german&word=bemerkt", nil)
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body definitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bemerkt", body.Element.Key)
	assert.Equal(t, "bemerken", body.Element.Word)
	assert.Equal(t, "german", body.Element.Lang)
	assert.Equal(t, "past participle of", body.Element.DereferencedText)
	assert.Equal(t, "https://en.wiktionary.org/wiki/bemerken#German", body.WiktionaryLink)
	require.Len(t, body.Element.Definitions, 1)
	assert.Equal(t, []fragmentDTO{
		{Type: "plain", Text: "to "},
		{Type: "link", Text: "notice"},
	}, body.Element.Definitions[0].Text)
}

func TestGetDefinitionNotFound(t *testing.T) {
	h := testHandler(&stubLookup{err: entity.ErrNotFound})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/definition?language=german&word=fehlt", nil)
	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Word not found")
}

func TestGetDefinitionBadRequest(t *testing.T) {
	h := testHandler(&stubLookup{err: entity.ErrUnknownLanguage})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/definition?language=klingon&word=x", nil)
	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	h := testHandler(&stubLookup{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
