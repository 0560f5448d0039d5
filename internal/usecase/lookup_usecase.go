package usecase

import (
	"strings"

	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
	"github.com/Alex-Programs/nuenki-dictionary/internal/repository"
)

// LookupUsecase defines the single operation the HTTP surface needs.
type LookupUsecase interface {
	Lookup(language, word string) (*entity.DictionaryElement, error)
}

type lookupUsecase struct {
	repo repository.DictionaryRepository
}

func NewLookupUsecase(repo repository.DictionaryRepository) LookupUsecase {
	return &lookupUsecase{repo: repo}
}

// Lookup validates the request and runs the store's fallback ladder.
// A miss surfaces as entity.ErrNotFound, not as a failure.
func (u *lookupUsecase) Lookup(language, word string) (*entity.DictionaryElement, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, entity.ErrInvalidWord
	}
	lang := entity.ParseLanguage(language)
	if lang == entity.LanguageUnspecified {
		return nil, entity.ErrUnknownLanguage
	}
	el, ok := u.repo.Query(lang, word)
	if !ok {
		return nil, entity.ErrNotFound
	}
	return el, nil
}
