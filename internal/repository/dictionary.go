package repository

import (
	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

// DictionaryRepository defines read access to the loaded dictionary.
// Lookups are synchronous and non-blocking; cancellation, if any, belongs
// at the request boundary.
type DictionaryRepository interface {
	Query(lang entity.Language, key string) (*entity.DictionaryElement, bool)
	Len() int
}
