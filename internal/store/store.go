// Package store holds the in-memory dictionary: a map from (language, key)
// to per-entry compressed blobs, hydrated from a dump file at startup and
// read-only afterwards. Keeping entries compressed trades one zstd
// decompression per hit for a several-fold smaller resident set.
package store

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/Alex-Programs/nuenki-dictionary/internal/codec"
	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

type storeKey struct {
	Lang entity.Language
	Key  string
}

// Store answers per-word lookups. The map is never written after Load
// returns, so concurrent readers need no locking.
type Store struct {
	codec    *codec.Codec
	elements map[storeKey]entity.CompressedElement
}

// Load reads the dump, parses the wrapper vector, and indexes it. A corrupt
// or unreadable dump is fatal; this runs before the server accepts traffic.
func Load(log *logrus.Logger, path string) (*Store, error) {
	started := time.Now()

	wrappers, err := codec.ReadDump(path)
	if err != nil {
		return nil, fmt.Errorf("load dump: %w", err)
	}

	c, err := codec.New(codec.DefaultCompressionLevel)
	if err != nil {
		return nil, err
	}

	elements := make(map[storeKey]entity.CompressedElement, len(wrappers))
	for _, w := range wrappers {
		elements[storeKey{Lang: w.Lang, Key: w.Key}] = w
	}

	log.WithFields(logrus.Fields{
		"elements": len(elements),
		"duration": time.Since(started).Round(time.Millisecond).String(),
	}).Info("dictionary store loaded")

	return &Store{codec: c, elements: elements}, nil
}

// Query resolves a token through a fixed fallback ladder and returns a
// freshly decompressed element on the first hit:
//
//  1. the token as given
//  2. lowercased, when that differs
//  3. first rune upper, rest lower, when that differs
//  4. for Czech: the lemma table's mapping, title-cased then lowercased
//
// Ordering matters — entries can exist under several casings and the most
// specific spelling wins.
func (s *Store) Query(lang entity.Language, key string) (*entity.DictionaryElement, bool) {
	if el, ok := s.get(lang, key); ok {
		return el, true
	}

	if lower := strings.ToLower(key); lower != key {
		if el, ok := s.get(lang, lower); ok {
			return el, true
		}
	}

	if titled := titleFirst(key); titled != key {
		if el, ok := s.get(lang, titled); ok {
			return el, true
		}
	}

	if lang == entity.LanguageCzech {
		lemma, ok := CzechLemma(key)
		if !ok {
			lemma, ok = CzechLemma(strings.ToLower(key))
		}
		if ok && lemma != key {
			if el, found := s.get(lang, titleFirst(lemma)); found {
				return el, true
			}
			if el, found := s.get(lang, strings.ToLower(lemma)); found {
				return el, true
			}
		}
	}

	return nil, false
}

// Len reports how many elements the store holds.
func (s *Store) Len() int { return len(s.elements) }

func (s *Store) get(lang entity.Language, key string) (*entity.DictionaryElement, bool) {
	w, ok := s.elements[storeKey{Lang: lang, Key: key}]
	if !ok {
		return nil, false
	}
	el, err := s.codec.Decompress(w)
	if err != nil {
		// A blob that round-tripped through the builder cannot fail to
		// inflate unless the dump was corrupt. Load checks only the dump
		// framing, not the blobs, so such a blob is found here; it is
		// treated as a miss rather than poisoning the request.
		return nil, false
	}
	return el, true
}

func titleFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	head := unicode.ToUpper(runes[0])
	return string(head) + strings.ToLower(string(runes[1:]))
}
