package entity

import (
	"fmt"
	"strings"
)

// FragmentKind distinguishes the two variants of a definition fragment.
type FragmentKind uint8

const (
	// FragmentPlain is filler or an unrecognised span.
	FragmentPlain FragmentKind = iota
	// FragmentLink is a span that is itself a known headword.
	FragmentLink
)

// Fragment is one span of hyperlinked definition text. Concatenating the
// Text of all fragments in a definition reconstructs the source gloss
// character for character.
type Fragment struct {
	Kind FragmentKind `json:"kind"`
	Text string       `json:"text"`
}

// Plain builds a non-link fragment.
func Plain(text string) Fragment { return Fragment{Kind: FragmentPlain, Text: text} }

// Link builds a fragment whose span is a known headword.
func Link(word string) Fragment { return Fragment{Kind: FragmentLink, Text: word} }

func (f Fragment) IsLink() bool { return f.Kind == FragmentLink }

// Definition is a single sense: tokenized gloss text plus its surviving
// sense tags, kept sorted ascending.
type Definition struct {
	Text []Fragment `json:"text"`
	Tags []string   `json:"tags"`
}

// PlainText flattens the fragment sequence back into the gloss string.
func (d Definition) PlainText() string {
	var b strings.Builder
	for _, f := range d.Text {
		b.WriteString(f.Text)
	}
	return b.String()
}

// SameText reports whether two definitions carry identical fragment
// sequences, ignoring tags. Merging consolidates on this relation.
func (d Definition) SameText(other Definition) bool {
	if len(d.Text) != len(other.Text) {
		return false
	}
	for i, f := range d.Text {
		if f != other.Text[i] {
			return false
		}
	}
	return true
}

// DictionaryElement is the canonical dictionary record.
//
// Key is the token the entry is stored under and normally equals Word.
// After dereferencing an inflected form, Key keeps the inflected spelling
// while Word carries the lemma's headword and DereferencedText holds the
// relation label ("past participle of").
type DictionaryElement struct {
	Key              string       `json:"key"`
	Word             string       `json:"word"`
	Lang             Language     `json:"lang"`
	Audio            []string     `json:"audio,omitempty"`
	IPA              string       `json:"ipa,omitempty"`
	WordTypes        []string     `json:"word_types"`
	Definitions      []Definition `json:"definitions"`
	DereferencedText string       `json:"dereferenced_text,omitempty"`
}

// WiktionaryLink builds the en.wiktionary.org URL for the element's
// headword, anchored to its language section.
func (e *DictionaryElement) WiktionaryLink() string {
	word := strings.ReplaceAll(e.Word, " ", "")
	return fmt.Sprintf("https://en.wiktionary.org/wiki/%s#%s", word, e.Lang.WiktionaryLongName())
}

// CompressedElement wraps one element's compressed serialization together
// with the (Key, Lang) pair it is indexed under in the dump and the store.
type CompressedElement struct {
	Key  string
	Lang Language
	Blob []byte
}
