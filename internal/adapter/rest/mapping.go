package rest

import (
	"github.com/samber/lo"

	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

type fragmentDTO struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type definitionDTO struct {
	Text []fragmentDTO `json:"text"`
	Tags []string      `json:"tags"`
}

type elementDTO struct {
	Key              string          `json:"key"`
	Word             string          `json:"word"`
	Lang             string          `json:"lang"`
	Audio            []string        `json:"audio"`
	IPA              string          `json:"ipa,omitempty"`
	WordTypes        []string        `json:"word_types"`
	Definitions      []definitionDTO `json:"definitions"`
	DereferencedText string          `json:"dereferenced_text,omitempty"`
}

type definitionResponse struct {
	Element        elementDTO `json:"element"`
	WiktionaryLink string     `json:"wiktionary_link"`
}

func toElementDTO(el *entity.DictionaryElement) elementDTO {
	return elementDTO{
		Key:       el.Key,
		Word:      el.Word,
		Lang:      el.Lang.String(),
		Audio:     el.Audio,
		IPA:       el.IPA,
		WordTypes: el.WordTypes,
		Definitions: lo.Map(el.Definitions, func(d entity.Definition, _ int) definitionDTO {
			return definitionDTO{
				Text: lo.Map(d.Text, func(f entity.Fragment, _ int) fragmentDTO {
					kind := "plain"
					if f.IsLink() {
						kind = "link"
					}
					return fragmentDTO{Type: kind, Text: f.Text}
				}),
				Tags: d.Tags,
			}
		}),
		DereferencedText: el.DereferencedText,
	}
}
