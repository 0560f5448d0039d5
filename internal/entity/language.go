package entity

import "strings"

// Language tags a dictionary entry with the target language it belongs to.
// The zero value is LanguageUnspecified.
type Language string

const (
	LanguageUnspecified Language = ""

	LanguageGerman           Language = "german"
	LanguageEnglish          Language = "english"
	LanguageFrench           Language = "french"
	LanguageSpanish          Language = "spanish"
	LanguageItalian          Language = "italian"
	LanguagePortuguese       Language = "portuguese"
	LanguageDutch            Language = "dutch"
	LanguageSwedish          Language = "swedish"
	LanguageDanish           Language = "danish"
	LanguageNorwegianBokmal  Language = "norwegian-bokmal"
	LanguageNorwegianNynorsk Language = "norwegian-nynorsk"
	LanguagePolish           Language = "polish"
	LanguageCzech            Language = "czech"
	LanguageSlovak           Language = "slovak"
	LanguageRussian          Language = "russian"
	LanguageUkrainian        Language = "ukrainian"
	LanguageGreek            Language = "greek"
	LanguageHungarian        Language = "hungarian"
	LanguageRomanian         Language = "romanian"
	LanguageTurkish          Language = "turkish"
	LanguageJapanese         Language = "japanese"
	LanguageKorean           Language = "korean"
	LanguageMandarin         Language = "mandarin"
	LanguageVietnamese       Language = "vietnamese"
	LanguageIndonesian       Language = "indonesian"
)

// wiktionaryCodes maps a Wiktionary lang_code to the languages it produces
// entries for. A code may fan out to several tags: "no" covers both written
// Norwegians, so one source line yields an entry per tag.
var wiktionaryCodes = map[string][]Language{
	"de":  {LanguageGerman},
	"en":  {LanguageEnglish},
	"fr":  {LanguageFrench},
	"es":  {LanguageSpanish},
	"it":  {LanguageItalian},
	"pt":  {LanguagePortuguese},
	"nl":  {LanguageDutch},
	"sv":  {LanguageSwedish},
	"da":  {LanguageDanish},
	"no":  {LanguageNorwegianBokmal, LanguageNorwegianNynorsk},
	"nb":  {LanguageNorwegianBokmal},
	"nn":  {LanguageNorwegianNynorsk},
	"pl":  {LanguagePolish},
	"cs":  {LanguageCzech},
	"sk":  {LanguageSlovak},
	"ru":  {LanguageRussian},
	"uk":  {LanguageUkrainian},
	"el":  {LanguageGreek},
	"hu":  {LanguageHungarian},
	"ro":  {LanguageRomanian},
	"tr":  {LanguageTurkish},
	"ja":  {LanguageJapanese},
	"ko":  {LanguageKorean},
	"zh":  {LanguageMandarin},
	"cmn": {LanguageMandarin},
	"vi":  {LanguageVietnamese},
	"id":  {LanguageIndonesian},
}

// wiktionaryLongNames holds the section anchors used by en.wiktionary.org.
var wiktionaryLongNames = map[Language]string{
	LanguageGerman:           "German",
	LanguageEnglish:          "English",
	LanguageFrench:           "French",
	LanguageSpanish:          "Spanish",
	LanguageItalian:          "Italian",
	LanguagePortuguese:       "Portuguese",
	LanguageDutch:            "Dutch",
	LanguageSwedish:          "Swedish",
	LanguageDanish:           "Danish",
	LanguageNorwegianBokmal:  "Norwegian_Bokmål",
	LanguageNorwegianNynorsk: "Norwegian_Nynorsk",
	LanguagePolish:           "Polish",
	LanguageCzech:            "Czech",
	LanguageSlovak:           "Slovak",
	LanguageRussian:          "Russian",
	LanguageUkrainian:        "Ukrainian",
	LanguageGreek:            "Greek",
	LanguageHungarian:        "Hungarian",
	LanguageRomanian:         "Romanian",
	LanguageTurkish:          "Turkish",
	LanguageJapanese:         "Japanese",
	LanguageKorean:           "Korean",
	LanguageMandarin:         "Chinese",
	LanguageVietnamese:       "Vietnamese",
	LanguageIndonesian:       "Indonesian",
}

// LanguagesForWiktionaryCode expands a Wiktionary lang_code into zero or more
// language tags. Unknown codes return nil.
func LanguagesForWiktionaryCode(code string) []Language {
	return wiktionaryCodes[code]
}

// ParseLanguage resolves a user-supplied identifier: either a tag value
// ("czech") or a Wiktionary code that maps to exactly one language ("cs").
// Ambiguous codes and unknown identifiers return LanguageUnspecified.
func ParseLanguage(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LanguageUnspecified
	}
	if _, ok := wiktionaryLongNames[Language(s)]; ok {
		return Language(s)
	}
	if langs := wiktionaryCodes[s]; len(langs) == 1 {
		return langs[0]
	}
	return LanguageUnspecified
}

// WiktionaryLongName returns the en.wiktionary.org section anchor for the
// language, or an empty string for unknown tags.
func (l Language) WiktionaryLongName() string {
	return wiktionaryLongNames[l]
}

func (l Language) String() string { return string(l) }
