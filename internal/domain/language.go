package domain

// Language is an ISO 639-1 language code supported by the translation
// and dictionary providers.
type Language string

// Supported languages.
const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
	LanguageSpanish Language = "es"
	LanguageFrench  Language = "fr"
	LanguageItalian Language = "it"
)

// IsValid reports whether the language is one of the supported codes.
func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageGerman, LanguageSpanish, LanguageFrench, LanguageItalian:
		return true
	}
	return false
}

// IsEnglish reports whether the language is English. The lexical dictionary
// only accepts English input, so call order during enrichment depends on
// which side of a deck's language pair is English.
func (l Language) IsEnglish() bool {
	return l == LanguageEnglish
}

// DisplayName returns the English name of the language, used when prompting
// the LLM translation provider.
func (l Language) DisplayName() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageGerman:
		return "German"
	case LanguageSpanish:
		return "Spanish"
	case LanguageFrench:
		return "French"
	case LanguageItalian:
		return "Italian"
	}
	return string(l)
}

// ValidLanguagePair reports whether exactly one of the two languages is
// English. Decks must satisfy this invariant; it is enforced at the
// validation layer and assumed by the enrichment orchestrator.
func ValidLanguagePair(from, to Language) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	return from.IsEnglish() != to.IsEnglish()
}
