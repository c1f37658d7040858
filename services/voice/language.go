package voice

import "github.com/abadojack/whatlanggo"

const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// DetectLanguage returns "ar" or "en" for a transcript. The Arabic script
// range check runs first: it is more reliable than statistical detection for
// the short, mixed commands a voice assistant sees. Anything the detector
// cannot place defaults to English.
func DetectLanguage(text string) string {
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06FF {
			return LangArabic
		}
	}

	info := whatlanggo.Detect(text)
	if info.Lang == whatlanggo.Arb {
		return LangArabic
	}
	return LangEnglish
}

// NLUModelFor maps a detected language to its dedicated NLU backend. Models
// are never shared across languages.
func NLUModelFor(lang string) string {
	if lang == LangArabic {
		return "nlu-ar"
	}
	return "nlu-en"
}
