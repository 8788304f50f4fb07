package config

const (
	LangEN = "en"
	LangES = "es"
)

// SupportedLanguages lists the languages with a message file.
var SupportedLanguages = []string{LangEN, LangES}

func isSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
