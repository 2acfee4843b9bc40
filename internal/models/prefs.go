package models

// Language codes supported by the interface.
const (
	LanguageSwedish = "sv"
	LanguageEnglish = "en"
)

// Theme values supported by the interface.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Preferences holds per-client interface settings, read at startup and
// written on every change.
type Preferences struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

// DefaultPreferences returns the preferences for a first-time client.
func DefaultPreferences() Preferences {
	return Preferences{Language: LanguageSwedish, Theme: ThemeSystem}
}

// ValidLanguage reports whether the language code is supported.
func ValidLanguage(lang string) bool {
	return lang == LanguageSwedish || lang == LanguageEnglish
}

// ValidTheme reports whether the theme value is supported.
func ValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark || theme == ThemeSystem
}
