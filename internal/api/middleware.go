package api

const (
	sessionCookieName  = "nibble_session"
	languageCookieName = "nibble_lang"
	contextLanguageKey = "current_language"
)
