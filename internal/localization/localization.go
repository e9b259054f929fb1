package localization

import (
	"strings"

	"github.com/username/datetimes/pkg/relday"
)

// builtin translations of the relative day tokens, keyed by language
var builtin = map[string]map[relday.Token]string{
	"en":    {relday.TokenToday: "Today", relday.TokenTomorrow: "Tomorrow", relday.TokenYesterday: "Yesterday"},
	"zh_TW": {relday.TokenToday: "今天", relday.TokenTomorrow: "明天", relday.TokenYesterday: "昨天"},
	"zh_HK": {relday.TokenToday: "今天", relday.TokenTomorrow: "明天", relday.TokenYesterday: "昨天"},
	"zh_CN": {relday.TokenToday: "今天", relday.TokenTomorrow: "明天", relday.TokenYesterday: "昨天"},
	"ja":    {relday.TokenToday: "今日", relday.TokenTomorrow: "明日", relday.TokenYesterday: "昨日"},
	"ko":    {relday.TokenToday: "오늘", relday.TokenTomorrow: "내일", relday.TokenYesterday: "어제"},
	"de":    {relday.TokenToday: "Heute", relday.TokenTomorrow: "Morgen", relday.TokenYesterday: "Gestern"},
	"fr":    {relday.TokenToday: "Aujourd’hui", relday.TokenTomorrow: "Demain", relday.TokenYesterday: "Hier"},
	"es":    {relday.TokenToday: "Hoy", relday.TokenTomorrow: "Mañana", relday.TokenYesterday: "Ayer"},
	"ru":    {relday.TokenToday: "Сегодня", relday.TokenTomorrow: "Завтра", relday.TokenYesterday: "Вчера"},
}

// Table is a flat key -> text lookup. Missing keys translate to themselves.
type Table map[string]string

// Translate implements relday.Translator
func (t Table) Translate(key string) string {
	if text, ok := t[key]; ok && text != "" {
		return text
	}
	return key
}

// ForLocale returns the built-in table for locale (a canonical id such as
// "zh_TW") with overrides applied on top. Override keys are matched case
// insensitively against the tokens; empty overrides are skipped.
func ForLocale(locale string, overrides map[string]string) Table {
	table := Table{}

	entries, ok := builtin[locale]
	if !ok {
		lang, _, _ := strings.Cut(locale, "_")
		entries = builtin[lang]
	}
	for token, text := range entries {
		table[string(token)] = text
	}

	for key, text := range overrides {
		if text == "" {
			continue
		}
		table[strings.ToUpper(key)] = text
	}

	return table
}
