// Package relday labels a date relative to today: "TODAY", "TOMORROW",
// "YESTERDAY", or the weekday name for anything further away.
package relday

import (
	"time"

	"github.com/username/datetimes/pkg/dateformat"
	"github.com/username/datetimes/pkg/dateutil"
)

// Token is a localization key for a relative day
type Token string

// Relative day tokens, passed to the Translator as keys
const (
	TokenToday     Token = "TODAY"
	TokenTomorrow  Token = "TOMORROW"
	TokenYesterday Token = "YESTERDAY"
)

// Tokens lists the relative day tokens
func Tokens() []Token {
	return []Token{TokenToday, TokenTomorrow, TokenYesterday}
}

// Translator looks up the display text of a localization key
type Translator interface {
	Translate(key string) string
}

// Labeler produces relative weekday labels
type Labeler struct {
	cache      *dateformat.Cache
	translator Translator
	now        func() time.Time
}

// Option configures a Labeler
type Option func(*Labeler)

// WithClock replaces time.Now as the source of "today"
func WithClock(now func() time.Time) Option {
	return func(l *Labeler) {
		l.now = now
	}
}

// New creates a Labeler formatting weekday names with cache. A nil
// translator makes Label return the raw tokens.
func New(cache *dateformat.Cache, translator Translator, opts ...Option) *Labeler {
	l := &Labeler{
		cache:      cache,
		translator: translator,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Token returns the relative day token for date, or false when date is
// neither today, tomorrow nor yesterday. Days are compared as calendar
// dates in the cache's location, never as 24h spans.
func (l *Labeler) Token(date time.Time) (Token, bool) {
	loc := l.cache.Location()
	switch dateutil.DaysBetween(l.now().In(loc), date.In(loc)) {
	case 0:
		return TokenToday, true
	case 1:
		return TokenTomorrow, true
	case -1:
		return TokenYesterday, true
	}
	return "", false
}

// Label returns the translated relative token for date, or its full weekday
// name in the cache's locale
func (l *Labeler) Label(date time.Time) string {
	if token, ok := l.Token(date); ok {
		if l.translator == nil {
			return string(token)
		}
		return l.translator.Translate(string(token))
	}
	return l.cache.Format(dateformat.WeekdayName, date)
}
