package dateformat

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// ErrUnsupportedLocale is returned when no layouts exist for a locale
var ErrUnsupportedLocale = errors.New("unsupported locale")

// layouts holds the time.Format layouts of one locale. English month and
// weekday names in a layout are translated when formatting.
type layouts struct {
	date     string
	dateTime string
	time     string
	weekday  string
}

func (l layouts) forStyle(style Style) string {
	switch style {
	case DateOnly:
		return l.date
	case DateAndTime:
		return l.dateTime
	case TimeOnly:
		return l.time
	case WeekdayName:
		return l.weekday
	}
	return ""
}

// Long date, long date + short time, short time, full weekday name
var localeLayouts = map[string]layouts{
	"en_US": {"January 2, 2006", "January 2, 2006 at 3:04 PM", "3:04 PM", "Monday"},
	"en_GB": {"2 January 2006", "2 January 2006 at 15:04", "15:04", "Monday"},
	"zh_TW": {"2006年1月2日", "2006年1月2日 15:04", "15:04", "Monday"},
	"zh_CN": {"2006年1月2日", "2006年1月2日 15:04", "15:04", "Monday"},
	"zh_HK": {"2006年1月2日", "2006年1月2日 15:04", "15:04", "Monday"},
	"ja_JP": {"2006年1月2日", "2006年1月2日 15:04", "15:04", "Monday"},
	"ko_KR": {"2006년 1월 2일", "2006년 1월 2일 15:04", "15:04", "Monday"},
	"de_DE": {"2. January 2006", "2. January 2006 um 15:04", "15:04", "Monday"},
	"fr_FR": {"2 January 2006", "2 January 2006 à 15:04", "15:04", "Monday"},
	"es_ES": {"2 de January de 2006", "2 de January de 2006, 15:04", "15:04", "Monday"},
	"ru_RU": {"2 January 2006 г.", "2 January 2006 г., 15:04", "15:04", "Monday"},
}

var (
	supportedIDs  []string
	supportedTags []language.Tag
	matcher       language.Matcher
)

func init() {
	for id := range localeLayouts {
		supportedIDs = append(supportedIDs, id)
	}
	// stable order so the matcher's index is reproducible
	sort.Strings(supportedIDs)
	for _, id := range supportedIDs {
		supportedTags = append(supportedTags, language.MustParse(bcp47(id)))
	}
	matcher = language.NewMatcher(supportedTags)
}

// SupportedLocales lists the locale ids New accepts, sorted
func SupportedLocales() []string {
	out := make([]string, len(supportedIDs))
	copy(out, supportedIDs)
	return out
}

// resolveLocale canonicalizes an id such as "zh_tw" or "zh-TW" to one of the
// supported ids. A bare language ("ja") or another region of a supported
// language ("de_AT") resolves to the supported region of that language.
func resolveLocale(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty locale", ErrUnsupportedLocale)
	}

	tag, err := language.Parse(bcp47(id))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedLocale, id, err)
	}

	// the matcher falls back across languages (sw -> en), only a
	// regional or script variant of the same language is accepted
	_, idx, conf := matcher.Match(tag)
	requested, _ := tag.Base()
	matched, _ := supportedTags[idx].Base()
	if conf == language.No || requested != matched {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, id)
	}
	return supportedIDs[idx], nil
}

func bcp47(id string) string {
	return strings.ReplaceAll(id, "_", "-")
}
