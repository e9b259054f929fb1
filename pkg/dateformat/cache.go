// Package dateformat provides locale-pinned display formatting through a
// cache of formatters that are built once per style and then shared.
package dateformat

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goodsign/monday"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Formatter renders and parses times in a single fixed layout.
// Implementations are immutable and safe for concurrent use.
type Formatter interface {
	Format(t time.Time) string
	Parse(text string) (time.Time, bool)
}

// Options configures a Cache
type Options struct {
	// Locale id such as "zh_TW" or "en-US"
	Locale string
	// Location times are converted to before formatting. Defaults to time.Local.
	Location *time.Location
	Logger   *zap.Logger
	// Registerer receives the construction counter. Nil leaves it unregistered.
	Registerer prometheus.Registerer
}

// Cache hands out one Formatter per Style, constructing each on first use.
// The locale and location are fixed for the lifetime of the Cache.
type Cache struct {
	locale   string
	location *time.Location
	layouts  layouts
	logger   *zap.Logger

	constructions *prometheus.CounterVec
	newFormatter  func(style Style, layout string) Formatter

	mu      sync.RWMutex
	entries [numStyles]Formatter
}

// New creates a Cache pinned to opts.Locale. An unknown locale fails with
// ErrUnsupportedLocale.
func New(opts Options) (*Cache, error) {
	locale, err := resolveLocale(opts.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter cache: %w", err)
	}

	location := opts.Location
	if location == nil {
		location = time.Local
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	constructions, err := constructionCounter(opts.Registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register formatter metrics: %w", err)
	}

	c := &Cache{
		locale:        locale,
		location:      location,
		layouts:       localeLayouts[locale],
		logger:        logger,
		constructions: constructions,
	}
	c.newFormatter = c.layoutFormatter

	logger.Debug("Formatter cache created",
		zap.String("locale", locale),
		zap.String("requested_locale", opts.Locale),
		zap.String("location", location.String()))

	return c, nil
}

func constructionCounter(reg prometheus.Registerer) (*prometheus.CounterVec, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "datetimes_formatter_constructions_total",
		Help: "Number of formatters constructed, by style and locale.",
	}, []string{"style", "locale"})

	if reg == nil {
		return counter, nil
	}

	if err := reg.Register(counter); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return counter, nil
}

// Locale returns the canonical locale id the cache is pinned to
func (c *Cache) Locale() string {
	return c.locale
}

// Location returns the location times are formatted in
func (c *Cache) Location() *time.Location {
	return c.location
}

// Formatter returns the shared formatter for style, constructing it on
// first use. It panics on a style outside the declared constants.
func (c *Cache) Formatter(style Style) Formatter {
	if !style.valid() {
		panic(fmt.Sprintf("dateformat: invalid style %d", int(style)))
	}

	c.mu.RLock()
	f := c.entries[style]
	c.mu.RUnlock()
	if f != nil {
		return f
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// another caller may have won the race between the two locks
	if f := c.entries[style]; f != nil {
		return f
	}

	f = c.newFormatter(style, c.layouts.forStyle(style))
	c.entries[style] = f
	c.constructions.WithLabelValues(style.String(), c.locale).Inc()

	c.logger.Debug("Formatter constructed",
		zap.Stringer("style", style),
		zap.String("locale", c.locale))

	return f
}

// Format renders t with the formatter for style
func (c *Cache) Format(style Style, t time.Time) string {
	return c.Formatter(style).Format(t)
}

// FormatDate renders the long date of t
func (c *Cache) FormatDate(t time.Time) string {
	return c.Format(DateOnly, t)
}

// FormatDateTime renders the long date and short time of t
func (c *Cache) FormatDateTime(t time.Time) string {
	return c.Format(DateAndTime, t)
}

// FormatTime renders the short time of t
func (c *Cache) FormatTime(t time.Time) string {
	return c.Format(TimeOnly, t)
}

// FormatWeekday renders the full weekday name of t
func (c *Cache) FormatWeekday(t time.Time) string {
	return c.Format(WeekdayName, t)
}

// ParseTime parses text in the short time layout of the pinned locale.
// Only the hour and minute of the result are meaningful. It returns false
// when text does not match.
func (c *Cache) ParseTime(text string) (time.Time, bool) {
	return c.Formatter(TimeOnly).Parse(text)
}

func (c *Cache) layoutFormatter(_ Style, layout string) Formatter {
	return &layoutFormatter{
		layout:   layout,
		locale:   monday.Locale(c.locale),
		location: c.location,
	}
}

type layoutFormatter struct {
	layout   string
	locale   monday.Locale
	location *time.Location
}

func (f *layoutFormatter) Format(t time.Time) string {
	return monday.Format(t.In(f.location), f.layout, f.locale)
}

func (f *layoutFormatter) Parse(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	t, err := monday.ParseInLocation(f.layout, text, f.location, f.locale)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
