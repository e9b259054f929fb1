package dateformat

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

var taipei = time.FixedZone("CST", 8*60*60)

func newTestCache(t *testing.T, locale string) *Cache {
	t.Helper()
	c, err := New(Options{Locale: locale, Location: time.UTC, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("New(%q) error = %v", locale, err)
	}
	return c
}

// countingConstructor swaps in a constructor that counts calls per style
func countingConstructor(c *Cache) *[numStyles]int32 {
	var counts [numStyles]int32
	next := c.newFormatter
	c.newFormatter = func(style Style, layout string) Formatter {
		atomic.AddInt32(&counts[style], 1)
		// widen the race window between the read and write locks
		time.Sleep(time.Millisecond)
		return next(style, layout)
	}
	return &counts
}

func TestNewResolvesLocale(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"zh_tw", "zh_TW"},
		{"zh-TW", "zh_TW"},
		{"en_US", "en_US"},
		{"en-gb", "en_GB"},
		{" ja_JP ", "ja_JP"},
		{"ru", "ru_RU"},
		{"de_AT", "de_DE"},
		{"zh_SG", "zh_CN"},
		{"zh-Hant", "zh_TW"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := newTestCache(t, tt.input)
			if c.Locale() != tt.want {
				t.Errorf("Locale() = %q, want %q", c.Locale(), tt.want)
			}
		})
	}
}

func TestNewUnsupportedLocale(t *testing.T) {
	for _, input := range []string{"", "sw_KE", "pt_BR", "it_IT", "ar_EG", "nl_NL", "not a locale!"} {
		t.Run(input, func(t *testing.T) {
			_, err := New(Options{Locale: input})
			if !errors.Is(err, ErrUnsupportedLocale) {
				t.Errorf("New(%q) error = %v, want ErrUnsupportedLocale", input, err)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	c, err := New(Options{Locale: "en_US"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Location() != time.Local {
		t.Errorf("Location() = %v, want Local", c.Location())
	}
}

func TestFormatEnglish(t *testing.T) {
	c := newTestCache(t, "en_US")
	date := time.Date(2024, 3, 15, 15, 4, 0, 0, time.UTC)

	tests := []struct {
		style Style
		want  string
	}{
		{DateOnly, "March 15, 2024"},
		{DateAndTime, "March 15, 2024 at 3:04 PM"},
		{TimeOnly, "3:04 PM"},
		{WeekdayName, "Friday"},
	}

	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			if got := c.Format(tt.style, date); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.style, got, tt.want)
			}
		})
	}
}

func TestFormatTraditionalChinese(t *testing.T) {
	c := newTestCache(t, "zh_TW")
	date := time.Date(2024, 3, 15, 15, 4, 0, 0, time.UTC)

	if got, want := c.FormatDate(date), "2024年3月15日"; got != want {
		t.Errorf("FormatDate() = %q, want %q", got, want)
	}
	if got, want := c.FormatDateTime(date), "2024年3月15日 15:04"; got != want {
		t.Errorf("FormatDateTime() = %q, want %q", got, want)
	}
	if got, want := c.FormatTime(date), "15:04"; got != want {
		t.Errorf("FormatTime() = %q, want %q", got, want)
	}
	if got, want := c.FormatWeekday(date), "星期五"; got != want {
		t.Errorf("FormatWeekday() = %q, want %q", got, want)
	}
}

func TestFormatConvertsToPinnedLocation(t *testing.T) {
	c, err := New(Options{Locale: "zh_TW", Location: taipei})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// 20:30 UTC is already the next day in Taipei
	utc := time.Date(2024, 3, 15, 20, 30, 0, 0, time.UTC)
	if got, want := c.FormatDateTime(utc), "2024年3月16日 04:30"; got != want {
		t.Errorf("FormatDateTime() = %q, want %q", got, want)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		locale     string
		input      string
		wantOK     bool
		wantHour   int
		wantMinute int
	}{
		{"en_US", "3:04 PM", true, 15, 4},
		{"en_US", " 9:30 AM ", true, 9, 30},
		{"en_US", "15:04", false, 0, 0},
		{"zh_TW", "15:04", true, 15, 4},
		{"zh_TW", "00:00", true, 0, 0},
		{"zh_TW", "25:00", false, 0, 0},
		{"zh_TW", "noon", false, 0, 0},
		{"zh_TW", "", false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.input, func(t *testing.T) {
			c := newTestCache(t, tt.locale)
			got, ok := c.ParseTime(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseTime(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Hour() != tt.wantHour || got.Minute() != tt.wantMinute {
				t.Errorf("ParseTime(%q) = %02d:%02d, want %02d:%02d",
					tt.input, got.Hour(), got.Minute(), tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestFormatParseTimeRoundTrip(t *testing.T) {
	for _, locale := range SupportedLocales() {
		c := newTestCache(t, locale)
		in := time.Date(2024, 3, 15, 18, 45, 0, 0, time.UTC)

		text := c.FormatTime(in)
		got, ok := c.ParseTime(text)
		if !ok {
			t.Errorf("%s: ParseTime(%q) failed", locale, text)
			continue
		}
		if got.Hour() != 18 || got.Minute() != 45 {
			t.Errorf("%s: ParseTime(%q) = %v", locale, text, got)
		}
	}
}

func TestFormatterConstructedOncePerStyle(t *testing.T) {
	c := newTestCache(t, "en_US")
	counts := countingConstructor(c)

	x := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	y := time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)

	first := c.Formatter(DateOnly)
	c.Format(DateOnly, x)
	c.Format(DateOnly, y)

	if got := atomic.LoadInt32(&counts[DateOnly]); got != 1 {
		t.Errorf("DateOnly constructed %d times, want 1", got)
	}
	if c.Formatter(DateOnly) != first {
		t.Error("Formatter(DateOnly) returned a different instance")
	}
	if got := atomic.LoadInt32(&counts[TimeOnly]); got != 0 {
		t.Errorf("TimeOnly constructed %d times before use, want 0", got)
	}
}

func TestFormatterConcurrentFirstAccess(t *testing.T) {
	c := newTestCache(t, "zh_TW")
	counts := countingConstructor(c)
	date := time.Date(2024, 3, 15, 15, 4, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			style := Styles()[i%numStyles]
			c.Format(style, date)
			if style == TimeOnly {
				c.ParseTime("12:00")
			}
		}(i)
	}
	wg.Wait()

	for _, style := range Styles() {
		if got := atomic.LoadInt32(&counts[style]); got != 1 {
			t.Errorf("%v constructed %d times, want 1", style, got)
		}
	}
}

func TestConstructionCounter(t *testing.T) {
	reg := prometheus.NewRegistry()

	c, err := New(Options{Locale: "en_US", Location: time.UTC, Registerer: reg})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	// a second cache on the same registry shares the counter
	other, err := New(Options{Locale: "zh_TW", Location: time.UTC, Registerer: reg})
	if err != nil {
		t.Fatalf("New() second cache error = %v", err)
	}

	now := time.Now()
	c.FormatDate(now)
	c.FormatDate(now)
	c.FormatWeekday(now)
	other.FormatDate(now)

	if got := testutil.ToFloat64(c.constructions.WithLabelValues("date", "en_US")); got != 1 {
		t.Errorf("date/en_US constructions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.constructions.WithLabelValues("weekday", "en_US")); got != 1 {
		t.Errorf("weekday/en_US constructions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.constructions.WithLabelValues("date", "zh_TW")); got != 1 {
		t.Errorf("date/zh_TW constructions = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(c.constructions); got != 3 {
		t.Errorf("series count = %d, want 3", got)
	}
}

func TestFormatterInvalidStylePanics(t *testing.T) {
	c := newTestCache(t, "en_US")
	defer func() {
		if recover() == nil {
			t.Error("Formatter(Style(42)) did not panic")
		}
	}()
	c.Formatter(Style(42))
}

func TestParseStyle(t *testing.T) {
	for _, style := range Styles() {
		got, err := ParseStyle(style.String())
		if err != nil || got != style {
			t.Errorf("ParseStyle(%q) = %v, %v; want %v", style.String(), got, err, style)
		}
	}
	if _, err := ParseStyle("fancy"); err == nil {
		t.Error("ParseStyle(\"fancy\") expected error")
	}
}
