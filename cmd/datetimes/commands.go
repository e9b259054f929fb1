package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/datetimes/pkg/dateformat"
	"github.com/username/datetimes/pkg/dateutil"
	"github.com/username/datetimes/pkg/relday"
	"go.uber.org/zap"
)

// instantLayouts are tried in order by parseInstant
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseInstant reads an RFC 3339 time, a local date-time or a civil date
// (midnight) in loc. An empty string means now.
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().In(loc), nil
	}

	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	date, err := dateutil.ParseCivilDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as a time or date", s)
	}
	return date.In(loc), nil
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func epochDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "epoch-day DATE",
		Short: "Print the days since 1970-01-01 of a YYYY-MM-DD date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseCivilDate(args[0])
			if err != nil {
				return err
			}
			day := date.EpochDay()
			logger.Debug("Converted date to epoch day",
				zap.Stringer("date", date),
				zap.Int64("epoch_day", int64(day)))
			fmt.Fprintln(cmd.OutOrStdout(), day)
			return nil
		},
	}
}

func fromEpochDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-epoch-day N",
		Short: "Print the date N days after 1970-01-01",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid epoch day %q: %w", args[0], err)
			}
			date := dateutil.FromEpochDay(dateutil.EpochDay(n))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", date, date.Weekday())
			return nil
		},
	}
}

func leapYearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leap-year YEAR",
		Short: "Report whether YEAR is a leap year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dateutil.IsLeapYear(year))
			return nil
		},
	}
}

func minutesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "minutes [TIME]",
		Short: "Print the minutes since midnight of TIME (default now)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseInstant(optionalArg(args), a.cache.Location())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dateutil.ToMinutesInDay(t))
			return nil
		},
	}
}

func atMinutesCmd(a *app) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "at-minutes N",
		Short: "Print the base date at N minutes after midnight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid minutes %q: %w", args[0], err)
			}
			baseTime, err := parseInstant(base, a.cache.Location())
			if err != nil {
				return err
			}
			t := dateutil.FromMinutesInDay(dateutil.MinutesInDay(n), baseTime)
			fmt.Fprintln(cmd.OutOrStdout(), t.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Base date or time (default today)")

	return cmd
}

func millisCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "millis [TIME]",
		Short: "Print TIME (default now) as milliseconds since the Unix epoch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseInstant(optionalArg(args), a.cache.Location())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(dateutil.ToMillis(t), 'f', -1, 64))
			return nil
		},
	}
}

func fromMillisCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "from-millis MS",
		Short: "Print the time MS milliseconds after the Unix epoch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid milliseconds %q: %w", args[0], err)
			}
			t := dateutil.FromMillis(ms).In(a.cache.Location())
			fmt.Fprintln(cmd.OutOrStdout(), t.Format(time.RFC3339Nano))
			return nil
		},
	}
}

func ageCmd(a *app) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "age BIRTH",
		Short: "Print the whole years from BIRTH to --at (default today)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := dateutil.ParseCivilDate(args[0])
			if err != nil {
				return fmt.Errorf("invalid birth date: %w", err)
			}

			reference := dateutil.Today(a.cache.Location())
			if at != "" {
				if reference, err = dateutil.ParseCivilDate(at); err != nil {
					return fmt.Errorf("invalid --at date: %w", err)
				}
			}

			age := dateutil.Age(birth, reference)
			if age < 0 {
				logger.Warn("Reference date precedes birth date",
					zap.Stringer("birth", birth),
					zap.Stringer("reference", reference))
			}
			fmt.Fprintln(cmd.OutOrStdout(), age)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Reference date YYYY-MM-DD")

	return cmd
}

func dayBoundsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "day-bounds [TIME]",
		Short: "Print the first and last instant of the day containing TIME (default now)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseInstant(optionalArg(args), a.cache.Location())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dateutil.StartOfDay(t).Format(time.RFC3339Nano))
			fmt.Fprintln(cmd.OutOrStdout(), dateutil.EndOfDay(t).Format(time.RFC3339Nano))
			return nil
		},
	}
}

func labelCmd(a *app) *cobra.Command {
	var now string

	cmd := &cobra.Command{
		Use:   "label [TIME]",
		Short: "Print today/tomorrow/yesterday or the weekday name of TIME",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseInstant(optionalArg(args), a.cache.Location())
			if err != nil {
				return err
			}

			labeler := a.labeler
			if now != "" {
				reference, err := parseInstant(now, a.cache.Location())
				if err != nil {
					return fmt.Errorf("invalid --now: %w", err)
				}
				labeler = relday.New(a.cache, a.translator, relday.WithClock(func() time.Time { return reference }))
			}

			fmt.Fprintln(cmd.OutOrStdout(), labeler.Label(t))
			return nil
		},
	}

	cmd.Flags().StringVar(&now, "now", "", "Treat this date or time as now")

	return cmd
}

func formatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "format STYLE [TIME]",
		Short:     "Render TIME (default now) in STYLE: date, datetime, time or weekday",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"date", "datetime", "time", "weekday"},
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := dateformat.ParseStyle(args[0])
			if err != nil {
				return err
			}
			t, err := parseInstant(optionalArg(args[1:]), a.cache.Location())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.cache.Format(style, t))
			return nil
		},
	}
}

func parseTimeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse-time TEXT",
		Short: "Parse a short time in the configured locale and print HH:MM and minutes in day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := a.cache.ParseTime(args[0])
			if !ok {
				return fmt.Errorf("%q is not a %s short time (example: %s)",
					args[0], a.cache.Locale(), a.cache.FormatTime(time.Now()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%02d:%02d %d\n", t.Hour(), t.Minute(), dateutil.ToMinutesInDay(t))
			return nil
		},
	}
}
