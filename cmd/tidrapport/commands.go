package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/tidrapport/pkg/dateutil"
	"go.uber.org/zap"
)

// resolveMonth returns the first day of the month named by args, or of the
// current month when args is empty
func resolveMonth(args []string, loc *time.Location) (time.Time, error) {
	if len(args) == 0 {
		return dateutil.StartOfMonth(dateutil.Today(loc)), nil
	}
	month, err := dateutil.ParseMonth(args[0], loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", args[0], err)
	}
	return month, nil
}

func monthCmd() *cobra.Command {
	var offset int
	var weekends bool

	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show the month calendar with hours and holidays",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var showWeekends *bool
			if cmd.Flags().Changed("weekends") {
				showWeekends = &weekends
			}

			svc, cleanup, err := initializeService(showWeekends)
			if err != nil {
				return err
			}
			defer cleanup()

			selected, err := resolveMonth(args, svc.Location())
			if err != nil {
				return err
			}
			year, month := dateutil.AddMonths(selected.Year(), selected.Month(), offset)

			view, err := svc.MonthView(cmd.Context(), year, month, dateutil.Today(svc.Location()))
			if err != nil {
				return fmt.Errorf("failed to build month view: %w", err)
			}

			renderMonth(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Move the shown month by this many months (-1 = previous)")
	cmd.Flags().BoolVar(&weekends, "weekends", true, "Show Saturday and Sunday columns (overrides view.show_weekends)")

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [YYYY-MM]",
		Short: "Show today, week, month and year totals with the client distribution",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := initializeService(nil)
			if err != nil {
				return err
			}
			defer cleanup()

			selected, err := resolveMonth(args, svc.Location())
			if err != nil {
				return err
			}

			summary, err := svc.Stats(cmd.Context(), selected, dateutil.Today(svc.Location()))
			if err != nil {
				return fmt.Errorf("failed to compute statistics: %w", err)
			}

			renderStats(cmd.OutOrStdout(), summary, termWidth())
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [YYYY-MM]",
		Short: "List every entry of the month with per-client totals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := initializeService(nil)
			if err != nil {
				return err
			}
			defer cleanup()

			selected, err := resolveMonth(args, svc.Location())
			if err != nil {
				return err
			}

			report, err := svc.Report(cmd.Context(), selected)
			if err != nil {
				return fmt.Errorf("failed to build report: %w", err)
			}

			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func holidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holidays [YEAR]",
		Short: "List the holidays of a year from the configured source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := initializeService(nil)
			if err != nil {
				return err
			}
			defer cleanup()

			year := dateutil.Today(svc.Location()).Year()
			if len(args) == 1 {
				year, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q: %w", args[0], err)
				}
			}

			holidays, err := svc.Holidays(cmd.Context(), year)
			if err != nil {
				return err
			}

			logger.Debug("Holidays listed", zap.Int("year", year), zap.Int("count", len(holidays)))
			renderHolidays(cmd.OutOrStdout(), year, holidays)
			return nil
		},
	}
}
