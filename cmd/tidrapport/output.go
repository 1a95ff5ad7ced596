package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/username/tidrapport/internal/calendar"
	"github.com/username/tidrapport/internal/grid"
	"github.com/username/tidrapport/internal/timesheet"
	"github.com/username/tidrapport/pkg/dateutil"
	"golang.org/x/term"
)

var (
	colorHeader  = color.New(color.Bold)
	colorMuted   = color.New(color.FgWhite, color.Faint)
	colorToday   = color.New(color.FgGreen, color.Bold, color.Underline)
	colorHoliday = color.New(color.FgRed, color.Bold)
	colorWarn    = color.New(color.FgYellow)
)

// termWidth returns the terminal width, or 80 when stdout is not a terminal
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// barWidth sizes the distribution bar to what is left after the text columns
func barWidth(width int) int {
	const text = 46
	switch {
	case width-text < 10:
		return 10
	case width-text > 40:
		return 40
	default:
		return width - text
	}
}

// dayStyle maps a display class to its terminal style; nil means plain
func dayStyle(class grid.DisplayClass) *color.Color {
	switch class {
	case grid.DisplayHoliday:
		return colorHoliday
	case grid.DisplayToday:
		return colorToday
	case grid.DisplayMuted:
		return colorMuted
	default:
		return nil
	}
}

func styled(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

// clientColor turns a "#rrggbb" client color into a terminal color
func clientColor(hex string) *color.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return nil
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil
	}
	return color.RGB(int(rgb>>16&0xff), int(rgb>>8&0xff), int(rgb&0xff))
}

func formatHours(h decimal.Decimal) string {
	return h.String() + "h"
}

func weekdayHeader(showWeekends bool) string {
	names := []string{"Mo", "Tu", "We", "Th", "Fr"}
	if showWeekends {
		names = append(names, "Sa", "Su")
	}
	cols := make([]string, len(names))
	for i, n := range names {
		cols[i] = fmt.Sprintf("%3s", n)
	}
	return "  v " + strings.Join(cols, "")
}

func renderMonth(w io.Writer, view *timesheet.MonthView) {
	colorHeader.Fprintf(w, "%s %d\n", view.Month, view.Year)
	fmt.Fprintln(w, styled(colorMuted, weekdayHeader(view.ShowWeekends)))

	for _, week := range view.Weeks {
		fmt.Fprint(w, styled(colorMuted, fmt.Sprintf("%3d ", week.Number)))
		for _, d := range week.Days {
			fmt.Fprint(w, styled(dayStyle(d.Display), fmt.Sprintf("%3d", d.Date.Day())))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	for _, week := range view.Weeks {
		for _, d := range week.Days {
			if !d.Class.IsCurrentMonth || !d.Total.IsPositive() {
				continue
			}
			parts := make([]string, 0, len(d.Clients))
			for _, c := range d.Clients {
				parts = append(parts, styled(clientColor(c.Color), c.Name)+" "+formatHours(c.Hours))
			}
			fmt.Fprintf(w, "  %s %6s  %s\n",
				styled(dayStyle(d.Display), dateutil.FormatDate(d.Date)),
				formatHours(d.Total),
				strings.Join(parts, ", "))
		}
	}

	if len(view.Holidays) > 0 {
		fmt.Fprintln(w)
		colorHeader.Fprintln(w, "Holidays")
		for _, h := range view.Holidays {
			fmt.Fprintf(w, "  %s  %s\n", styled(colorHoliday, dateutil.FormatDate(h.Date)), h.Name)
		}
	}

	fmt.Fprintf(w, "\nTotal: %s\n", formatHours(view.Total))
}

func renderStats(w io.Writer, summary *timesheet.Summary, width int) {
	week := summary.Ranges.Week.String()
	if summary.Ranges.Week.Empty() {
		week = "current week not in this month"
	}

	colorHeader.Fprintf(w, "%s\n", summary.Ranges.Month)
	fmt.Fprintf(w, "  Today  %8s\n", formatHours(summary.Totals.Today))
	fmt.Fprintf(w, "  Week   %8s  %s\n", formatHours(summary.Totals.Week), styled(colorMuted, week))
	fmt.Fprintf(w, "  Month  %8s\n", formatHours(summary.Totals.Month))
	fmt.Fprintf(w, "  Year   %8s\n", formatHours(summary.Totals.Year))

	if len(summary.Distribution) > 0 {
		fmt.Fprintln(w)
		colorHeader.Fprintln(w, "Clients")
		bw := barWidth(width)
		for _, share := range summary.Distribution {
			filled := int(share.Percentage * float64(bw) / 100)
			if filled > bw {
				filled = bw
			}
			bar := strings.Repeat("█", filled) + strings.Repeat("░", bw-filled)
			fmt.Fprintf(w, "  %-24s %8s %5.1f%%  %s\n",
				share.Name,
				formatHours(share.Hours),
				share.Percentage,
				styled(clientColor(share.Color), bar))
		}
	}

	if n := len(summary.Diagnostics); n > 0 {
		fmt.Fprintln(w)
		colorWarn.Fprintf(w, "%d entr%s skipped or without a known client, see log\n", n, plural(n, "y", "ies"))
	}
}

func renderReport(w io.Writer, report *timesheet.Report) {
	colorHeader.Fprintf(w, "%s\n", report.Month)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tClient\tHours\tDescription")
	for _, row := range report.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			dateutil.FormatDate(row.Date), row.ClientName, row.Hours.String(), row.Description)
	}
	tw.Flush()

	fmt.Fprintln(w)
	colorHeader.Fprintln(w, "Totals")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, t := range report.Totals {
		fmt.Fprintf(tw, "  %s\t%s\n", t.Name, formatHours(t.Hours))
	}
	fmt.Fprintf(tw, "  %s\t%s\n", "All clients", formatHours(report.Total))
	tw.Flush()
}

func renderHolidays(w io.Writer, year int, holidays []calendar.Holiday) {
	colorHeader.Fprintf(w, "Holidays %d\n", year)
	if len(holidays) == 0 {
		fmt.Fprintln(w, styled(colorMuted, "  none known"))
		return
	}
	for _, h := range holidays {
		fmt.Fprintf(w, "  %s  %-3s  %s\n", dateutil.FormatDate(h.Date), h.Date.Weekday().String()[:3], h.Name)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
