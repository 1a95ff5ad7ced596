package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "Wednesday returns Monday",
			input:    time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Monday returns same Monday",
			input:    time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Sunday returns previous Monday",
			input:    time.Date(2025, 1, 19, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Week crossing year boundary",
			input:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StartOfWeek(tt.input)

			if !result.Equal(tt.expected) {
				t.Errorf("StartOfWeek(%v) = %v, want %v",
					tt.input.Format("2006-01-02 Mon"),
					result.Format("2006-01-02 Mon"),
					tt.expected.Format("2006-01-02 Mon"))
			}
		})
	}
}

func TestEndOfWeek(t *testing.T) {
	input := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	expected := time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC)

	if result := EndOfWeek(input); !result.Equal(expected) {
		t.Errorf("EndOfWeek(%v) = %v, want %v", input, result, expected)
	}
}

func TestMonthAndYearBounds(t *testing.T) {
	input := time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC)

	if got, want := StartOfMonth(input), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("StartOfMonth = %v, want %v", got, want)
	}
	if got, want := EndOfMonth(input), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("EndOfMonth = %v, want %v", got, want)
	}
	if got, want := StartOfYear(input), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("StartOfYear = %v, want %v", got, want)
	}
	if got, want := EndOfYear(input), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("EndOfYear = %v, want %v", got, want)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.December, 31},
		{2024, time.April, 30},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestMondayIndex(t *testing.T) {
	want := map[time.Weekday]int{
		time.Monday:    0,
		time.Tuesday:   1,
		time.Wednesday: 2,
		time.Thursday:  3,
		time.Friday:    4,
		time.Saturday:  5,
		time.Sunday:    6,
	}

	for weekday, index := range want {
		if got := MondayIndex(weekday); got != index {
			t.Errorf("MondayIndex(%v) = %d, want %d", weekday, got, index)
		}
	}
}

func TestISOWeek(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  int
	}{
		{"Mid January 2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), 3},
		{"Start of year", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 1},
		{"Jan 1 2021 belongs to week 53", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), 53},
		{"Dec 30 2024 belongs to week 1", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), 1},
		{"Late evening in a western zone", time.Date(2024, 3, 31, 23, 30, 0, 0, time.FixedZone("UTC-8", -8*3600)), 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ISOWeek(tt.input); got != tt.want {
				t.Errorf("ISOWeek(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsWeekday(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  bool
	}{
		{"Monday is weekday", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), true},
		{"Friday is weekday", time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC), true},
		{"Saturday is not weekday", time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC), false},
		{"Sunday is not weekday", time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsWeekday(tt.input); result != tt.want {
				t.Errorf("IsWeekday(%v) = %v, want %v",
					tt.input.Format("2006-01-02 Mon"), result, tt.want)
			}
			if result := IsWeekend(tt.input); result == tt.want {
				t.Errorf("IsWeekend(%v) = %v, want %v",
					tt.input.Format("2006-01-02 Mon"), result, !tt.want)
			}
		})
	}
}

func TestIsSameDay(t *testing.T) {
	tests := []struct {
		name  string
		date1 time.Time
		date2 time.Time
		want  bool
	}{
		{
			"Same date different time",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC),
			true,
		},
		{
			"Different date",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsSameDay(tt.date1, tt.date2); result != tt.want {
				t.Errorf("IsSameDay(%v, %v) = %v, want %v",
					tt.date1, tt.date2, result, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"ISO format YYYY-MM-DD", "2025-01-15", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"Leap day", "2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), false},
		{"Non-existent leap day", "2023-02-29", time.Time{}, true},
		{"Month out of range", "2025-13-01", time.Time{}, true},
		{"Wrong format", "15.01.2025", time.Time{}, true},
		{"Empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input, time.UTC)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("ParseDate(%v) error = %v, want ErrInvalidDateFormat", tt.input, err)
			}
			if !tt.wantErr && !result.Equal(tt.want) {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2024-02", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), false},
		{"2024-02-17", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), false},
		{"2024-00", time.Time{}, true},
		{"february", time.Time{}, true},
	}

	for _, tt := range tests {
		result, err := ParseMonth(tt.input, time.UTC)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMonth(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !result.Equal(tt.want) {
			t.Errorf("ParseMonth(%q) = %v, want %v", tt.input, result, tt.want)
		}
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		delta     int
		wantYear  int
		wantMonth time.Month
	}{
		{"next month", 2024, time.March, 1, 2024, time.April},
		{"December rolls to January", 2024, time.December, 1, 2025, time.January},
		{"January rolls back to December", 2024, time.January, -1, 2023, time.December},
		{"next year", 2024, time.May, 12, 2025, time.May},
		{"previous year", 2024, time.May, -12, 2023, time.May},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month := AddMonths(tt.year, tt.month, tt.delta)
			if year != tt.wantYear || month != tt.wantMonth {
				t.Errorf("AddMonths(%d, %v, %d) = (%d, %v), want (%d, %v)",
					tt.year, tt.month, tt.delta, year, month, tt.wantYear, tt.wantMonth)
			}
		})
	}
}
