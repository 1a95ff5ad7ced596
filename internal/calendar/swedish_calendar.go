package calendar

import (
	"context"
	"time"
)

// SwedishCalendar computes Swedish public holidays without any external source
type SwedishCalendar struct {
	loc *time.Location
}

// NewSwedishCalendar creates a SwedishCalendar producing dates in loc
func NewSwedishCalendar(loc *time.Location) *SwedishCalendar {
	if loc == nil {
		loc = time.Local
	}
	return &SwedishCalendar{loc: loc}
}

// HolidaysForYear returns Swedish public holidays and holiday eves for the year
func (sc *SwedishCalendar) HolidaysForYear(_ context.Context, year int) ([]Holiday, error) {
	date := func(month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, sc.loc)
	}
	easter := calculateEaster(year, sc.loc)

	holidays := []Holiday{
		{Date: date(time.January, 1), Name: "Nyårsdagen"},
		{Date: date(time.January, 5), Name: "Trettondedagsafton"},
		{Date: date(time.January, 6), Name: "Trettondedag jul"},
		// Movable feasts around Easter
		{Date: easter.AddDate(0, 0, -2), Name: "Långfredagen"},
		{Date: easter.AddDate(0, 0, -1), Name: "Påskafton"},
		{Date: easter, Name: "Påskdagen"},
		{Date: easter.AddDate(0, 0, 1), Name: "Annandag påsk"},
		{Date: date(time.April, 30), Name: "Valborgsmässoafton"},
		{Date: date(time.May, 1), Name: "Första maj"},
		{Date: easter.AddDate(0, 0, 39), Name: "Kristi himmelsfärdsdag"},
		{Date: easter.AddDate(0, 0, 48), Name: "Pingstafton"},
		{Date: easter.AddDate(0, 0, 49), Name: "Pingstdagen"},
		{Date: date(time.June, 6), Name: "Sveriges nationaldag"},
	}

	// Midsummer Day is the Saturday between June 20 and 26
	midsummer := firstWeekdayOnOrAfter(date(time.June, 20), time.Saturday)
	holidays = append(holidays,
		Holiday{Date: midsummer.AddDate(0, 0, -1), Name: "Midsommarafton"},
		Holiday{Date: midsummer, Name: "Midsommardagen"},
	)

	// All Saints' Day is the Saturday between October 31 and November 6
	allSaints := firstWeekdayOnOrAfter(date(time.October, 31), time.Saturday)
	holidays = append(holidays,
		Holiday{Date: allSaints.AddDate(0, 0, -1), Name: "Allhelgonaafton"},
		Holiday{Date: allSaints, Name: "Alla helgons dag"},
		Holiday{Date: date(time.December, 24), Name: "Julafton"},
		Holiday{Date: date(time.December, 25), Name: "Juldagen"},
		Holiday{Date: date(time.December, 26), Name: "Annandag jul"},
		Holiday{Date: date(time.December, 31), Name: "Nyårsafton"},
	)

	return holidays, nil
}

// firstWeekdayOnOrAfter returns the first date on or after from that falls on weekday
func firstWeekdayOnOrAfter(from time.Time, weekday time.Weekday) time.Time {
	offset := (int(weekday) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, offset)
}

// calculateEaster calculates Easter Sunday using the Meeus/Jones/Butcher algorithm
func calculateEaster(year int, loc *time.Location) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}
