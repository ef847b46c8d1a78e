// Package holiday computes the Swedish public holiday calendar.
package holiday

import (
	"sort"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// Holiday is one public holiday. Date is the canonical YYYY-MM-DD form;
// LocalizedName is the Swedish name.
type Holiday struct {
	Date          string `json:"date"`
	Name          string `json:"name"`
	LocalizedName string `json:"localizedName"`
}

// Calculator produces a year's holidays and memoizes the result. A year's
// holidays never change, so the cache is append-only and never invalidated.
type Calculator struct {
	mu    sync.Mutex
	cache map[int][]Holiday
}

func NewCalculator() *Calculator {
	return &Calculator{cache: make(map[int][]Holiday)}
}

// ForYear returns the year's holidays sorted ascending by date.
func (c *Calculator) ForYear(year int) []Holiday {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.cache[year]; ok {
		return cached
	}
	holidays := computeYear(year)
	c.cache[year] = holidays
	return holidays
}

func computeYear(year int) []Holiday {
	holidays := []Holiday{
		fixed(year, time.January, 1, "New Year's Day", "Nyårsdagen"),
		fixed(year, time.January, 6, "Epiphany", "Trettondedag jul"),
		fixed(year, time.May, 1, "May Day", "Första maj"),
		fixed(year, time.June, 6, "National Day of Sweden", "Sveriges nationaldag"),
		fixed(year, time.December, 25, "Christmas Day", "Juldagen"),
		fixed(year, time.December, 26, "Boxing Day", "Annandag jul"),
	}

	easter := EasterSunday(year)
	holidays = append(holidays,
		moveable(easter.AddDate(0, 0, -2), "Good Friday", "Långfredagen"),
		moveable(easter, "Easter Sunday", "Påskdagen"),
		moveable(easter.AddDate(0, 0, 1), "Easter Monday", "Annandag påsk"),
		moveable(easter.AddDate(0, 0, 39), "Ascension Day", "Kristi himmelsfärdsdag"),
		moveable(easter.AddDate(0, 0, 49), "Whit Sunday", "Pingstdagen"),
	)

	holidays = append(holidays,
		moveable(saturdayFrom(year, time.June, 20), "Midsummer Day", "Midsommardagen"),
		moveable(saturdayFrom(year, time.October, 31), "All Saints' Day", "Alla helgons dag"),
	)

	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date < holidays[j].Date
	})
	return holidays
}

// EasterSunday computes Easter for a Gregorian year with the Anonymous
// (computus) algorithm. All divisions are integer divisions; the truncation
// direction is what makes the published dates come out right.
func EasterSunday(year int) time.Time {
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
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// saturdayFrom finds the Saturday in the seven-day window starting at the
// given date. Every such window contains exactly one.
func saturdayFrom(year int, month time.Month, day int) time.Time {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	for date.Weekday() != time.Saturday {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

func fixed(year int, month time.Month, day int, name, localized string) Holiday {
	return moveable(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), name, localized)
}

func moveable(date time.Time, name, localized string) Holiday {
	return Holiday{
		Date:          date.Format(dateLayout),
		Name:          name,
		LocalizedName: localized,
	}
}
