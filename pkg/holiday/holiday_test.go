package holiday

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasterSunday(t *testing.T) {
	// Published Easter dates; the integer truncation in the computus has to
	// come out exactly right for all of these.
	testCases := map[int]string{
		2020: "2020-04-12",
		2021: "2021-04-04",
		2022: "2022-04-17",
		2023: "2023-04-09",
		2024: "2024-03-31",
		2025: "2025-04-20",
		2026: "2026-04-05",
		2027: "2027-03-28",
	}
	for year, want := range testCases {
		assert.Equal(t, want, EasterSunday(year).Format("2006-01-02"), "year %d", year)
	}
}

func TestForYear_2026(t *testing.T) {
	holidays := NewCalculator().ForYear(2026)

	dates := make([]string, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.Date)
	}

	assert.Equal(t, []string{
		"2026-01-01", // Nyårsdagen
		"2026-01-06", // Trettondedag jul
		"2026-04-03", // Långfredagen
		"2026-04-05", // Påskdagen
		"2026-04-06", // Annandag påsk
		"2026-05-01", // Första maj
		"2026-05-14", // Kristi himmelsfärdsdag
		"2026-05-24", // Pingstdagen
		"2026-06-06", // Sveriges nationaldag
		"2026-06-20", // Midsommardagen
		"2026-10-31", // Alla helgons dag
		"2026-12-25", // Juldagen
		"2026-12-26", // Annandag jul
	}, dates)

	assert.True(t, sort.StringsAreSorted(dates))
}

func TestForYear_NamesAndLocalizedNames(t *testing.T) {
	holidays := NewCalculator().ForYear(2026)
	byDate := make(map[string]Holiday, len(holidays))
	for _, h := range holidays {
		byDate[h.Date] = h
	}

	assert.Equal(t, "Midsummer Day", byDate["2026-06-20"].Name)
	assert.Equal(t, "Midsommardagen", byDate["2026-06-20"].LocalizedName)
	assert.Equal(t, "All Saints' Day", byDate["2026-10-31"].Name)
	assert.Equal(t, "Good Friday", byDate["2026-04-03"].Name)
}

func TestForYear_SaturdayScans(t *testing.T) {
	// Midsummer is the Saturday in June 20-26, All Saints the Saturday in
	// October 31 - November 6, for any year.
	for year := 2020; year <= 2030; year++ {
		holidays := NewCalculator().ForYear(year)
		var midsummer, allSaints Holiday
		for _, h := range holidays {
			switch h.Name {
			case "Midsummer Day":
				midsummer = h
			case "All Saints' Day":
				allSaints = h
			}
		}
		require.NotEmpty(t, midsummer.Date, "year %d", year)
		require.NotEmpty(t, allSaints.Date, "year %d", year)

		ms, err := time.Parse("2006-01-02", midsummer.Date)
		require.NoError(t, err)
		assert.Equal(t, time.Saturday, ms.Weekday())
		assert.Equal(t, time.June, ms.Month())
		assert.True(t, ms.Day() >= 20 && ms.Day() <= 26)

		as, err := time.Parse("2006-01-02", allSaints.Date)
		require.NoError(t, err)
		assert.Equal(t, time.Saturday, as.Weekday())
	}
}

func TestForYear_Memoized(t *testing.T) {
	c := NewCalculator()
	first := c.ForYear(2026)
	second := c.ForYear(2026)
	require.Len(t, second, 13)
	// Same backing array, not a recomputation.
	assert.Same(t, &first[0], &second[0])
}
