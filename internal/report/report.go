package report

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"farmacia/internal/farmacia"
)

// UnknownCategory is shown when a movement's medication has no category
const UnknownCategory = "Não informada"

// timestamp layouts the backend has been seen to use
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var printer = message.NewPrinter(language.BrazilianPortuguese)

// DailyTotal is the sum of the sales of one calendar day
type DailyTotal struct {
	Day   time.Time
	Total farmacia.Money
}

// DailyTotals groups sales by calendar day, oldest day first. Sales with a
// date that can not be parsed are skipped.
func DailyTotals(sales []farmacia.Sale) []DailyTotal {
	byDay := make(map[time.Time]farmacia.Money)
	for i := range sales {
		t, err := ParseTime(sales[i].SoldAt)
		if err != nil {
			continue
		}

		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		byDay[day] = byDay[day].Add(sales[i].Total)
	}

	out := make([]DailyTotal, 0, len(byDay))
	for day, total := range byDay {
		out = append(out, DailyTotal{Day: day, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })

	return out
}

// Total sums the value of all sales
func Total(sales []farmacia.Sale) farmacia.Money {
	var total farmacia.Money
	for i := range sales {
		total = total.Add(sales[i].Total)
	}

	return total
}

// SortMovements orders movements newest first. Unparseable dates sort last.
func SortMovements(movements []farmacia.Movement) {
	sort.SliceStable(movements, func(i, j int) bool {
		ti, erri := ParseTime(movements[i].MovedAt)
		tj, errj := ParseTime(movements[j].MovedAt)
		switch {
		case erri != nil:
			return false
		case errj != nil:
			return true
		}

		return ti.After(tj)
	})
}

// CategoryName finds the category of a medication in the full medication
// list. The movement resource omits it.
func CategoryName(meds []farmacia.Medication, medicationID int64) string {
	for i := range meds {
		if meds[i].ID == medicationID && meds[i].Category != nil && meds[i].Category.Name != "" {
			return meds[i].Category.Name
		}
	}

	return UnknownCategory
}

// ParseTime accepts the timestamp and date formats the API returns
func ParseTime(s string) (time.Time, error) {
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}

	return time.Time{}, err
}

// FormatBRL renders an amount as Brazilian currency, e.g. R$ 1.234,50
func FormatBRL(m farmacia.Money) string {
	f, _ := m.Round(2).Float64()
	return printer.Sprintf("%v %.2f", currency.Symbol(currency.BRL), f)
}

// FormatDate renders a date as dd/mm/yyyy, or returns s unchanged when it
// can not be parsed
func FormatDate(s string) string {
	t, err := ParseTime(s)
	if err != nil {
		return s
	}

	return t.Format("02/01/2006")
}
