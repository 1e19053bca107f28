package utils

import (
	"fmt"
	"time"
)

// FormatPrice renders a price with a currency prefix and two decimals
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// FormatChangePercent renders a percent change with an explicit sign
func FormatChangePercent(change float64) string {
	return fmt.Sprintf("%+.2f%%", change)
}

// DateRange returns the whole-second UNIX bounds of the trailing window of
// the given number of days, ending now.
func DateRange(now time.Time, days int) (from, to int64) {
	to = now.Unix()
	from = now.AddDate(0, 0, -days).Unix()
	return from, to
}
