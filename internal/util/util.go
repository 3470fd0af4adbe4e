package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const shortOrderIDLength = 8

// FormatEuro renders an amount in cents as euros with two decimals, e.g. 1299 -> "12.99€".
func FormatEuro(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2) + "€"
}

// FormatEuroGerman renders cents the way German customers read prices in mails, e.g. "12,99 €".
func FormatEuroGerman(cents int64) string {
	return strings.Replace(decimal.New(cents, -2).StringFixed(2), ".", ",", 1) + " €"
}

// ShortOrderID returns the customer-facing order reference: the last eight characters, upper case.
func ShortOrderID(orderID string) string {
	if len(orderID) > shortOrderIDLength {
		orderID = orderID[len(orderID)-shortOrderIDLength:]
	}

	return strings.ToUpper(orderID)
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}
