package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatDuration renders a second count the way the dashboard shows task
// durations: "45s", "2m 30s", "1h 5m".
func FormatDuration(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", int(math.Round(seconds)))
	}

	minutes := int(seconds) / 60
	remaining := int(math.Round(math.Mod(seconds, 60)))

	if minutes < 60 {
		if remaining > 0 {
			return fmt.Sprintf("%dm %ds", minutes, remaining)
		}
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	minutes = minutes % 60
	if minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}

// FormatNumber renders a count with thousands separators.
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatDate renders a timestamp in the compact table format.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 3:04 PM")
}

// FormatRelativeTime renders how long ago a date string was, falling back to
// "Recently" when the string does not parse.
func FormatRelativeTime(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if t, err = time.Parse("2006-01-02", s); err != nil {
			return "Recently"
		}
	}
	return humanize.Time(t)
}

// FormatPercent renders a 0..1 ratio as a percentage with the given number of
// decimals.
func FormatPercent(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value*100)
}

var byteSizes = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with binary (1024) unit steps.
func FormatBytes(bytes float64, decimals int) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(bytes) / math.Log(1024)))
	if i >= len(byteSizes) {
		i = len(byteSizes) - 1
	}

	value := bytes / math.Pow(1024, float64(i))
	s := fmt.Sprintf("%.*f", decimals, value)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + " " + byteSizes[i]
}

var salaryPeriods = map[string]string{
	"year":  "/yr",
	"month": "/mo",
	"hour":  "/hr",
	"day":   "/day",
}

func formatSalaryAmount(amount float64) string {
	if amount >= 1000 {
		return fmt.Sprintf("%.0fk", amount/1000)
	}
	return humanize.Commaf(amount)
}

// FormatSalary renders a salary range like "$90k - $120k/yr", "$2k+/mo" or
// "Up to $50k". Zero bounds count as absent; with no data it returns "".
func FormatSalary(min, max float64, currency, period string) string {
	if min == 0 && max == 0 {
		return ""
	}

	symbol := currency
	if currency == "" || currency == "USD" {
		symbol = "$"
	}
	suffix := salaryPeriods[strings.ToLower(period)]

	switch {
	case min != 0 && max != 0:
		return fmt.Sprintf("%s%s - %s%s%s", symbol, formatSalaryAmount(min), symbol, formatSalaryAmount(max), suffix)
	case min != 0:
		return fmt.Sprintf("%s%s+%s", symbol, formatSalaryAmount(min), suffix)
	default:
		return fmt.Sprintf("Up to %s%s%s", symbol, formatSalaryAmount(max), suffix)
	}
}
