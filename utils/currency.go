package utils

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var vnPrinter = message.NewPrinter(language.Vietnamese)

// FormatCurrency renders amount with vi-VN digit grouping and the dong sign.
func FormatCurrency(amount int64) string {
	return vnPrinter.Sprintf("%d", amount) + " ₫"
}

// FormatCompactCurrency renders large amounts as 1.5M or 80k.
func FormatCompactCurrency(amount int64) string {
	switch {
	case amount >= 1_000_000:
		return compact(float64(amount)/1_000_000) + "M"
	case amount >= 1_000:
		return compact(float64(amount)/1_000) + "k"
	default:
		return vnPrinter.Sprintf("%d", amount)
	}
}

func compact(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
