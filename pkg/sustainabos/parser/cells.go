package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order on display text that is not a serial date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01-02-06",
	"2 Jan 2006",
	"02-Jan-2006",
	"Jan 2006",
}

// amountCleaner strips thousands separators and currency marks.
var amountCleaner = strings.NewReplacer(",", "", "S$", "", "$", "", "€", "", "USD", "", " ", "", "\u00a0", "")

// cleanCell normalizes a cell value: surrounding whitespace is blank.
func cleanCell(s string) string {
	return strings.TrimSpace(s)
}

// isBlankRow reports whether every cell of row is blank.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

// valueType names the type parseValue infers for s.
func valueType(s string) string {
	if s == "" {
		return "empty"
	}
	switch parseValue(s).(type) {
	case int64:
		return "integer"
	case float64:
		return "number"
	}
	if _, ok := parseDate(s, ""); ok {
		return "date"
	}
	return "text"
}

// parseAmount parses a savings amount. The raw value is tried first, then
// the display text with currency marks and separators removed.
func parseAmount(raw, display string) decimal.NullDecimal {
	for _, s := range []string{raw, display} {
		if s == "" {
			continue
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return decimal.NewNullDecimal(d)
		}
		if d, err := decimal.NewFromString(amountCleaner.Replace(s)); err == nil {
			return decimal.NewNullDecimal(d)
		}
	}
	return decimal.NullDecimal{}
}

// parseDate parses an installation date from a raw serial number or from
// the display text.
func parseDate(raw, display string) (time.Time, bool) {
	if raw != "" {
		if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t, true
			}
		}
	}
	for _, s := range []string{display, raw} {
		if s == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
