package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"leadboard/models"
)

var (
	// nonMoneyRegexp matches every rune that is not part of a decimal number.
	nonMoneyRegexp = regexp.MustCompile(`[^0-9.\-]`)
	// digitsRegexp captures the first maximal run of digits in legacy
	// reply-time text like "(Weekend): 214".
	digitsRegexp = regexp.MustCompile(`\d+`)
)

// ParseMoney parses a currency display string ("$15", "1,200.50") into a
// number. Every rune that is not a digit, dot, or minus sign is stripped
// first; anything unparseable degrades to 0. The result is always finite.
func ParseMoney(raw string) float64 {
	cleaned := nonMoneyRegexp.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// ReplyMinutes resolves a lead's reply time in minutes. ReplyTimeMinutes
// wins when it parses as a non-negative finite number; otherwise the
// legacy ReplyTime text is mined for its first embedded integer. A lead
// resolving neither contributes no value — the false return excludes it
// from averages rather than counting it as zero.
func ReplyMinutes(l *models.Lead) (float64, bool) {
	if v := strings.TrimSpace(l.ReplyTimeMinutes); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil && f >= 0 && !math.IsInf(f, 0) {
			return f, true
		}
	}
	if m := digitsRegexp.FindString(l.ReplyTime); m != "" {
		if f, err := strconv.ParseFloat(m, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
