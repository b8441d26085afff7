// Package core implements the weekly financial aggregation engine: week
// resolution, transaction bucketing, pacing insights and the dashboard
// summary. Everything here is pure and stateless per invocation.
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Money is a monetary value in pence. Amounts are presented in GBP but
// the type itself is currency-agnostic. Calculations use pence to avoid
// floating-point drift; pounds are derived only for display and the wire.
type Money struct {
	Pence int64
}

// ParsePence converts a decimal string to pence with half-up rounding on
// the third decimal place. Accepts both dot and comma separators. Signed
// values are rejected; zero is allowed (an unset weekly target is zero).
func ParsePence(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// First two fractional digits are pence; half-up rounding on the third.
	var fracPence int64
	if len(fracPart) > 0 {
		fracPence = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracPence += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracPence++
			}
		}
	}
	return iv*100 + fracPence, nil
}

// Pounds returns the pound value as a float64 for display and pacing math.
// Use pence for sums.
func (m Money) Pounds() float64 {
	return float64(m.Pence) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{Pence: m.Pence + other.Pence}
}

func (m Money) Sub(other Money) Money {
	return Money{Pence: m.Pence - other.Pence}
}

func (m Money) IsZero() bool {
	return m.Pence == 0
}

func (m Money) Validate() error {
	if m.Pence <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// FormatGBP renders a value the way the dashboard shows it: "£1,234.56".
func FormatGBP(m Money) string {
	pence := m.Pence
	sign := ""
	if pence < 0 {
		sign = "-"
		pence = -pence
	}
	pounds := pence / 100
	rem := pence % 100
	return fmt.Sprintf("%s£%s.%02d", sign, groupThousands(pounds), rem)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// MarshalJSON emits pounds as a JSON number, matching the wire shape the
// dashboard consumes (amounts are pounds on the wire, pence internally).
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Pounds(), 'f', 2, 64)), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		m.Pence = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	pence, err := ParsePence(s)
	if err != nil {
		return err
	}
	m.Pence = pence
	return nil
}
