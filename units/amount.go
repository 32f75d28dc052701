// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package units

import (
	"fmt"
	"math/big"
	"strings"
)

// ToSmallestUnit parses a human decimal string into an integer amount in the
// token's smallest unit. The string may carry at most decimals fractional
// digits; anything else is rejected.
func ToSmallestUnit(human string, decimals uint8) (*big.Int, error) {
	human = strings.TrimSpace(human)
	if human == "" {
		return nil, fmt.Errorf("empty amount")
	}

	whole, frac, _ := strings.Cut(human, ".")
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return nil, fmt.Errorf("invalid decimal amount %q", human)
	}
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("amount %q has more than %d fractional digits", human, decimals)
	}

	padded := frac + strings.Repeat("0", int(decimals)-len(frac))
	amount, ok := new(big.Int).SetString(whole+padded, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal amount %q", human)
	}

	return amount, nil
}

// ToHuman renders a smallest-unit amount as a decimal string. Trailing
// fractional zeros are trimmed so the output round-trips through
// ToSmallestUnit.
func ToHuman(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}

	s := amount.String()
	if decimals == 0 {
		return s
	}
	if len(s) <= int(decimals) {
		s = strings.Repeat("0", int(decimals)-len(s)+1) + s
	}

	whole := s[:len(s)-int(decimals)]
	frac := strings.TrimRight(s[len(s)-int(decimals):], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// FormatThousands inserts comma separators into the integer part of a decimal
// string. The fractional part is left untouched.
func FormatThousands(value string) string {
	whole, frac, hasFrac := strings.Cut(value, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if hasFrac {
		return b.String() + "." + frac
	}
	return b.String()
}

// IsValidNumberInput reports whether text is acceptable as an in-progress
// numeric entry: empty, digits, or digits with one decimal point. It gates
// keystrokes, not business rules.
func IsValidNumberInput(text string) bool {
	if text == "" {
		return true
	}

	dots := 0
	for _, r := range text {
		if r == '.' {
			dots++
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}

	return dots <= 1
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
