package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrency formats a float64 value as a Brazilian Real currency string.
// Example: 15000.5 -> "R$ 15.000,50"
func FormatCurrency(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	// Bulatkan ke 2 digit desimal
	amount = math.Round(amount*100) / 100

	formatted := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	// Tambahkan pemisah ribuan
	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	result := fmt.Sprintf("R$ %s,%s", strings.Join(groups, "."), decimalPart)
	if negative {
		result = "-" + result
	}
	return result
}
