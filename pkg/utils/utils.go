package utils

import (
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a USD amount with thousands separators, e.g. 43250.5 ->
// "$43,250.50". The sign is dropped, callers decide how to show direction.
func FormatMoney(amount float64) string {
	d := decimal.NewFromFloat(amount).Abs().StringFixed(2)

	parts := strings.SplitN(d, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	b.WriteString("$")
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(",")
		}
		b.WriteRune(c)
	}
	b.WriteString(".")
	b.WriteString(fracPart)
	return b.String()
}

// FormatPercent renders a percentage with the given precision, e.g. 12.345 ->
// "12.3%". The sign is dropped.
func FormatPercent(pct float64, places int32) string {
	return decimal.NewFromFloat(pct).Abs().StringFixed(places) + "%"
}

// FormatAmount renders a quantity without a currency symbol, trimming
// trailing zeros, e.g. 0.50000 -> "0.5".
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).String()
}

// GoSafe runs the given function in a new goroutine and recovers from any panic.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Panic Recovered] %v", r)
			}
		}()
		fn()
	}()
}

func ToPointer[T any](value T) *T {
	return &value
}
