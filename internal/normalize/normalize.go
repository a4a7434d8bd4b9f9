// Package normalize coerces loosely typed form and spreadsheet values into
// clean numbers.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number strips everything except digits, '.' and '-' from v and parses the
// rest. The result is invalid for nil, empty, unparsable or non-finite input.
func Number(v any) decimal.NullDecimal {
	s, ok := text(v)
	if !ok {
		return decimal.NullDecimal{}
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return decimal.NullDecimal{}
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(f))
}

// Quantity normalizes v to a whole copy count of at least 1.
func Quantity(v any) int {
	n := Number(v)
	if !n.Valid {
		return 1
	}
	q := n.Decimal.Floor().IntPart()
	if q < 1 {
		return 1
	}
	return int(q)
}

// String renders a cell or form value as trimmed text; nil becomes "".
func String(v any) string {
	s, _ := text(v)
	return strings.TrimSpace(s)
}

func text(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case *string:
		if x == nil {
			return "", false
		}
		return *x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case json.Number:
		return x.String(), true
	case decimal.Decimal:
		return x.String(), true
	case decimal.NullDecimal:
		if !x.Valid {
			return "", false
		}
		return x.Decimal.String(), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(x), true
	}
}
