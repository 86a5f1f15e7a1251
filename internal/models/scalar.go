package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Text принимает любое скалярное JSON-значение: строку, число или bool.
// null, объекты и массивы дают пустую строку.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*t = ""
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			*t = ""
			return nil
		}
		*t = Text(s)
	case '{', '[':
		*t = ""
	default:
		*t = Text(raw)
	}

	return nil
}

func (t Text) String() string {
	return string(t)
}

func (t Text) IsEmpty() bool {
	return strings.TrimSpace(string(t)) == ""
}

// Or возвращает def, если значение пустое
func (t Text) Or(def string) string {
	if t.IsEmpty() {
		return def
	}
	return string(t)
}

// Amount - денежная сумма. Отсутствующее или нечитаемое значение равно нулю.
type Amount struct {
	decimal.Decimal
}

const (
	maxAmountLength   = 64
	maxAmountDigits   = 30
	maxAmountExponent = 30
)

func NewAmount(v string) Amount {
	return Amount{Decimal: parseAmount(v)}
}

// parseAmount считает нечитаемыми суммы с порядком вне ±30 или длиннее 30 цифр в целой части
func parseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxAmountLength {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}

	exp := d.Exponent()
	if exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero
	}
	if d.NumDigits()+int(exp) > maxAmountDigits {
		return decimal.Zero
	}

	return d
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		a.Decimal = decimal.Zero
		return nil
	}

	a.Decimal = parseAmount(raw)
	return nil
}
