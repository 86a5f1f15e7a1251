package document

import (
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const NotAvailable = "N/A"

var feeTypeLabels = map[string]string{
	"monthly_rent":     "Monthly Rent",
	"security_deposit": "Security Deposit",
	"maintenance":      "Maintenance",
	"electricity":      "Electricity",
	"other":            "Other",
}

// FormatCurrency всегда выводит два знака после запятой и разделители тысяч
func FormatCurrency(symbol string, amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return symbol + sign + fixed
	}
	return symbol + sign + humanize.BigComma(n) + "." + frac
}

func OrNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return NotAvailable
	}
	return value
}

// TitleCase повторяет поведение str.title: первая буква каждого слова заглавная, остальные строчные
func TitleCase(value string) string {
	// cases.Caser хранит состояние, поэтому создается на каждый вызов
	return cases.Title(language.English).String(value)
}

func FeeTypeLabel(code string) string {
	if label, ok := feeTypeLabels[code]; ok {
		return label
	}
	return code
}

// Humanize превращает snake_case код в подпись: bank_transfer -> Bank Transfer
func Humanize(code string) string {
	return TitleCase(strings.ReplaceAll(code, "_", " "))
}

// DateOnly обрезает ISO-время до YYYY-MM-DD
func DateOnly(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return NotAvailable
	}
	if len(value) >= 10 {
		return value[:10]
	}
	return value
}

// FileNamePart убирает из значения символы, ломающие Content-Disposition
func FileNamePart(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r == utf8.RuneError:
		case r < 0x20 || r == 0x7f:
		case strings.ContainsRune(`"\/:*?<>|`, r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
