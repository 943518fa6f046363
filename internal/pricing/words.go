package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var onesWords = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var tensWords = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

// AmountInWords renders an amount using the Indian numbering grouping
// (crore, lakh, thousand), e.g. 1234.50 becomes "One thousand two hundred
// thirty-four rupees and fifty paise only".
func AmountInWords(amount decimal.Decimal) string {
	paiseTotal := amount.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	if paiseTotal < 0 {
		paiseTotal = 0
	}
	rupees := paiseTotal / 100
	paise := paiseTotal % 100

	var sb strings.Builder
	if rupees == 0 {
		sb.WriteString("zero")
	} else {
		sb.WriteString(integerWords(rupees))
	}
	sb.WriteString(" rupees")
	if paise > 0 {
		sb.WriteString(" and ")
		sb.WriteString(integerWords(paise))
		sb.WriteString(" paise")
	}
	sb.WriteString(" only")

	return capitalize(sb.String())
}

// integerWords decomposes n into crore/lakh/thousand/remainder groups and
// renders each with the ones/tens/hundreds builder.
func integerWords(n int64) string {
	var parts []string

	if crore := n / 10_000_000; crore > 0 {
		parts = append(parts, integerWords(crore), "crore")
		n %= 10_000_000
	}
	if lakh := n / 100_000; lakh > 0 {
		parts = append(parts, threeDigitWords(lakh), "lakh")
		n %= 100_000
	}
	if thousand := n / 1_000; thousand > 0 {
		parts = append(parts, threeDigitWords(thousand), "thousand")
		n %= 1_000
	}
	if n > 0 {
		parts = append(parts, threeDigitWords(n))
	}

	return strings.Join(parts, " ")
}

func threeDigitWords(n int64) string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, onesWords[h], "hundred")
		n %= 100
	}
	if n >= 20 {
		word := tensWords[n/10]
		if ones := n % 10; ones > 0 {
			word += "-" + onesWords[ones]
		}
		parts = append(parts, word)
	} else if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
